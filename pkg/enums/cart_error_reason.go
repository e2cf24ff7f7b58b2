package enums

import "fmt"

// CartErrorReason explains why a cart ended in the fail state.
type CartErrorReason string

const (
	CartErrorReasonUnknown             CartErrorReason = "unknown"
	CartErrorReasonPaymentFailed       CartErrorReason = "payment_failed"
	CartErrorReasonEligibilityMismatch CartErrorReason = "cart_eligibility_mismatch"
)

var validCartErrorReasons = []CartErrorReason{
	CartErrorReasonUnknown,
	CartErrorReasonPaymentFailed,
	CartErrorReasonEligibilityMismatch,
}

// String implements fmt.Stringer.
func (c CartErrorReason) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartErrorReason.
func (c CartErrorReason) IsValid() bool {
	for _, candidate := range validCartErrorReasons {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartErrorReason converts raw input into a CartErrorReason.
func ParseCartErrorReason(value string) (CartErrorReason, error) {
	for _, candidate := range validCartErrorReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart error reason %q", value)
}
