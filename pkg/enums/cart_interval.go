package enums

import "fmt"

// CartInterval is the billing cadence selected for the offering.
type CartInterval string

const (
	CartIntervalDaily      CartInterval = "daily"
	CartIntervalWeekly     CartInterval = "weekly"
	CartIntervalMonthly    CartInterval = "monthly"
	CartIntervalHalfYearly CartInterval = "halfyearly"
	CartIntervalYearly     CartInterval = "yearly"
)

// CartIntervalDefault applies when a cart is created without an explicit interval.
const CartIntervalDefault = CartIntervalMonthly

var validCartIntervals = []CartInterval{
	CartIntervalDaily,
	CartIntervalWeekly,
	CartIntervalMonthly,
	CartIntervalHalfYearly,
	CartIntervalYearly,
}

// String implements fmt.Stringer.
func (c CartInterval) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartInterval.
func (c CartInterval) IsValid() bool {
	for _, candidate := range validCartIntervals {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartInterval converts raw input into a CartInterval.
func ParseCartInterval(value string) (CartInterval, error) {
	for _, candidate := range validCartIntervals {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart interval %q", value)
}
