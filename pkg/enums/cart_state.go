package enums

import "fmt"

// CartState tracks where a cart sits in the checkout lifecycle.
type CartState string

const (
	CartStateStart      CartState = "start"
	CartStateProcessing CartState = "processing"
	CartStateSuccess    CartState = "success"
	CartStateFail       CartState = "fail"
)

var validCartStates = []CartState{
	CartStateStart,
	CartStateProcessing,
	CartStateSuccess,
	CartStateFail,
}

// String implements fmt.Stringer.
func (c CartState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartState.
func (c CartState) IsValid() bool {
	for _, candidate := range validCartStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state has no outgoing transitions.
func (c CartState) IsTerminal() bool {
	return c == CartStateSuccess || c == CartStateFail
}

// ParseCartState converts raw input into a CartState.
func ParseCartState(value string) (CartState, error) {
	for _, candidate := range validCartStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart state %q", value)
}
