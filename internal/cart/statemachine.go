package cart

import "github.com/subplatform/cart-backend/pkg/enums"

// The lifecycle rules are plain data: a transition table plus a per-action
// allow-list of source states. Both are evaluated by pure lookups so the
// manager can compose them and produce context-rich errors; nothing in this
// file performs I/O, logs, or returns an error.

// cartTransitions maps each state to its legal successors. Success and fail
// are terminal: their successor sets are empty.
var cartTransitions = map[enums.CartState][]enums.CartState{
	enums.CartStateStart:      {enums.CartStateProcessing, enums.CartStateFail},
	enums.CartStateProcessing: {enums.CartStateSuccess, enums.CartStateFail},
	enums.CartStateSuccess:    {},
	enums.CartStateFail:       {},
}

// cartActionStates maps each gated action to the states it may start from.
var cartActionStates = map[enums.CartAction][]enums.CartState{
	enums.CartActionUpdateFreshCart: {enums.CartStateStart},
	enums.CartActionSetProcessing:   {enums.CartStateStart},
	enums.CartActionFinishCart:      {enums.CartStateProcessing},
	enums.CartActionFinishErrorCart: {enums.CartStateStart, enums.CartStateProcessing},
	enums.CartActionDeleteCart:      {enums.CartStateStart, enums.CartStateProcessing},
	enums.CartActionRestartCart:     {enums.CartStateProcessing, enums.CartStateFail},
}

// IsValidTransition reports whether target is a legal successor of current.
func IsValidTransition(current, target enums.CartState) bool {
	successors, ok := cartTransitions[current]
	if !ok {
		return false
	}
	for _, candidate := range successors {
		if candidate == target {
			return true
		}
	}
	return false
}

// IsValidAction reports whether the action is a known gated action.
func IsValidAction(action enums.CartAction) bool {
	_, ok := cartActionStates[action]
	return ok
}

// IsActionAllowedInState reports whether the action may run against a cart in
// the given state. Unknown actions are never allowed.
func IsActionAllowedInState(action enums.CartAction, state enums.CartState) bool {
	allowed, ok := cartActionStates[action]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == state {
			return true
		}
	}
	return false
}
