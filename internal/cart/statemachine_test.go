package cart

import (
	"testing"

	"github.com/subplatform/cart-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

var allStates = []enums.CartState{
	enums.CartStateStart,
	enums.CartStateProcessing,
	enums.CartStateSuccess,
	enums.CartStateFail,
}

func TestTransitionClosure(t *testing.T) {
	legal := map[[2]enums.CartState]bool{
		{enums.CartStateStart, enums.CartStateProcessing}:   true,
		{enums.CartStateStart, enums.CartStateFail}:         true,
		{enums.CartStateProcessing, enums.CartStateSuccess}: true,
		{enums.CartStateProcessing, enums.CartStateFail}:    true,
	}
	for _, current := range allStates {
		for _, target := range allStates {
			want := legal[[2]enums.CartState{current, target}]
			assert.Equal(t, want, IsValidTransition(current, target), "%s -> %s", current, target)
		}
	}
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	for _, terminal := range []enums.CartState{enums.CartStateSuccess, enums.CartStateFail} {
		for _, target := range allStates {
			assert.False(t, IsValidTransition(terminal, target), "%s -> %s", terminal, target)
		}
	}
}

func TestUnknownStateHasNoTransitions(t *testing.T) {
	for _, target := range allStates {
		assert.False(t, IsValidTransition(enums.CartState("limbo"), target))
	}
}

func TestActionGating(t *testing.T) {
	allowed := map[enums.CartAction][]enums.CartState{
		enums.CartActionUpdateFreshCart: {enums.CartStateStart},
		enums.CartActionSetProcessing:   {enums.CartStateStart},
		enums.CartActionFinishCart:      {enums.CartStateProcessing},
		enums.CartActionFinishErrorCart: {enums.CartStateStart, enums.CartStateProcessing},
		enums.CartActionDeleteCart:      {enums.CartStateStart, enums.CartStateProcessing},
		enums.CartActionRestartCart:     {enums.CartStateProcessing, enums.CartStateFail},
	}
	for action, states := range allowed {
		assert.True(t, IsValidAction(action))
		allowedSet := map[enums.CartState]bool{}
		for _, state := range states {
			allowedSet[state] = true
		}
		for _, state := range allStates {
			assert.Equal(t, allowedSet[state], IsActionAllowedInState(action, state), "%s in %s", action, state)
		}
	}
}

func TestUnknownActionNeverAllowed(t *testing.T) {
	assert.False(t, IsValidAction(enums.CartAction("teleportCart")))
	for _, state := range allStates {
		assert.False(t, IsActionAllowedInState(enums.CartAction("teleportCart"), state))
	}
}
