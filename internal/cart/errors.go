package cart

import (
	stdErrors "errors"
	"fmt"

	"github.com/subplatform/cart-backend/pkg/enums"
	pkgerrors "github.com/subplatform/cart-backend/pkg/errors"
)

// Sentinels for the cart failure kinds. Every error returned by this package
// wraps one of these (via pkg/errors so transport metadata rides along), so
// callers can branch with errors.Is without depending on message text.
var (
	ErrCartNotFound           = stdErrors.New("cart not found")
	ErrCartNotCreated         = stdErrors.New("cart not created")
	ErrCartNotUpdated         = stdErrors.New("cart not updated")
	ErrCartNotDeleted         = stdErrors.New("cart not deleted")
	ErrInvalidStateForAction  = stdErrors.New("action not allowed in current cart state")
	ErrInvalidStateTransition = stdErrors.New("invalid cart state transition")
	ErrMissingRequiredField   = stdErrors.New("missing required cart field")
)

func notFoundError(id []byte) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrCartNotFound,
		fmt.Sprintf("cart %s not found", EncodeCartID(id)))
}

func notCreatedError(cause error) *pkgerrors.Error {
	wrapped := ErrCartNotCreated
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrCartNotCreated, cause)
	}
	return pkgerrors.Wrap(pkgerrors.CodeConflict, wrapped, "cart insert affected no rows")
}

func notUpdatedError(id []byte, expectedVersion int64) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeConflict, ErrCartNotUpdated,
		fmt.Sprintf("cart %s not updated at version %d", EncodeCartID(id), expectedVersion)).
		WithDetails(map[string]any{"expected_version": expectedVersion})
}

func notDeletedError(id []byte) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeConflict, ErrCartNotDeleted,
		fmt.Sprintf("cart %s not deleted", EncodeCartID(id)))
}

func invalidStateForActionError(action enums.CartAction, state enums.CartState) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrInvalidStateForAction,
		fmt.Sprintf("action %s not allowed in state %s", action, state)).
		WithDetails(map[string]any{"action": action.String(), "state": state.String()})
}

func invalidStateTransitionError(current, target enums.CartState) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrInvalidStateTransition,
		fmt.Sprintf("cart cannot move from %s to %s", current, target)).
		WithDetails(map[string]any{"current": current.String(), "target": target.String()})
}

func missingRequiredFieldError(field string) *pkgerrors.Error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, ErrMissingRequiredField,
		fmt.Sprintf("field %s is required to finish a cart successfully", field)).
		WithDetails(map[string]any{"field": field})
}
