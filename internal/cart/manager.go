package cart

import (
	"context"
	"errors"

	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/enums"
	pkgerrors "github.com/subplatform/cart-backend/pkg/errors"
	"github.com/subplatform/cart-backend/pkg/metrics"
)

type manager struct {
	repo    Repository
	metrics *metrics.CartMetrics
}

// NewManager builds the lifecycle manager. A nil metrics receiver is fine;
// the counters degrade to no-ops.
func NewManager(repo Repository, cartMetrics *metrics.CartMetrics) Manager {
	return &manager{repo: repo, metrics: cartMetrics}
}

// gate loads the cart and rejects the action unless the cart's current state
// allows it. The loaded record is returned so callers do not fetch twice.
func (m *manager) gate(ctx context.Context, id []byte, action enums.CartAction) (*models.Cart, error) {
	record, err := m.repo.FindCartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsActionAllowedInState(action, record.State) {
		m.metrics.IncStateRejection(action.String())
		return nil, invalidStateForActionError(action, record.State)
	}
	return record, nil
}

// writeState runs the conditional update and folds lost-update rejections
// into the version-conflict counter.
func (m *manager) writeState(ctx context.Context, id []byte, version int64, action enums.CartAction, updates map[string]any) (*models.Cart, error) {
	record, err := m.repo.UpdateCartByIDAndVersion(ctx, id, version, updates)
	if err != nil {
		if errors.Is(err, ErrCartNotUpdated) {
			m.metrics.IncVersionConflict(action.String())
		}
		return nil, err
	}
	return record, nil
}

func (m *manager) SetupCart(ctx context.Context, input *SetupCartInput) (*ResultCart, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	interval := enums.CartIntervalDefault
	if input.Interval != "" {
		parsed, err := enums.ParseCartInterval(input.Interval)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown cart interval")
		}
		interval = parsed
	}
	record := &models.Cart{
		UID:              input.UID,
		State:            enums.CartStateStart,
		Interval:         interval,
		OfferingConfigID: input.OfferingConfigID,
		Amount:           input.Amount,
		Experiment:       input.Experiment,
		CouponCode:       input.CouponCode,
		TaxAddress:       input.TaxAddress,
		Email:            input.Email,
		StripeCustomerID: input.StripeCustomerID,
	}
	created, err := m.repo.InsertCart(ctx, record)
	if err != nil {
		return nil, err
	}
	return resultFromModel(created), nil
}

func (m *manager) FetchCart(ctx context.Context, id []byte) (*ResultCart, error) {
	record, err := m.repo.FindCartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return resultFromModel(record), nil
}

func (m *manager) UpdateFreshCart(ctx context.Context, id []byte, version int64, patch *UpdateCartPatch) (*ResultCart, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if _, err := m.gate(ctx, id, enums.CartActionUpdateFreshCart); err != nil {
		return nil, err
	}
	record, err := m.writeState(ctx, id, version, enums.CartActionUpdateFreshCart, patch.toUpdates())
	if err != nil {
		return nil, err
	}
	return resultFromModel(record), nil
}

func (m *manager) SetProcessingCart(ctx context.Context, id []byte, version int64) (*ResultCart, error) {
	current, err := m.gate(ctx, id, enums.CartActionSetProcessing)
	if err != nil {
		return nil, err
	}
	if !IsValidTransition(current.State, enums.CartStateProcessing) {
		return nil, invalidStateTransitionError(current.State, enums.CartStateProcessing)
	}
	record, err := m.writeState(ctx, id, version, enums.CartActionSetProcessing, map[string]any{
		"state": enums.CartStateProcessing,
	})
	if err != nil {
		return nil, err
	}
	return resultFromModel(record), nil
}

func (m *manager) FinishCart(ctx context.Context, id []byte, version int64, outcome *FinishCartOutcome) (*ResultCart, error) {
	if outcome == nil {
		outcome = &FinishCartOutcome{}
	}
	current, err := m.gate(ctx, id, enums.CartActionFinishCart)
	if err != nil {
		return nil, err
	}
	target := enums.CartStateSuccess
	if outcome.ErrorReasonID != nil {
		target = enums.CartStateFail
	}
	if !IsValidTransition(current.State, target) {
		return nil, invalidStateTransitionError(current.State, target)
	}
	updates := map[string]any{"state": target}
	if outcome.UID != nil {
		updates["uid"] = *outcome.UID
	}
	if outcome.Amount != nil {
		updates["amount"] = *outcome.Amount
	}
	if outcome.StripeCustomerID != nil {
		updates["stripe_customer_id"] = *outcome.StripeCustomerID
	}
	if target == enums.CartStateFail {
		reason := *outcome.ErrorReasonID
		if !reason.IsValid() {
			reason = enums.CartErrorReasonUnknown
		}
		updates["error_reason_id"] = reason
	} else {
		// A successful finish needs an owner, a price, and a payment
		// customer on record. Missing any of them is a precondition
		// failure, not a state-machine failure, and leaves the row alone.
		uid := current.UID
		if outcome.UID != nil {
			uid = outcome.UID
		}
		if uid == nil || *uid == "" {
			return nil, missingRequiredFieldError("uid")
		}
		amount := current.Amount
		if outcome.Amount != nil {
			amount = *outcome.Amount
		}
		if amount == 0 {
			return nil, missingRequiredFieldError("amount")
		}
		customerID := current.StripeCustomerID
		if outcome.StripeCustomerID != nil {
			customerID = outcome.StripeCustomerID
		}
		if customerID == nil || *customerID == "" {
			return nil, missingRequiredFieldError("stripe_customer_id")
		}
	}
	record, err := m.writeState(ctx, id, version, enums.CartActionFinishCart, updates)
	if err != nil {
		return nil, err
	}
	return resultFromModel(record), nil
}

func (m *manager) FinishErrorCart(ctx context.Context, id []byte, version int64, reason enums.CartErrorReason) (*ResultCart, error) {
	current, err := m.gate(ctx, id, enums.CartActionFinishErrorCart)
	if err != nil {
		return nil, err
	}
	if !IsValidTransition(current.State, enums.CartStateFail) {
		return nil, invalidStateTransitionError(current.State, enums.CartStateFail)
	}
	if !reason.IsValid() {
		reason = enums.CartErrorReasonUnknown
	}
	record, err := m.writeState(ctx, id, version, enums.CartActionFinishErrorCart, map[string]any{
		"state":           enums.CartStateFail,
		"error_reason_id": reason,
	})
	if err != nil {
		return nil, err
	}
	return resultFromModel(record), nil
}

func (m *manager) DeleteCart(ctx context.Context, id []byte) error {
	if _, err := m.gate(ctx, id, enums.CartActionDeleteCart); err != nil {
		return err
	}
	return m.repo.DeleteCartByID(ctx, id)
}

// RestartCart does not mutate the source cart. It clones the buyer-editable
// fields into a brand new start-state cart so the failed attempt stays on
// record with its error reason intact.
func (m *manager) RestartCart(ctx context.Context, id []byte) (*ResultCart, error) {
	current, err := m.gate(ctx, id, enums.CartActionRestartCart)
	if err != nil {
		return nil, err
	}
	return m.SetupCart(ctx, &SetupCartInput{
		UID:              current.UID,
		Interval:         current.Interval.String(),
		OfferingConfigID: current.OfferingConfigID,
		Amount:           current.Amount,
		Experiment:       current.Experiment,
		CouponCode:       current.CouponCode,
		TaxAddress:       current.TaxAddress,
		Email:            current.Email,
		StripeCustomerID: current.StripeCustomerID,
	})
}
