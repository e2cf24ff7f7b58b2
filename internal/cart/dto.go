package cart

import (
	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/enums"
	"github.com/subplatform/cart-backend/pkg/types"
)

// SetupCartInput carries everything a new cart can start with. Pricing and
// eligibility are resolved by upstream collaborators before this is built, so
// nothing here is computed, only recorded.
type SetupCartInput struct {
	UID              *string           `json:"uid,omitempty" validate:"omitempty,min=1"`
	Interval         string            `json:"interval,omitempty" validate:"omitempty,oneof=daily weekly monthly halfyearly yearly"`
	OfferingConfigID string            `json:"offering_config_id" validate:"required"`
	Experiment       *string           `json:"experiment,omitempty"`
	CouponCode       *string           `json:"coupon_code,omitempty"`
	TaxAddress       *types.TaxAddress `json:"tax_address,omitempty"`
	Email            *string           `json:"email,omitempty" validate:"omitempty,email"`
	StripeCustomerID *string           `json:"stripe_customer_id,omitempty"`
	Amount           int64             `json:"amount" validate:"gte=0"`
}

// UpdateCartPatch holds the fields a fresh cart may change. Nil means "leave
// the stored value alone"; only non-nil fields end up in the conditional write.
type UpdateCartPatch struct {
	UID              *string           `json:"uid,omitempty" validate:"omitempty,min=1"`
	Email            *string           `json:"email,omitempty" validate:"omitempty,email"`
	CouponCode       *string           `json:"coupon_code,omitempty"`
	TaxAddress       *types.TaxAddress `json:"tax_address,omitempty"`
	StripeCustomerID *string           `json:"stripe_customer_id,omitempty"`
	Amount           *int64            `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

func (p UpdateCartPatch) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.UID != nil {
		updates["uid"] = *p.UID
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.CouponCode != nil {
		updates["coupon_code"] = *p.CouponCode
	}
	if p.TaxAddress != nil {
		updates["tax_address"] = p.TaxAddress
	}
	if p.StripeCustomerID != nil {
		updates["stripe_customer_id"] = *p.StripeCustomerID
	}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	return updates
}

// FinishCartOutcome is the payment-provider result contract handed to
// FinishCart. Fields left nil fall back to what the cart already stored. A
// non-nil ErrorReasonID turns the finish into a failure instead of a success.
type FinishCartOutcome struct {
	UID              *string
	Amount           *int64
	StripeCustomerID *string
	ErrorReasonID    *enums.CartErrorReason
}

// ResultCart is the externally safe cart view: binary id hex-encoded, stored
// fields passed through otherwise.
type ResultCart struct {
	ID               string                 `json:"id"`
	UID              *string                `json:"uid,omitempty"`
	State            enums.CartState        `json:"state"`
	Version          int64                  `json:"version"`
	Interval         enums.CartInterval     `json:"interval"`
	OfferingConfigID string                 `json:"offering_config_id"`
	Amount           int64                  `json:"amount"`
	Experiment       *string                `json:"experiment,omitempty"`
	CouponCode       *string                `json:"coupon_code,omitempty"`
	TaxAddress       *types.TaxAddress      `json:"tax_address,omitempty"`
	Email            *string                `json:"email,omitempty"`
	StripeCustomerID *string                `json:"stripe_customer_id,omitempty"`
	ErrorReasonID    *enums.CartErrorReason `json:"error_reason_id,omitempty"`
	CreatedAt        int64                  `json:"created_at"`
	UpdatedAt        int64                  `json:"updated_at"`
}

func resultFromModel(record *models.Cart) *ResultCart {
	if record == nil {
		return nil
	}
	return &ResultCart{
		ID:               EncodeCartID(record.ID),
		UID:              record.UID,
		State:            record.State,
		Version:          record.Version,
		Interval:         record.Interval,
		OfferingConfigID: record.OfferingConfigID,
		Amount:           record.Amount,
		Experiment:       record.Experiment,
		CouponCode:       record.CouponCode,
		TaxAddress:       record.TaxAddress,
		Email:            record.Email,
		StripeCustomerID: record.StripeCustomerID,
		ErrorReasonID:    record.ErrorReasonID,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
