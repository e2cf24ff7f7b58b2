package models

import (
	"github.com/subplatform/cart-backend/pkg/enums"
	"github.com/subplatform/cart-backend/pkg/types"
)

// Cart is the persisted record of one checkout attempt. The id is 16 raw
// bytes; callers outside the repository/manager layer only ever see its hex
// encoding. Timestamps are epoch milliseconds stamped by the repository, not
// by GORM auto-times, so every write (including the version CAS) controls
// them explicitly.
type Cart struct {
	ID               []byte                 `gorm:"column:id;type:bytea;primaryKey"`
	UID              *string                `gorm:"column:uid"`
	State            enums.CartState        `gorm:"column:state;not null;default:'start'"`
	Version          int64                  `gorm:"column:version;not null;default:1"`
	Interval         enums.CartInterval     `gorm:"column:interval;not null;default:'monthly'"`
	OfferingConfigID string                 `gorm:"column:offering_config_id;not null"`
	Amount           int64                  `gorm:"column:amount;not null;default:0"`
	Experiment       *string                `gorm:"column:experiment"`
	CouponCode       *string                `gorm:"column:coupon_code"`
	TaxAddress       *types.TaxAddress      `gorm:"column:tax_address;type:jsonb"`
	Email            *string                `gorm:"column:email"`
	StripeCustomerID *string                `gorm:"column:stripe_customer_id"`
	ErrorReasonID    *enums.CartErrorReason `gorm:"column:error_reason_id"`
	CreatedAt        int64                  `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt        int64                  `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName pins the storage table.
func (Cart) TableName() string {
	return "carts"
}
