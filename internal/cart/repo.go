package cart

import (
	"context"
	"errors"
	"time"

	"github.com/subplatform/cart-backend/pkg/db"
	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(gdb *gorm.DB) Repository {
	return &repository{db: gdb}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func (r *repository) InsertCart(ctx context.Context, record *models.Cart) (*models.Cart, error) {
	if len(record.ID) == 0 {
		record.ID = newCartID()
	}
	record.Version = 1
	now := nowMillis()
	record.CreatedAt = now
	record.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, notCreatedError(err)
		}
		return nil, err
	}
	return record, nil
}

func (r *repository) FindCartByID(ctx context.Context, id []byte) (*models.Cart, error) {
	var record models.Cart
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(id)
		}
		return nil, err
	}
	return &record, nil
}

// UpdateCartByIDAndVersion applies updates only when the stored version still
// matches the caller's. The version bump and updated_at stamp ride in the same
// conditional write, so a concurrent writer makes this a no-op and the caller
// sees a not-updated error instead of clobbering the other write.
func (r *repository) UpdateCartByIDAndVersion(ctx context.Context, id []byte, version int64, updates map[string]any) (*models.Cart, error) {
	updates["version"] = version + 1
	updates["updated_at"] = nowMillis()
	result := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notUpdatedError(id, version)
	}
	return r.FindCartByID(ctx, id)
}

// DeleteCartByID removes the row outright. Deletion is not version-gated:
// the row is going away, so there is no later write a stale version could
// clobber. The state gate in the manager is what protects live carts.
func (r *repository) DeleteCartByID(ctx context.Context, id []byte) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Cart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notDeletedError(id)
	}
	return nil
}

// FindAbandonedBefore returns non-terminal carts whose last write predates the
// cutoff, oldest first, capped at limit. The cleanup worker walks these in
// batches.
func (r *repository) FindAbandonedBefore(ctx context.Context, cutoff int64, limit int) ([]models.Cart, error) {
	var records []models.Cart
	err := r.db.WithContext(ctx).
		Where("state IN ? AND updated_at < ?", []enums.CartState{enums.CartStateStart, enums.CartStateProcessing}, cutoff).
		Order("updated_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
