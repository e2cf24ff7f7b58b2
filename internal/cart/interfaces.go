package cart

import (
	"context"

	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the carts table. Every
// mutation after insert is conditional on the caller-held version.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InsertCart(ctx context.Context, record *models.Cart) (*models.Cart, error)
	FindCartByID(ctx context.Context, id []byte) (*models.Cart, error)
	UpdateCartByIDAndVersion(ctx context.Context, id []byte, version int64, updates map[string]any) (*models.Cart, error)
	DeleteCartByID(ctx context.Context, id []byte) error
	FindAbandonedBefore(ctx context.Context, cutoff int64, limit int) ([]models.Cart, error)
}

// Manager gates every cart mutation behind the state machine before the
// repository sees it.
type Manager interface {
	SetupCart(ctx context.Context, input *SetupCartInput) (*ResultCart, error)
	FetchCart(ctx context.Context, id []byte) (*ResultCart, error)
	UpdateFreshCart(ctx context.Context, id []byte, version int64, patch *UpdateCartPatch) (*ResultCart, error)
	SetProcessingCart(ctx context.Context, id []byte, version int64) (*ResultCart, error)
	FinishCart(ctx context.Context, id []byte, version int64, outcome *FinishCartOutcome) (*ResultCart, error)
	FinishErrorCart(ctx context.Context, id []byte, version int64, reason enums.CartErrorReason) (*ResultCart, error)
	DeleteCart(ctx context.Context, id []byte) error
	RestartCart(ctx context.Context, id []byte) (*ResultCart, error)
}
