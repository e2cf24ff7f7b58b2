package cart

import (
	"context"

	"github.com/subplatform/cart-backend/pkg/enums"
	"github.com/subplatform/cart-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Service is the composition layer consumed by transports. It owns the id
// encoding boundary: callers speak hex strings, the manager speaks raw bytes,
// and the stored version always comes from a fetch inside the same call.
type Service interface {
	SetupCart(ctx context.Context, input *SetupCartInput) (*ResultCart, error)
	GetCart(ctx context.Context, id string) (*ResultCart, error)
	UpdateCart(ctx context.Context, id string, patch *UpdateCartPatch) error
	ProcessCart(ctx context.Context, id string) (*ResultCart, error)
	CheckoutCart(ctx context.Context, id string, outcome *FinishCartOutcome) error
	FailCart(ctx context.Context, id string, reason enums.CartErrorReason) error
	DeleteCart(ctx context.Context, id string) error
	RestartCart(ctx context.Context, id string) (*ResultCart, error)
}

type service struct {
	manager Manager
	log     *logger.Logger
}

// NewService builds the cart service on top of the lifecycle manager.
func NewService(manager Manager, log *logger.Logger) Service {
	return &service{manager: manager, log: log}
}

// SetupCart records a brand new cart. The amount always starts at zero; a
// later pricing step populates it.
func (s *service) SetupCart(ctx context.Context, input *SetupCartInput) (*ResultCart, error) {
	if input == nil {
		input = &SetupCartInput{}
	}
	forwarded := *input
	forwarded.Amount = 0
	return s.manager.SetupCart(ctx, &forwarded)
}

func (s *service) GetCart(ctx context.Context, id string) (*ResultCart, error) {
	raw, err := DecodeCartID(id)
	if err != nil {
		return nil, err
	}
	return s.manager.FetchCart(ctx, raw)
}

func (s *service) UpdateCart(ctx context.Context, id string, patch *UpdateCartPatch) error {
	raw, err := DecodeCartID(id)
	if err != nil {
		return err
	}
	current, err := s.manager.FetchCart(ctx, raw)
	if err != nil {
		return err
	}
	_, err = s.manager.UpdateFreshCart(ctx, raw, current.Version, patch)
	return err
}

func (s *service) ProcessCart(ctx context.Context, id string) (*ResultCart, error) {
	raw, err := DecodeCartID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.manager.FetchCart(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.manager.SetProcessingCart(ctx, raw, current.Version)
}

// CheckoutCart finalizes a cart with the payment outcome. When the finish
// fails, for whatever reason, the cart is pushed to the fail state with an
// unknown reason so it never stays stuck in processing. The original finish
// error is logged and swallowed; only a failed degrade propagates, carrying
// both errors.
func (s *service) CheckoutCart(ctx context.Context, id string, outcome *FinishCartOutcome) error {
	raw, err := DecodeCartID(id)
	if err != nil {
		return err
	}
	ctx = s.log.WithCartID(ctx, id)
	current, err := s.manager.FetchCart(ctx, raw)
	if err != nil {
		return err
	}
	if _, finishErr := s.manager.FinishCart(ctx, raw, current.Version, outcome); finishErr != nil {
		s.log.Error(ctx, "cart finish failed, degrading to fail state", finishErr)
		// The finish may have bumped nothing or the version may have
		// moved underneath us; re-fetch so the degrade write carries
		// the version the row actually holds now.
		refreshed, fetchErr := s.manager.FetchCart(ctx, raw)
		if fetchErr != nil {
			return multierr.Append(finishErr, fetchErr)
		}
		if _, degradeErr := s.manager.FinishErrorCart(ctx, raw, refreshed.Version, enums.CartErrorReasonUnknown); degradeErr != nil {
			return multierr.Append(finishErr, degradeErr)
		}
	}
	return nil
}

func (s *service) FailCart(ctx context.Context, id string, reason enums.CartErrorReason) error {
	raw, err := DecodeCartID(id)
	if err != nil {
		return err
	}
	current, err := s.manager.FetchCart(ctx, raw)
	if err != nil {
		return err
	}
	_, err = s.manager.FinishErrorCart(ctx, raw, current.Version, reason)
	return err
}

func (s *service) DeleteCart(ctx context.Context, id string) error {
	raw, err := DecodeCartID(id)
	if err != nil {
		return err
	}
	return s.manager.DeleteCart(ctx, raw)
}

func (s *service) RestartCart(ctx context.Context, id string) (*ResultCart, error) {
	raw, err := DecodeCartID(id)
	if err != nil {
		return nil, err
	}
	return s.manager.RestartCart(ctx, raw)
}
