package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/subplatform/cart-backend/internal/cart"
	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/logger"
	"go.uber.org/multierr"
)

const (
	defaultAbandonedCartTTL = 72 * time.Hour
	defaultCleanupBatchSize = 500
)

type abandonedCartFinder interface {
	FindAbandonedBefore(ctx context.Context, cutoff int64, limit int) ([]models.Cart, error)
}

type cartDeleter interface {
	DeleteCart(ctx context.Context, id []byte) error
}

// CartCleanupJobParams configure the abandoned-cart cleanup job.
type CartCleanupJobParams struct {
	Logger    *logger.Logger
	Finder    abandonedCartFinder
	Deleter   cartDeleter
	TTL       time.Duration
	BatchSize int
}

// NewCartCleanupJob builds the job that deletes carts abandoned before they
// reached a terminal state.
func NewCartCleanupJob(params CartCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Finder == nil {
		return nil, fmt.Errorf("cart finder required")
	}
	if params.Deleter == nil {
		return nil, fmt.Errorf("cart deleter required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultAbandonedCartTTL
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultCleanupBatchSize
	}
	return &cartCleanupJob{
		logg:      params.Logger,
		finder:    params.Finder,
		deleter:   params.Deleter,
		ttl:       ttl,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type cartCleanupJob struct {
	logg      *logger.Logger
	finder    abandonedCartFinder
	deleter   cartDeleter
	ttl       time.Duration
	batchSize int
	now       func() time.Time
}

func (j *cartCleanupJob) Name() string { return "cart-cleanup" }

// Run deletes abandoned carts in batches. Each delete goes through the
// lifecycle manager, so a cart that reached a terminal state after the batch
// was read is left alone rather than force-deleted.
func (j *cartCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.ttl).UnixMilli()
	var deleted, skipped int64
	var errs error
	for {
		batch, err := j.finder.FindAbandonedBefore(ctx, cutoff, j.batchSize)
		if err != nil {
			return fmt.Errorf("find abandoned carts: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		progressed := false
		for _, record := range batch {
			if err := j.deleter.DeleteCart(ctx, record.ID); err != nil {
				// A cart finishing mid-sweep surfaces as a state
				// conflict. That is a skip, not a job failure.
				if isExpectedSweepConflict(err) {
					skipped++
					continue
				}
				errs = multierr.Append(errs, err)
				continue
			}
			deleted++
			progressed = true
		}
		if !progressed || len(batch) < j.batchSize {
			break
		}
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"ttl_hours":    j.ttl.Hours(),
		"rows_deleted": deleted,
		"rows_skipped": skipped,
	})
	j.logg.Info(logCtx, "cart cleanup complete")
	return errs
}

func isExpectedSweepConflict(err error) bool {
	return errors.Is(err, cart.ErrCartNotFound) ||
		errors.Is(err, cart.ErrCartNotDeleted) ||
		errors.Is(err, cart.ErrInvalidStateForAction)
}
