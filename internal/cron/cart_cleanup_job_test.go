package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/subplatform/cart-backend/internal/cart"
	"github.com/subplatform/cart-backend/pkg/db/models"
	"github.com/subplatform/cart-backend/pkg/enums"
	"github.com/subplatform/cart-backend/pkg/logger"
)

type fakeCartFinder struct {
	batches    [][]models.Cart
	lastCutoff int64
	calls      int
	err        error
}

func (f *fakeCartFinder) FindAbandonedBefore(ctx context.Context, cutoff int64, limit int) ([]models.Cart, error) {
	f.calls++
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

type fakeCartDeleter struct {
	deleted [][]byte
	errFor  map[string]error
}

func (f *fakeCartDeleter) DeleteCart(ctx context.Context, id []byte) error {
	if err, ok := f.errFor[string(id)]; ok {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func abandonedCart(id byte, state enums.CartState) models.Cart {
	return models.Cart{
		ID:      []byte{id, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		State:   state,
		Version: 1,
	}
}

func newCleanupJob(t *testing.T, finder *fakeCartFinder, deleter *fakeCartDeleter) *cartCleanupJob {
	t.Helper()
	jobIface, err := NewCartCleanupJob(CartCleanupJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Finder:  finder,
		Deleter: deleter,
	})
	if err != nil {
		t.Fatalf("NewCartCleanupJob: %v", err)
	}
	job, ok := jobIface.(*cartCleanupJob)
	if !ok {
		t.Fatalf("expected cartCleanupJob, got %T", jobIface)
	}
	return job
}

func TestCartCleanupJobDeletesAbandonedCarts(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	finder := &fakeCartFinder{batches: [][]models.Cart{{
		abandonedCart(1, enums.CartStateStart),
		abandonedCart(2, enums.CartStateProcessing),
	}}}
	deleter := &fakeCartDeleter{}
	job := newCleanupJob(t, finder, deleter)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(deleter.deleted) != 2 {
		t.Fatalf("expected 2 deletes, got %d", len(deleter.deleted))
	}
	expectedCutoff := now.Add(-defaultAbandonedCartTTL).UnixMilli()
	if finder.lastCutoff != expectedCutoff {
		t.Fatalf("expected cutoff %d, got %d", expectedCutoff, finder.lastCutoff)
	}
}

func TestCartCleanupJobSkipsConflictedCarts(t *testing.T) {
	touched := abandonedCart(1, enums.CartStateStart)
	stale := abandonedCart(2, enums.CartStateStart)
	finder := &fakeCartFinder{batches: [][]models.Cart{{touched, stale}}}
	deleter := &fakeCartDeleter{errFor: map[string]error{
		string(touched.ID): cart.ErrCartNotDeleted,
	}}
	job := newCleanupJob(t, finder, deleter)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("expected conflicts to be swallowed, got %v", err)
	}
	if len(deleter.deleted) != 1 {
		t.Fatalf("expected 1 delete, got %d", len(deleter.deleted))
	}
}

func TestCartCleanupJobPropagatesUnexpectedErrors(t *testing.T) {
	broken := abandonedCart(1, enums.CartStateStart)
	finder := &fakeCartFinder{batches: [][]models.Cart{{broken}}}
	deleter := &fakeCartDeleter{errFor: map[string]error{
		string(broken.ID): errors.New("storage down"),
	}}
	job := newCleanupJob(t, finder, deleter)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCartCleanupJobPropagatesFinderError(t *testing.T) {
	finder := &fakeCartFinder{err: errors.New("boom")}
	job := newCleanupJob(t, finder, &fakeCartDeleter{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
