package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// lotLockTTL bounds how long a crashed replica can hold a lot.
const lotLockTTL = 30 * time.Second

// normalizeDeltas validates a batch and returns a copy with expiry dates
// truncated to the day. Nothing is mutated when validation fails.
func normalizeDeltas(items []domain.ItemDelta) ([]domain.ItemDelta, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", apperr.ErrInvalidInput)
	}

	out := make([]domain.ItemDelta, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		it.ExpiryDate = clock.Day(it.ExpiryDate)
		out[i] = it
	}
	return out, nil
}

// lockLots holds every lot the batch touches. The returned func releases them
// and never fails the caller.
func lockLots(ctx context.Context, locker lock.Locker, lots []domain.LotKey) (func(), error) {
	keys := make([]string, len(lots))
	for i, l := range lots {
		keys[i] = l.String()
	}

	release, err := lock.AcquireAll(ctx, locker, keys, lotLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock lots: %w", err)
	}

	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to release stock lot locks")
		}
	}, nil
}

func lotsOf(items []domain.ItemDelta) []domain.LotKey {
	lots := make([]domain.LotKey, len(items))
	for i, it := range items {
		lots[i] = it.Lot()
	}
	return lots
}
