package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

const orderLockTTL = 30 * time.Second

// transition loads the order under its lock, applies change and persists the
// result. Concurrent transitions of one order are serialized.
func transition(ctx context.Context, repo domain.OrderRepository, locker lock.Locker, id string, change func(*domain.Order) error) (*domain.Order, error) {
	release, err := locker.Acquire(ctx, "order:"+id, orderLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock order %s: %w", id, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", id).Msg("Failed to release order lock")
		}
	}()

	order, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(order); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return order, nil
}
