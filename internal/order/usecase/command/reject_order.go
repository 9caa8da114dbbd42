package command

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// RejectOrderHandler handles order rejection
type RejectOrderHandler struct {
	repo   domain.OrderRepository
	locker lock.Locker
}

// NewRejectOrderHandler creates a new reject order handler
func NewRejectOrderHandler(repo domain.OrderRepository, locker lock.Locker) *RejectOrderHandler {
	return &RejectOrderHandler{repo: repo, locker: locker}
}

// Handle deletes the order. Delivered orders cannot be rejected.
func (h *RejectOrderHandler) Handle(ctx context.Context, id string) error {
	release, err := h.locker.Acquire(ctx, "order:"+id, orderLockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock order %s: %w", id, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", id).Msg("Failed to release order lock")
		}
	}()

	order, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := order.CheckRejectable(); err != nil {
		return err
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}

	logger.Info(ctx).
		Str("order_id", id).
		Str("status", string(order.Status)).
		Msg("Order rejected")
	return nil
}
