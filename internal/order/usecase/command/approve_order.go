package command

import (
	"context"

	"github.com/tair/kitchen-stock/internal/alert"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// ApproveOrderHandler handles the head chef's approval
type ApproveOrderHandler struct {
	repo   domain.OrderRepository
	locker lock.Locker
	alerts alert.Publisher
	clock  clock.Clock
}

// NewApproveOrderHandler creates a new approve order handler
func NewApproveOrderHandler(repo domain.OrderRepository, locker lock.Locker, alerts alert.Publisher, clk clock.Clock) *ApproveOrderHandler {
	return &ApproveOrderHandler{repo: repo, locker: locker, alerts: alerts, clock: clk}
}

// Handle approves a READY order. Approving an approved order repeats the alert.
func (h *ApproveOrderHandler) Handle(ctx context.Context, id string) (*domain.Order, error) {
	order, err := transition(ctx, h.repo, h.locker, id, (*domain.Order).Approve)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).Str("order_id", id).Msg("Order approved")

	if err := h.alerts.Publish(ctx, alert.OrderPlaced(order.ID, h.clock.Now())); err != nil {
		return order, err
	}
	return order, nil
}
