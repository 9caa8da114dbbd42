package command

import (
	"context"

	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// DeliveryVerifier runs once an order is delivered. Satisfied by
// *verification.Verifier.
type DeliveryVerifier interface {
	Verify(ctx context.Context, order domain.Order) (bool, error)
}

// DeliveryResult is the delivered order plus the outcome of its check.
type DeliveryResult struct {
	Order  *domain.Order `json:"order"`
	Passed bool          `json:"checkPassed"`
}

// DeliverOrderHandler handles deliver command
type DeliverOrderHandler struct {
	repo     domain.OrderRepository
	locker   lock.Locker
	verifier DeliveryVerifier
}

// NewDeliverOrderHandler creates a new deliver order handler
func NewDeliverOrderHandler(repo domain.OrderRepository, locker lock.Locker, verifier DeliveryVerifier) *DeliverOrderHandler {
	return &DeliverOrderHandler{repo: repo, locker: locker, verifier: verifier}
}

// Handle marks the order delivered, then verifies it. The order stays
// delivered whatever the check says.
func (h *DeliverOrderHandler) Handle(ctx context.Context, id string) (*DeliveryResult, error) {
	order, err := transition(ctx, h.repo, h.locker, id, (*domain.Order).Deliver)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("driver_id", order.DriverID).
		Msg("Order delivered")

	passed, err := h.verifier.Verify(ctx, *order)
	if err != nil {
		return nil, err
	}
	return &DeliveryResult{Order: order, Passed: passed}, nil
}
