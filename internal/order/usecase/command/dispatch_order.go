package command

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// DispatchOrderCommand puts an approved order on the road
type DispatchOrderCommand struct {
	OrderID  string
	DriverID string
}

// DispatchOrderHandler handles dispatch command
type DispatchOrderHandler struct {
	repo   domain.OrderRepository
	locker lock.Locker
}

// NewDispatchOrderHandler creates a new dispatch order handler
func NewDispatchOrderHandler(repo domain.OrderRepository, locker lock.Locker) *DispatchOrderHandler {
	return &DispatchOrderHandler{repo: repo, locker: locker}
}

// Handle executes the dispatch command
func (h *DispatchOrderHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (*domain.Order, error) {
	if cmd.DriverID == "" {
		return nil, fmt.Errorf("driver id is required: %w", apperr.ErrInvalidInput)
	}

	order, err := transition(ctx, h.repo, h.locker, cmd.OrderID, func(o *domain.Order) error {
		return o.Dispatch(cmd.DriverID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("driver_id", cmd.DriverID).
		Msg("Order in transit")
	return order, nil
}
