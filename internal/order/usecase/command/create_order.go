package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/kitchen-stock/internal/alert"
	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// CreateOrderCommand represents a new supplier order. Auto-generated orders
// wait for approval; manual ones are approved on creation.
type CreateOrderCommand struct {
	SupplierID    string
	SupplierName  string
	DeliveryDate  time.Time
	PlacedDate    time.Time
	Items         []inventory.ItemDelta
	AutoGenerated bool
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	repo   domain.OrderRepository
	alerts alert.Publisher
	clock  clock.Clock
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(repo domain.OrderRepository, alerts alert.Publisher, clk clock.Clock) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo, alerts: alerts, clock: clk}
}

// Handle executes the create order command
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.SupplierID == "" {
		return nil, fmt.Errorf("supplier id is required: %w", apperr.ErrInvalidInput)
	}
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("an order needs at least one item: %w", apperr.ErrInvalidInput)
	}
	// Items become stock on delivery, so they must already be valid lots.
	items := make([]inventory.ItemDelta, len(cmd.Items))
	for i, it := range cmd.Items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		it.ExpiryDate = clock.Day(it.ExpiryDate)
		items[i] = it
	}

	now := h.clock.Now()
	order := &domain.Order{
		SupplierID:   cmd.SupplierID,
		SupplierName: cmd.SupplierName,
		Status:       domain.StatusApproved,
		PlacedDate:   cmd.PlacedDate,
		DeliveryDate: clock.Day(cmd.DeliveryDate),
		Items:        domain.NewOrderItems(items),
	}
	if order.PlacedDate.IsZero() {
		order.PlacedDate = now
	}
	if cmd.AutoGenerated {
		order.Status = domain.StatusReady
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("supplier_id", order.SupplierID).
		Str("status", string(order.Status)).
		Int("items", len(order.Items)).
		Bool("auto_generated", cmd.AutoGenerated).
		Msg("Order created")

	notice := alert.OrderPlaced(order.ID, now)
	if cmd.AutoGenerated {
		notice = alert.OrderReady(now)
	}
	if err := h.alerts.Publish(ctx, notice); err != nil {
		return order, err
	}

	return order, nil
}
