package query

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

// ListOrdersQuery represents the order listing. Empty fields are unfiltered.
type ListOrdersQuery struct {
	Status   *domain.Status
	DriverID string
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle returns matching orders, most recently placed first
func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.repo.FindAll(ctx, domain.OrderFilter{Status: q.Status, DriverID: q.DriverID})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Approved lists orders waiting for a driver.
func (h *ListOrdersHandler) Approved(ctx context.Context) ([]domain.Order, error) {
	status := domain.StatusApproved
	return h.Handle(ctx, ListOrdersQuery{Status: &status})
}

// Ready lists auto-generated orders waiting for approval.
func (h *ListOrdersHandler) Ready(ctx context.Context) ([]domain.Order, error) {
	status := domain.StatusReady
	return h.Handle(ctx, ListOrdersQuery{Status: &status})
}

// ByDriver lists every order a driver has taken.
func (h *ListOrdersHandler) ByDriver(ctx context.Context, driverID string) ([]domain.Order, error) {
	return h.Handle(ctx, ListOrdersQuery{DriverID: driverID})
}
