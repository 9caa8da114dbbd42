package query

import (
	"context"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, id string) (*domain.Order, error) {
	return h.repo.FindByID(ctx, id)
}
