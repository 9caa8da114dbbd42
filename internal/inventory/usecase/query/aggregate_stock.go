package query

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

// AggregateStockHandler handles the per-supplier stock totals query
type AggregateStockHandler struct {
	repo domain.StockRepository
}

// NewAggregateStockHandler creates a new aggregate stock handler
func NewAggregateStockHandler(repo domain.StockRepository) *AggregateStockHandler {
	return &AggregateStockHandler{repo: repo}
}

// Handle groups on-hand stock by supplier and item
func (h *AggregateStockHandler) Handle(ctx context.Context) ([]domain.SupplierAggregate, error) {
	aggs, err := h.repo.AggregateBySupplierAndItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stock: %w", err)
	}
	return aggs, nil
}
