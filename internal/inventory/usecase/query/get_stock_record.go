package query

import (
	"context"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

// GetStockRecordHandler handles get stock record query
type GetStockRecordHandler struct {
	repo domain.StockRepository
}

// NewGetStockRecordHandler creates a new get stock record handler
func NewGetStockRecordHandler(repo domain.StockRepository) *GetStockRecordHandler {
	return &GetStockRecordHandler{repo: repo}
}

// Handle executes the get stock record query
func (h *GetStockRecordHandler) Handle(ctx context.Context, id string) (*domain.StockRecord, error) {
	return h.repo.FindByID(ctx, id)
}
