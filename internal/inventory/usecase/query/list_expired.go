package query

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
)

// ListExpiredHandler handles expired items query
type ListExpiredHandler struct {
	repo  domain.StockRepository
	clock clock.Clock
}

// NewListExpiredHandler creates a new list expired handler
func NewListExpiredHandler(repo domain.StockRepository, clk clock.Clock) *ListExpiredHandler {
	return &ListExpiredHandler{repo: repo, clock: clk}
}

// Handle returns lots whose expiry date is before now
func (h *ListExpiredHandler) Handle(ctx context.Context) ([]domain.StockRecord, error) {
	records, err := h.repo.FindExpired(ctx, h.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired stock: %w", err)
	}
	return records, nil
}
