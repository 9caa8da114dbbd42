package query

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
)

var (
	earliestExpiry = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	latestExpiry   = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// ListStockQuery represents the stock search. Nil bounds are open.
type ListStockQuery struct {
	ItemName       string
	MinQuantity    *int
	MaxQuantity    *int
	ExpiryDateFrom *time.Time
	ExpiryDateTo   *time.Time
}

// ListStockHandler handles list stock query
type ListStockHandler struct {
	repo domain.StockRepository
}

// NewListStockHandler creates a new list stock handler
func NewListStockHandler(repo domain.StockRepository) *ListStockHandler {
	return &ListStockHandler{repo: repo}
}

// Handle returns matching lots ordered by expiry date, latest first
func (h *ListStockHandler) Handle(ctx context.Context, q ListStockQuery) ([]domain.StockRecord, error) {
	filter := domain.StockFilter{
		NamePrefix:  q.ItemName,
		MinQuantity: 0,
		MaxQuantity: math.MaxInt32,
		ExpiryFrom:  earliestExpiry,
		ExpiryTo:    latestExpiry,
	}
	if q.MinQuantity != nil {
		filter.MinQuantity = *q.MinQuantity
	}
	if q.MaxQuantity != nil {
		filter.MaxQuantity = *q.MaxQuantity
	}
	if q.ExpiryDateFrom != nil {
		filter.ExpiryFrom = clock.Day(*q.ExpiryDateFrom)
	}
	if q.ExpiryDateTo != nil {
		filter.ExpiryTo = clock.Day(*q.ExpiryDateTo)
	}

	records, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return records, nil
}
