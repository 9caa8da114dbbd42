package command

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// PurgeExpiredHandler deletes every lot whose expiry date is before now
type PurgeExpiredHandler struct {
	stock domain.StockRepository
	clock clock.Clock
}

// NewPurgeExpiredHandler creates a new purge expired handler
func NewPurgeExpiredHandler(stock domain.StockRepository, clk clock.Clock) *PurgeExpiredHandler {
	return &PurgeExpiredHandler{stock: stock, clock: clk}
}

// Handle deletes expired lots and returns how many went. Repeat calls are no-ops.
func (h *PurgeExpiredHandler) Handle(ctx context.Context) (int64, error) {
	n, err := h.stock.DeleteExpired(ctx, h.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired stock: %w", err)
	}

	logger.Info(ctx).Int64("deleted", n).Msg("Expired stock purged")
	return n, nil
}
