package command

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

const maxRelockAttempts = 3

// UpdateStockRecordCommand replaces every field of a lot except its id
type UpdateStockRecordCommand struct {
	ID          string
	Replacement domain.StockRecord
}

// UpdateStockRecordHandler handles the full-replace of a lot
type UpdateStockRecordHandler struct {
	stock  domain.StockRepository
	locker lock.Locker
}

// NewUpdateStockRecordHandler creates a new update stock record handler
func NewUpdateStockRecordHandler(stock domain.StockRepository, locker lock.Locker) *UpdateStockRecordHandler {
	return &UpdateStockRecordHandler{stock: stock, locker: locker}
}

// Handle executes the update command
func (h *UpdateStockRecordHandler) Handle(ctx context.Context, cmd UpdateStockRecordCommand) (*domain.StockRecord, error) {
	rep := cmd.Replacement
	rep.ID = cmd.ID
	if err := (domain.ItemDelta{ItemID: rep.ItemID, Quantity: rep.Quantity, ExpiryDate: rep.ExpiryDate}).Validate(); err != nil {
		return nil, err
	}
	rep.ExpiryDate = clock.Day(rep.ExpiryDate)

	unlock, err := h.lockCurrent(ctx, cmd.ID, rep.Lot())
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := h.stock.Update(ctx, &rep); err != nil {
		return nil, fmt.Errorf("failed to update stock record: %w", err)
	}

	logger.Info(ctx).
		Str("stock_id", rep.ID).
		Str("item_id", rep.ItemID).
		Int("quantity", rep.Quantity).
		Msg("Stock record replaced")

	return &rep, nil
}

// lockCurrent holds the record's present lot and the target lot. The record
// is re-read under the locks; if another writer moved it meanwhile, the locks
// are dropped and taken again for the new lot.
func (h *UpdateStockRecordHandler) lockCurrent(ctx context.Context, id string, target domain.LotKey) (func(), error) {
	for attempt := 0; attempt < maxRelockAttempts; attempt++ {
		seen, err := h.stock.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		unlock, err := lockLots(ctx, h.locker, []domain.LotKey{seen.Lot(), target})
		if err != nil {
			return nil, err
		}

		current, err := h.stock.FindByID(ctx, id)
		if err != nil {
			unlock()
			return nil, err
		}
		if current.Lot().String() == seen.Lot().String() {
			return unlock, nil
		}
		unlock()
	}
	return nil, fmt.Errorf("stock record %s kept moving between lots: %w", id, apperr.ErrConflict)
}
