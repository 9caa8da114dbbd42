package command

import (
	"context"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// RemoveStockCommand represents a batch of consumed or discarded stock
type RemoveStockCommand struct {
	Items   []domain.ItemDelta
	ActorID string
}

// RemoveStockHandler subtracts deltas from their lots, deleting lots that run out
type RemoveStockHandler struct {
	stock   domain.StockRepository
	changes domain.ChangeRepository
	locker  lock.Locker
	clock   clock.Clock
}

// NewRemoveStockHandler creates a new remove stock handler
func NewRemoveStockHandler(stock domain.StockRepository, changes domain.ChangeRepository, locker lock.Locker, clk clock.Clock) *RemoveStockHandler {
	return &RemoveStockHandler{stock: stock, changes: changes, locker: locker, clock: clk}
}

// Handle executes the remove stock command. If any lot is missing the batch
// fails with a not-found error and no lot is touched.
func (h *RemoveStockHandler) Handle(ctx context.Context, cmd RemoveStockCommand) (*domain.ChangeEntry, error) {
	items, err := normalizeDeltas(cmd.Items)
	if err != nil {
		return nil, err
	}

	unlock, err := lockLots(ctx, h.locker, lotsOf(items))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Pre-check: replay the batch against current quantities. A lot emptied by
	// an earlier item of the same batch counts as missing for later items.
	touched := make(map[domain.LotKey]*domain.StockRecord)
	var order []domain.LotKey
	for _, it := range items {
		lot := it.Lot()
		rec, seen := touched[lot]
		if !seen {
			rec, err = h.stock.FindByLot(ctx, lot)
			if err != nil {
				return nil, fmt.Errorf("item %s expiring %s: %w", it.ItemID, it.ExpiryDate.Format("2006-01-02"), err)
			}
			touched[lot] = rec
			order = append(order, lot)
		} else if rec.Quantity <= 0 {
			return nil, fmt.Errorf("item %s expiring %s: %w", it.ItemID, it.ExpiryDate.Format("2006-01-02"), domain.ErrStockRecordNotFound)
		}
		rec.Quantity -= it.Quantity
	}

	for _, lot := range order {
		rec := touched[lot]
		if rec.Quantity <= 0 {
			if err := h.stock.Delete(ctx, rec.ID); err != nil {
				return nil, fmt.Errorf("failed to delete lot %s: %w", lot, err)
			}
			continue
		}
		if err := h.stock.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to update lot %s: %w", lot, err)
		}
	}

	entry := &domain.ChangeEntry{
		UserID:    cmd.ActorID,
		Items:     domain.NewChangeItems(items),
		Operation: domain.OperationRemove,
		Date:      h.clock.Now(),
	}
	if err := h.changes.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record stock change: %w", err)
	}

	logger.Info(ctx).
		Str("change_id", entry.ID).
		Str("actor_id", cmd.ActorID).
		Int("items", len(items)).
		Msg("Stock removed")

	return entry, nil
}
