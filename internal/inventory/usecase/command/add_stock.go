package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// AddStockCommand represents a batch of incoming stock
type AddStockCommand struct {
	Items   []domain.ItemDelta
	ActorID string
}

// AddStockHandler merges deltas into existing lots or opens new ones
type AddStockHandler struct {
	stock   domain.StockRepository
	changes domain.ChangeRepository
	locker  lock.Locker
	clock   clock.Clock
}

// NewAddStockHandler creates a new add stock handler
func NewAddStockHandler(stock domain.StockRepository, changes domain.ChangeRepository, locker lock.Locker, clk clock.Clock) *AddStockHandler {
	return &AddStockHandler{stock: stock, changes: changes, locker: locker, clock: clk}
}

// Handle executes the add stock command and returns its audit entry
func (h *AddStockHandler) Handle(ctx context.Context, cmd AddStockCommand) (*domain.ChangeEntry, error) {
	items, err := normalizeDeltas(cmd.Items)
	if err != nil {
		return nil, err
	}

	unlock, err := lockLots(ctx, h.locker, lotsOf(items))
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, it := range items {
		if err := h.merge(ctx, it); err != nil {
			return nil, err
		}
	}

	entry := &domain.ChangeEntry{
		UserID:    cmd.ActorID,
		Items:     domain.NewChangeItems(items),
		Operation: domain.OperationInsert,
		Date:      h.clock.Now(),
	}
	if err := h.changes.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record stock change: %w", err)
	}

	logger.Info(ctx).
		Str("change_id", entry.ID).
		Str("actor_id", cmd.ActorID).
		Int("items", len(items)).
		Msg("Stock added")

	return entry, nil
}

func (h *AddStockHandler) merge(ctx context.Context, it domain.ItemDelta) error {
	rec, err := h.stock.FindByLot(ctx, it.Lot())
	switch {
	case err == nil:
		rec.Quantity += it.Quantity
		if err := h.stock.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update lot %s: %w", it.Lot(), err)
		}
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		rec = &domain.StockRecord{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			SupplierID:   it.SupplierID,
			SupplierName: it.SupplierName,
			Quantity:     it.Quantity,
			ExpiryDate:   it.ExpiryDate,
		}
		if err := h.stock.Create(ctx, rec); err != nil {
			return fmt.Errorf("failed to create lot %s: %w", it.Lot(), err)
		}
		return nil
	default:
		return fmt.Errorf("failed to load lot %s: %w", it.Lot(), err)
	}
}
