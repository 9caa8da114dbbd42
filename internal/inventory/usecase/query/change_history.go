package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
)

// ChangeHistoryQuery limits the history to the trailing Weeks weeks; zero
// returns everything.
type ChangeHistoryQuery struct {
	Weeks int
}

// ChangeHistoryHandler handles change history query
type ChangeHistoryHandler struct {
	repo  domain.ChangeRepository
	clock clock.Clock
}

// NewChangeHistoryHandler creates a new change history handler
func NewChangeHistoryHandler(repo domain.ChangeRepository, clk clock.Clock) *ChangeHistoryHandler {
	return &ChangeHistoryHandler{repo: repo, clock: clk}
}

// Handle returns change entries newest first
func (h *ChangeHistoryHandler) Handle(ctx context.Context, q ChangeHistoryQuery) ([]domain.ChangeEntry, error) {
	var since time.Time
	if q.Weeks > 0 {
		since = h.clock.Now().AddDate(0, 0, -7*q.Weeks)
	}

	entries, err := h.repo.FindSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load change history: %w", err)
	}
	return entries, nil
}

// Last4Weeks is the window replenishment reads consumption from.
func (h *ChangeHistoryHandler) Last4Weeks(ctx context.Context) ([]domain.ChangeEntry, error) {
	return h.Handle(ctx, ChangeHistoryQuery{Weeks: 4})
}
