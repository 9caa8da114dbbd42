package query

import (
	"context"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

// GetChangeHandler handles get change query
type GetChangeHandler struct {
	repo domain.ChangeRepository
}

// NewGetChangeHandler creates a new get change handler
func NewGetChangeHandler(repo domain.ChangeRepository) *GetChangeHandler {
	return &GetChangeHandler{repo: repo}
}

// Handle executes the get change query
func (h *GetChangeHandler) Handle(ctx context.Context, id string) (*domain.ChangeEntry, error) {
	return h.repo.FindByID(ctx, id)
}
