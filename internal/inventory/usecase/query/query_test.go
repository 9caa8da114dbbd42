package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/inventory/repository"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	"github.com/tair/kitchen-stock/pkg/clock"
)

var now = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func TestListStock_DefaultsAndBounds(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStockRepository()
	for _, r := range []domain.StockRecord{
		{ItemID: "a", ItemName: "Apple", Quantity: 3, ExpiryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ItemID: "b", ItemName: "Banana", Quantity: 7, ExpiryDate: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)},
		{ItemID: "c", ItemName: "apricot", Quantity: 12, ExpiryDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
	} {
		rec := r
		require.NoError(t, repo.Create(ctx, &rec))
	}
	h := query.NewListStockHandler(repo)

	all, err := h.Handle(ctx, query.ListStockQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].ItemID, all[1].ItemID, all[2].ItemID})

	ap, err := h.Handle(ctx, query.ListStockQuery{ItemName: "Ap"})
	require.NoError(t, err)
	assert.Len(t, ap, 2)

	from := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	bounded, err := h.Handle(ctx, query.ListStockQuery{
		MinQuantity:    intPtr(7),
		MaxQuantity:    intPtr(12),
		ExpiryDateFrom: &from,
	})
	require.NoError(t, err)
	require.Len(t, bounded, 2, "the from bound is a calendar date and inclusive")
	assert.Equal(t, "b", bounded[0].ItemID)
}

func TestChangeHistory_Last4Weeks(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryChangeRepository()
	for _, age := range []time.Duration{40 * 24 * time.Hour, 28 * 24 * time.Hour, 2 * 24 * time.Hour} {
		require.NoError(t, repo.Append(ctx, &domain.ChangeEntry{
			Operation: domain.OperationRemove,
			Date:      now.Add(-age),
		}))
	}
	h := query.NewChangeHistoryHandler(repo, clock.NewFixed(now))

	all, err := h.Handle(ctx, query.ChangeHistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	recent, err := h.Last4Weeks(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 2, "an entry exactly 28 days old is included")
	assert.True(t, recent[0].Date.After(recent[1].Date))
}

func TestListExpired_IncludesLotsDatedToday(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStockRepository()
	dates := []time.Time{clock.Day(now).AddDate(0, 0, -1), clock.Day(now), clock.Day(now).AddDate(0, 0, 1)}
	for _, exp := range dates {
		require.NoError(t, repo.Create(ctx, &domain.StockRecord{ItemID: "x" + exp.String(), Quantity: 1, ExpiryDate: exp}))
	}

	expired, err := query.NewListExpiredHandler(repo, clock.NewFixed(now)).Handle(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, clock.Day(now), expired[0].ExpiryDate)
	assert.Equal(t, clock.Day(now).AddDate(0, 0, -1), expired[1].ExpiryDate)
}
