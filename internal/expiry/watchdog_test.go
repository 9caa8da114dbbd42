package expiry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/internal/alert"
	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/inventory/repository"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	"github.com/tair/kitchen-stock/pkg/clock"
)

var noon = time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

func lotsExpiringIn(days ...int) []inventory.StockRecord {
	out := make([]inventory.StockRecord, len(days))
	for i, d := range days {
		out[i] = inventory.StockRecord{ItemID: "item", Quantity: 1, ExpiryDate: clock.Day(noon).AddDate(0, 0, d)}
	}
	return out
}

func TestExpiringSoon_Window(t *testing.T) {
	// at noon a lot dated today has already expired, one dated in four days is out of range
	assert.Equal(t, 0, ExpiringSoon(lotsExpiringIn(-1, 0, 4, 10), noon))
	assert.Equal(t, 3, ExpiringSoon(lotsExpiringIn(1, 2, 3), noon))
}

func TestWatchdog_AlertsForLotDueInThreeDays(t *testing.T) {
	ctx := context.Background()
	w, queue := newWatchdog(t, 3)

	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 1, queue.Len())
}

func newWatchdog(t *testing.T, days ...int) (*Watchdog, *alert.MemoryQueue) {
	t.Helper()
	repo := repository.NewMemoryStockRepository()
	for i, rec := range lotsExpiringIn(days...) {
		rec.ItemID = string(rune('a' + i))
		require.NoError(t, repo.Create(context.Background(), &rec))
	}
	queue := alert.NewMemoryQueue()
	return NewWatchdog(query.NewListStockHandler(repo), queue, clock.NewFixed(noon)), queue
}

func TestWatchdog_SingleAlertForManyLots(t *testing.T) {
	ctx := context.Background()
	w, queue := newWatchdog(t, 1, 1, 2, 30)

	require.NoError(t, w.Run(ctx))

	got, err := queue.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alert.CodeItemsToExpire, got[0].Code)
	assert.Equal(t, "Some items in the fridge are due to expire within the next 3 days", got[0].Message)
}

func TestWatchdog_QuietWhenNothingExpires(t *testing.T) {
	ctx := context.Background()
	w, queue := newWatchdog(t, 0, 4, 30)

	require.NoError(t, w.Run(ctx))
	assert.Zero(t, queue.Len())
}
