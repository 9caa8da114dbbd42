package replenishment

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/internal/alert"
	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	invrepo "github.com/tair/kitchen-stock/internal/inventory/repository"
	invcommand "github.com/tair/kitchen-stock/internal/inventory/usecase/command"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	orderdomain "github.com/tair/kitchen-stock/internal/order/domain"
	orderrepo "github.com/tair/kitchen-stock/internal/order/repository"
	ordercommand "github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
)

func TestJob_DraftsReadyOrdersFromConsumption(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(monday.AddDate(0, 0, -14))
	stock := invrepo.NewMemoryStockRepository()
	changes := invrepo.NewMemoryChangeRepository()
	orders := orderrepo.NewMemoryOrderRepository()
	alerts := alert.NewMemoryQueue()
	locker := lock.NewLocalLocker()

	add := invcommand.NewAddStockHandler(stock, changes, locker, clk)
	remove := invcommand.NewRemoveStockHandler(stock, changes, locker, clk)

	exp := monday.AddDate(0, 1, 0)
	milk := func(q int) inventory.ItemDelta {
		return inventory.ItemDelta{ItemID: "milk", ItemName: "Milk", SupplierID: "s1", SupplierName: "Dairy Co", Quantity: q, ExpiryDate: exp}
	}
	flour := func(q int) inventory.ItemDelta {
		return inventory.ItemDelta{ItemID: "flour", ItemName: "Flour", SupplierID: "s2", SupplierName: "Mill", Quantity: q, ExpiryDate: exp}
	}

	_, err := add.Handle(ctx, invcommand.AddStockCommand{Items: []inventory.ItemDelta{milk(60), flour(50)}})
	require.NoError(t, err)
	_, err = remove.Handle(ctx, invcommand.RemoveStockCommand{Items: []inventory.ItemDelta{milk(50), flour(4)}})
	require.NoError(t, err)

	clk.Set(monday)
	job := NewJob(
		prometheus.NewRegistry(),
		query.NewChangeHistoryHandler(changes, clk),
		query.NewAggregateStockHandler(stock),
		ordercommand.NewCreateOrderHandler(orders, alerts, clk),
		clk,
	)
	require.NoError(t, job.Run(ctx))

	ready := orderdomain.StatusReady
	drafted, err := orders.FindAll(ctx, orderdomain.OrderFilter{Status: &ready})
	require.NoError(t, err)
	require.Len(t, drafted, 1, "only milk fell below its average")
	assert.Equal(t, "s1", drafted[0].SupplierID)
	require.Len(t, drafted[0].Items, 1)
	assert.Equal(t, 12, drafted[0].Items[0].Quantity, "50/4 rounds down to 12")
	assert.Equal(t, 1.0, testutil.ToFloat64(job.generated))

	queued, err := alerts.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, alert.CodeOrderReady, queued[0].Code)

	lots, err := stock.FindAll(ctx, inventory.StockFilter{MaxQuantity: 1 << 30, ExpiryTo: exp.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Len(t, lots, 2, "the job does not touch stock")
}

func TestJob_IgnoresConsumptionOlderThanFourWeeks(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(monday.AddDate(0, 0, -35))
	stock := invrepo.NewMemoryStockRepository()
	changes := invrepo.NewMemoryChangeRepository()
	orders := orderrepo.NewMemoryOrderRepository()
	locker := lock.NewLocalLocker()

	exp := monday.AddDate(0, 1, 0)
	item := inventory.ItemDelta{ItemID: "milk", SupplierID: "s1", Quantity: 100, ExpiryDate: exp}
	_, err := invcommand.NewAddStockHandler(stock, changes, locker, clk).Handle(ctx, invcommand.AddStockCommand{Items: []inventory.ItemDelta{item}})
	require.NoError(t, err)
	item.Quantity = 95
	_, err = invcommand.NewRemoveStockHandler(stock, changes, locker, clk).Handle(ctx, invcommand.RemoveStockCommand{Items: []inventory.ItemDelta{item}})
	require.NoError(t, err)

	clk.Set(monday)
	job := NewJob(
		prometheus.NewRegistry(),
		query.NewChangeHistoryHandler(changes, clk),
		query.NewAggregateStockHandler(stock),
		ordercommand.NewCreateOrderHandler(orders, alert.NewMemoryQueue(), clk),
		clk,
	)
	require.NoError(t, job.Run(ctx))

	all, err := orders.FindAll(ctx, orderdomain.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
