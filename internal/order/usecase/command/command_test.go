package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/internal/alert"
	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	invrepo "github.com/tair/kitchen-stock/internal/inventory/repository"
	invcommand "github.com/tair/kitchen-stock/internal/inventory/usecase/command"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/internal/order/repository"
	"github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/internal/order/verification"
	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
)

var now = time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	orders   *repository.MemoryOrderRepository
	stock    *invrepo.MemoryStockRepository
	changes  *invrepo.MemoryChangeRepository
	alerts   *alert.MemoryQueue
	pass     bool
	create   *command.CreateOrderHandler
	approve  *command.ApproveOrderHandler
	reject   *command.RejectOrderHandler
	dispatch *command.DispatchOrderHandler
	deliver  *command.DeliverOrderHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		orders:  repository.NewMemoryOrderRepository(),
		stock:   invrepo.NewMemoryStockRepository(),
		changes: invrepo.NewMemoryChangeRepository(),
		alerts:  alert.NewMemoryQueue(),
		pass:    true,
	}
	clk := clock.NewFixed(now)
	locker := lock.NewLocalLocker()

	addStock := invcommand.NewAddStockHandler(h.stock, h.changes, locker, clk)
	checker := verification.CheckerFunc(func(context.Context, domain.Order) bool { return h.pass })
	verifier := verification.NewVerifier(prometheus.NewRegistry(), checker, addStock, h.alerts, clk)

	h.create = command.NewCreateOrderHandler(h.orders, h.alerts, clk)
	h.approve = command.NewApproveOrderHandler(h.orders, locker, h.alerts, clk)
	h.reject = command.NewRejectOrderHandler(h.orders, locker)
	h.dispatch = command.NewDispatchOrderHandler(h.orders, locker)
	h.deliver = command.NewDeliverOrderHandler(h.orders, locker, verifier)
	return h
}

func (h *harness) drain(t *testing.T) []alert.Alert {
	t.Helper()
	got, err := h.alerts.Drain(context.Background())
	require.NoError(t, err)
	return got
}

func sampleItems() []inventory.ItemDelta {
	return []inventory.ItemDelta{
		{ItemID: "milk", ItemName: "Milk", SupplierID: "s1", SupplierName: "Dairy Co", Quantity: 12, ExpiryDate: now.AddDate(0, 0, 14)},
		{ItemID: "cream", ItemName: "Cream", SupplierID: "s1", SupplierName: "Dairy Co", Quantity: 10, ExpiryDate: now.AddDate(0, 0, 14)},
	}
}

func (h *harness) autoOrder(t *testing.T) *domain.Order {
	t.Helper()
	o, err := h.create.Handle(context.Background(), command.CreateOrderCommand{
		SupplierID:    "s1",
		SupplierName:  "Dairy Co",
		DeliveryDate:  now.AddDate(0, 0, 4),
		Items:         sampleItems(),
		AutoGenerated: true,
	})
	require.NoError(t, err)
	return o
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	auto := h.autoOrder(t)
	assert.Equal(t, domain.StatusReady, auto.Status)
	assert.Equal(t, now, auto.PlacedDate)
	assert.True(t, auto.DeliveryDate.Equal(clock.Day(now.AddDate(0, 0, 4))))

	manual, err := h.create.Handle(ctx, command.CreateOrderCommand{SupplierID: "s1", Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, manual.Status)

	alerts := h.drain(t)
	require.Len(t, alerts, 2)
	assert.Equal(t, alert.CodeOrderPlaced, alerts[0].Code)
	assert.Equal(t, alert.CodeOrderReady, alerts[1].Code)

	_, err = h.create.Handle(ctx, command.CreateOrderCommand{SupplierID: "s1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCreateOrder_RejectsItemsThatCannotBecomeStock(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	noExpiry := sampleItems()
	noExpiry[1].ExpiryDate = time.Time{}
	_, err := h.create.Handle(ctx, command.CreateOrderCommand{SupplierID: "s1", Items: noExpiry})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = h.create.Handle(ctx, command.CreateOrderCommand{Items: sampleItems()})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput, "supplier id is required")

	stored, err := h.orders.FindAll(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, h.drain(t))
}

func TestDeliveryCycle_CheckPasses(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	o := h.autoOrder(t)

	_, err := h.approve.Handle(ctx, o.ID)
	require.NoError(t, err)
	_, err = h.dispatch.Handle(ctx, command.DispatchOrderCommand{OrderID: o.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	h.drain(t)

	result, err := h.deliver.Handle(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, domain.StatusDelivered, result.Order.Status)

	alerts := h.drain(t)
	require.Len(t, alerts, 2)
	assert.Equal(t, alert.CodeCheckingFunctionResult, alerts[0].Code)
	assert.Equal(t, "Checking function passed", alerts[0].Title)
	assert.Equal(t, alert.CodeOrderDelivered, alerts[1].Code)

	entries, err := h.changes.FindSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inventory.OperationInsert, entries[0].Operation)
	assert.Equal(t, "driver-1", entries[0].UserID)
	require.Len(t, entries[0].Items, 2)
	assert.Equal(t, "milk", entries[0].Items[0].ItemID)

	milk, err := h.stock.FindByLot(ctx, inventory.LotKey{ItemID: "milk", ExpiryDate: clock.Day(now.AddDate(0, 0, 14))})
	require.NoError(t, err)
	assert.Equal(t, 12, milk.Quantity)

	stored, err := h.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)
}

func TestDeliveryCycle_CheckFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.pass = false
	o := h.autoOrder(t)

	_, err := h.approve.Handle(ctx, o.ID)
	require.NoError(t, err)
	_, err = h.dispatch.Handle(ctx, command.DispatchOrderCommand{OrderID: o.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	h.drain(t)

	result, err := h.deliver.Handle(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, result.Passed)

	alerts := h.drain(t)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Checking function failed", alerts[0].Title)
	assert.Equal(t, alert.CodeOrderDelivered, alerts[1].Code)

	entries, err := h.changes.FindSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed check books nothing")

	stored, err := h.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)
}

func TestRejectDeletesOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	o := h.autoOrder(t)

	require.NoError(t, h.reject.Handle(ctx, o.ID))

	_, err := h.orders.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, h.reject.Handle(ctx, o.ID), apperr.ErrNotFound)
}

func TestInvalidTransitionsAreRefused(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	o := h.autoOrder(t)

	_, err := h.dispatch.Handle(ctx, command.DispatchOrderCommand{OrderID: o.ID, DriverID: "driver-1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "READY orders need approval first")

	_, err = h.deliver.Handle(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = h.approve.Handle(ctx, o.ID)
	require.NoError(t, err)
	_, err = h.dispatch.Handle(ctx, command.DispatchOrderCommand{OrderID: o.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = h.deliver.Handle(ctx, o.ID)
	require.NoError(t, err)

	_, err = h.approve.Handle(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.ErrorIs(t, h.reject.Handle(ctx, o.ID), apperr.ErrInvalidTransition)

	stored, err := h.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)
}

func TestApproveIsRepeatable(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	o := h.autoOrder(t)
	h.drain(t)

	for i := 0; i < 2; i++ {
		approved, err := h.approve.Handle(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, approved.Status)
	}

	alerts := h.drain(t)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Order "+o.ID+" was approved and sent!", alerts[0].Message)
}

func TestDispatchNeedsDriver(t *testing.T) {
	h := newHarness(t)
	_, err := h.dispatch.Handle(context.Background(), command.DispatchOrderCommand{OrderID: "any"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
