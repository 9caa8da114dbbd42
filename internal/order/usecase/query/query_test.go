package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/internal/order/repository"
	"github.com/tair/kitchen-stock/pkg/apperr"
)

var placed = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T) domain.OrderRepository {
	t.Helper()
	repo := repository.NewMemoryOrderRepository()
	orders := []domain.Order{
		{ID: "ready", Status: domain.StatusReady, PlacedDate: placed},
		{ID: "approved", Status: domain.StatusApproved, PlacedDate: placed.Add(time.Hour)},
		{ID: "transit", Status: domain.StatusInTransit, DriverID: "driver-1", PlacedDate: placed.Add(2 * time.Hour)},
		{ID: "delivered", Status: domain.StatusDelivered, DriverID: "driver-1", PlacedDate: placed.Add(3 * time.Hour)},
		{ID: "other", Status: domain.StatusInTransit, DriverID: "driver-2", PlacedDate: placed.Add(4 * time.Hour)},
	}
	for i := range orders {
		orders[i].SupplierID = "s1"
		orders[i].Items = domain.NewOrderItems([]inventory.ItemDelta{{ItemID: "tomato", Quantity: 10}})
		require.NoError(t, repo.Create(context.Background(), &orders[i]))
	}
	return repo
}

func ids(orders []domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestListOrders_NewestFirst(t *testing.T) {
	h := NewListOrdersHandler(seed(t))

	orders, err := h.Handle(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "delivered", "transit", "approved", "ready"}, ids(orders))
}

func TestListOrders_ByStatus(t *testing.T) {
	ctx := context.Background()
	h := NewListOrdersHandler(seed(t))

	approved, err := h.Approved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"approved"}, ids(approved))

	ready, err := h.Ready(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ready"}, ids(ready))

	status := domain.StatusInTransit
	transit, err := h.Handle(ctx, ListOrdersQuery{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "transit"}, ids(transit))
}

func TestListOrders_ByDriver(t *testing.T) {
	h := NewListOrdersHandler(seed(t))

	orders, err := h.ByDriver(context.Background(), "driver-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"delivered", "transit"}, ids(orders))
}

func TestGetOrder(t *testing.T) {
	h := NewGetOrderHandler(seed(t))

	order, err := h.Handle(context.Background(), "approved")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, order.Status)
	require.Len(t, order.Items, 1)

	_, err = h.Handle(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
