package replenishment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
)

var monday = time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

func removal(items ...inventory.ItemDelta) inventory.ChangeEntry {
	return inventory.ChangeEntry{Operation: inventory.OperationRemove, Items: inventory.NewChangeItems(items)}
}

func TestComputeAverages(t *testing.T) {
	entries := []inventory.ChangeEntry{
		removal(inventory.ItemDelta{ItemID: "milk", Quantity: 30}, inventory.ItemDelta{ItemID: "eggs", Quantity: 7}),
		removal(inventory.ItemDelta{ItemID: "milk", Quantity: 18}),
		{Operation: inventory.OperationInsert, Items: inventory.NewChangeItems([]inventory.ItemDelta{{ItemID: "milk", Quantity: 500}})},
	}

	avg := ComputeAverages(entries)

	assert.Equal(t, 12, avg["milk"], "48 removed over 4 weeks")
	assert.Equal(t, 1, avg["eggs"], "integer division")
	assert.NotContains(t, avg, "flour")
}

func TestPlanOrders_Threshold(t *testing.T) {
	aggs := []inventory.SupplierAggregate{{
		SupplierID:   "s1",
		SupplierName: "Dairy Co",
		Items: []inventory.ItemCount{
			{ItemID: "milk", ItemName: "Milk", Quantity: 5},
			{ItemID: "cream", ItemName: "Cream", Quantity: 2},
			{ItemID: "butter", ItemName: "Butter", Quantity: 20},
		},
	}}
	averages := map[string]int{"milk": 12, "cream": 6, "butter": 12}

	orders := PlanOrders(aggs, averages, monday)

	require.Len(t, orders, 1)
	o := orders[0]
	assert.True(t, o.AutoGenerated)
	assert.Equal(t, "s1", o.SupplierID)
	assert.Equal(t, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), o.DeliveryDate)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "milk", o.Items[0].ItemID)
	assert.Equal(t, 12, o.Items[0].Quantity, "averages above the floor are ordered as is")
	assert.Equal(t, "cream", o.Items[1].ItemID)
	assert.Equal(t, 10, o.Items[1].Quantity, "small averages are raised to the floor")
	assert.Equal(t, time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC), o.Items[0].ExpiryDate)
	assert.Equal(t, "Dairy Co", o.Items[0].SupplierName)
}

func TestPlanOrders_SkipsSuppliersWithNothingLow(t *testing.T) {
	aggs := []inventory.SupplierAggregate{
		{SupplierID: "s1", Items: []inventory.ItemCount{{ItemID: "milk", Quantity: 12}}},
		{SupplierID: "s2", Items: []inventory.ItemCount{{ItemID: "salt", Quantity: 1}}},
	}

	orders := PlanOrders(aggs, map[string]int{"milk": 12}, monday)

	assert.Empty(t, orders, "equal to average is not low, unknown items average zero")
}
