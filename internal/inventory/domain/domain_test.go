package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

func TestOperationWireValues(t *testing.T) {
	for op, want := range map[domain.Operation]string{
		domain.OperationRemove: "0",
		domain.OperationInsert: "1",
	} {
		b, err := json.Marshal(op)
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}

func TestOperationDecodesIntOrName(t *testing.T) {
	var op domain.Operation
	require.NoError(t, json.Unmarshal([]byte(`1`), &op))
	assert.Equal(t, domain.OperationInsert, op)

	require.NoError(t, json.Unmarshal([]byte(`"REMOVE"`), &op))
	assert.Equal(t, domain.OperationRemove, op)

	assert.Error(t, json.Unmarshal([]byte(`7`), &op))
	assert.Error(t, json.Unmarshal([]byte(`"UPSERT"`), &op))
}

func TestAggregate_GroupsBySupplierThenItem(t *testing.T) {
	records := []domain.StockRecord{
		{ID: "1", SupplierID: "s2", SupplierName: "Dairy Co", ItemID: "milk", ItemName: "Milk", Quantity: 4},
		{ID: "2", SupplierID: "s1", SupplierName: "Green Farm", ItemID: "tomato", ItemName: "Tomato", Quantity: 3},
		{ID: "3", SupplierID: "s1", SupplierName: "Green Farm Ltd", ItemID: "tomato", ItemName: "Tomatoes", Quantity: 2},
		{ID: "4", SupplierID: "s1", SupplierName: "Green Farm", ItemID: "basil", ItemName: "Basil", Quantity: 1},
	}

	got := domain.Aggregate(records)

	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].SupplierID)
	assert.Equal(t, "Green Farm", got[0].SupplierName)
	assert.Equal(t, []domain.ItemCount{
		{ItemID: "basil", ItemName: "Basil", Quantity: 1},
		{ItemID: "tomato", ItemName: "Tomato", Quantity: 5},
	}, got[0].Items)
	assert.Equal(t, []domain.ItemCount{{ItemID: "milk", ItemName: "Milk", Quantity: 4}}, got[1].Items)
}

func TestChangeEntryJSONCarriesItemFields(t *testing.T) {
	entry := domain.ChangeEntry{
		ID:        "c1",
		Operation: domain.OperationInsert,
		Items:     domain.NewChangeItems([]domain.ItemDelta{{ItemID: "tomato", Quantity: 2}}),
	}

	b, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, float64(1), decoded["operation"])
	items := decoded["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "tomato", items[0].(map[string]interface{})["itemId"])
}
