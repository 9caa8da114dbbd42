// Package replenishment turns recent consumption into draft supplier orders.
package replenishment

import (
	"time"

	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/pkg/clock"
)

const (
	// HistoryWeeks is the consumption window averaged over.
	HistoryWeeks = 4
	// MinOrderQuantity is the floor for a reordered item.
	MinOrderQuantity = 10
	// DeliveryLead is how far ahead deliveries are scheduled.
	DeliveryLead = 4 * 24 * time.Hour
	// ShelfLife is the expiry requested beyond the delivery date.
	ShelfLife = 10 * 24 * time.Hour
)

// ComputeAverages sums removed quantities per item over the window and
// divides by the number of weeks, rounding down.
func ComputeAverages(entries []inventory.ChangeEntry) map[string]int {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.Operation != inventory.OperationRemove {
			continue
		}
		for _, it := range e.Items {
			totals[it.ItemID] += it.Quantity
		}
	}

	averages := make(map[string]int, len(totals))
	for id, sum := range totals {
		averages[id] = sum / HistoryWeeks
	}
	return averages
}

// PlanOrders drafts one order per supplier for the items whose on-hand
// quantity has fallen below the weekly average. Suppliers with nothing to
// reorder get no order.
func PlanOrders(aggregates []inventory.SupplierAggregate, averages map[string]int, now time.Time) []command.CreateOrderCommand {
	deliveryDate := clock.Day(now.Add(DeliveryLead))
	desiredExpiry := clock.Day(now.Add(DeliveryLead + ShelfLife))

	var orders []command.CreateOrderCommand
	for _, agg := range aggregates {
		var items []inventory.ItemDelta
		for _, it := range agg.Items {
			avg := averages[it.ItemID]
			if it.Quantity >= avg {
				continue
			}
			items = append(items, inventory.ItemDelta{
				ItemID:       it.ItemID,
				ItemName:     it.ItemName,
				SupplierID:   agg.SupplierID,
				SupplierName: agg.SupplierName,
				Quantity:     reorderQuantity(avg),
				ExpiryDate:   desiredExpiry,
			})
		}
		if len(items) == 0 {
			continue
		}

		orders = append(orders, command.CreateOrderCommand{
			SupplierID:    agg.SupplierID,
			SupplierName:  agg.SupplierName,
			PlacedDate:    now,
			DeliveryDate:  deliveryDate,
			Items:         items,
			AutoGenerated: true,
		})
	}
	return orders
}

func reorderQuantity(avg int) int {
	if avg > MinOrderQuantity {
		return avg
	}
	return MinOrderQuantity
}
