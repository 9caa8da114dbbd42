package domain

import "sort"

// Aggregate computes the supplier/item aggregation over raw lots. Names come
// from the first record of each group in input order.
func Aggregate(records []StockRecord) []SupplierAggregate {
	type key struct{ supplier, item string }

	totals := make(map[key]*ItemTotal)
	var order []key
	for _, r := range records {
		k := key{r.SupplierID, r.ItemID}
		t, ok := totals[k]
		if !ok {
			t = &ItemTotal{
				SupplierID:   r.SupplierID,
				SupplierName: r.SupplierName,
				ItemID:       r.ItemID,
				ItemName:     r.ItemName,
			}
			totals[k] = t
			order = append(order, k)
		}
		t.Quantity += r.Quantity
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].supplier != order[j].supplier {
			return order[i].supplier < order[j].supplier
		}
		return order[i].item < order[j].item
	})

	flat := make([]ItemTotal, len(order))
	for i, k := range order {
		flat[i] = *totals[k]
	}
	return GroupBySupplier(flat)
}
