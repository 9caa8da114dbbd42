package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/kitchen-stock/pkg/apperr"
)

var (
	ErrStockRecordNotFound = fmt.Errorf("stock record %w", apperr.ErrNotFound)
	ErrChangeNotFound      = fmt.Errorf("inventory change %w", apperr.ErrNotFound)
	ErrLotExists           = fmt.Errorf("a stock record for this item and expiry date already exists: %w", apperr.ErrConflict)
)

// StockRecord is one lot: a quantity of an item sharing an expiry date.
// (item_id, expiry_date) is unique and quantity is always positive.
type StockRecord struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	ItemID       string    `json:"itemId" gorm:"not null;size:64;uniqueIndex:idx_stock_lot,priority:1"`
	ItemName     string    `json:"itemName" gorm:"not null"`
	SupplierID   string    `json:"supplierId" gorm:"not null;size:64;index"`
	SupplierName string    `json:"supplierName" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	ExpiryDate   time.Time `json:"expiryDate" gorm:"not null;uniqueIndex:idx_stock_lot,priority:2;index"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName specifies the table name
func (StockRecord) TableName() string {
	return "stock_records"
}

// Lot returns the record's lot key.
func (r StockRecord) Lot() LotKey {
	return LotKey{ItemID: r.ItemID, ExpiryDate: r.ExpiryDate}
}

// ItemDelta is a quantity change for one lot, as submitted by the caller.
type ItemDelta struct {
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	SupplierID   string    `json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	Quantity     int       `json:"quantity"`
	ExpiryDate   time.Time `json:"expiryDate"`
}

// Validate checks the fields every ledger operation needs.
func (d ItemDelta) Validate() error {
	switch {
	case d.ItemID == "":
		return fmt.Errorf("item id is required: %w", apperr.ErrInvalidInput)
	case d.Quantity <= 0:
		return fmt.Errorf("quantity must be positive: %w", apperr.ErrInvalidInput)
	case d.ExpiryDate.IsZero():
		return fmt.Errorf("expiry date is required: %w", apperr.ErrInvalidInput)
	}
	return nil
}

func (d ItemDelta) Lot() LotKey {
	return LotKey{ItemID: d.ItemID, ExpiryDate: d.ExpiryDate}
}

// LotKey identifies a lot.
type LotKey struct {
	ItemID     string
	ExpiryDate time.Time
}

// String is also the lock key for the lot.
func (k LotKey) String() string {
	return "lot:" + k.ItemID + ":" + k.ExpiryDate.UTC().Format("2006-01-02")
}

// ChangeEntry is the audit record written once per ledger batch.
type ChangeEntry struct {
	ID        string       `json:"id" gorm:"primaryKey;size:36"`
	UserID    string       `json:"userId" gorm:"size:64;index"`
	Items     []ChangeItem `json:"items" gorm:"foreignKey:ChangeID;constraint:OnDelete:CASCADE"`
	Operation Operation    `json:"operation" gorm:"not null;size:16;index"`
	Date      time.Time    `json:"date" gorm:"not null;index"`
}

func (ChangeEntry) TableName() string {
	return "inventory_changes"
}

// Deltas returns the entry's items in submission order.
func (c ChangeEntry) Deltas() []ItemDelta {
	out := make([]ItemDelta, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.ItemDelta
	}
	return out
}

// ChangeItem is one row of a change entry.
type ChangeItem struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	ChangeID string `json:"-" gorm:"not null;size:36;index"`
	Position int    `json:"-" gorm:"not null"`
	ItemDelta
}

func (ChangeItem) TableName() string {
	return "inventory_change_items"
}

// NewChangeItems keeps the deltas' order in Position.
func NewChangeItems(deltas []ItemDelta) []ChangeItem {
	items := make([]ChangeItem, len(deltas))
	for i, d := range deltas {
		items[i] = ChangeItem{Position: i, ItemDelta: d}
	}
	return items
}

// ItemCount is an item's on-hand total within a supplier aggregate.
type ItemCount struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// SupplierAggregate is the on-hand stock of one supplier, summed per item.
type SupplierAggregate struct {
	SupplierID   string      `json:"supplierId"`
	SupplierName string      `json:"supplierName"`
	Items        []ItemCount `json:"items"`
}

// ItemTotal is a (supplier, item) group with its summed quantity.
type ItemTotal struct {
	SupplierID   string
	SupplierName string
	ItemID       string
	ItemName     string
	Quantity     int
}

// GroupBySupplier folds per-item totals into one aggregate per supplier,
// preserving the input order of suppliers and items. Names come from the
// first total seen for each supplier.
func GroupBySupplier(totals []ItemTotal) []SupplierAggregate {
	var out []SupplierAggregate
	index := make(map[string]int)
	for _, t := range totals {
		i, ok := index[t.SupplierID]
		if !ok {
			i = len(out)
			index[t.SupplierID] = i
			out = append(out, SupplierAggregate{SupplierID: t.SupplierID, SupplierName: t.SupplierName})
		}
		out[i].Items = append(out[i].Items, ItemCount{
			ItemID:   t.ItemID,
			ItemName: t.ItemName,
			Quantity: t.Quantity,
		})
	}
	return out
}

// StockFilter is a fully-bounded stock query. Bounds are inclusive.
type StockFilter struct {
	NamePrefix  string
	MinQuantity int
	MaxQuantity int
	ExpiryFrom  time.Time
	ExpiryTo    time.Time
}

// StockRepository defines the contract for lot storage
type StockRepository interface {
	Create(ctx context.Context, record *StockRecord) error
	Update(ctx context.Context, record *StockRecord) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*StockRecord, error)
	FindByLot(ctx context.Context, lot LotKey) (*StockRecord, error)
	// FindAll returns matches ordered by expiry date, latest first.
	FindAll(ctx context.Context, filter StockFilter) ([]StockRecord, error)
	FindExpired(ctx context.Context, now time.Time) ([]StockRecord, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// AggregateBySupplierAndItem orders suppliers and items by id.
	AggregateBySupplierAndItem(ctx context.Context) ([]SupplierAggregate, error)
}

// ChangeRepository defines the contract for the append-only change log
type ChangeRepository interface {
	Append(ctx context.Context, entry *ChangeEntry) error
	FindByID(ctx context.Context, id string) (*ChangeEntry, error)
	// FindSince returns entries dated at or after since, newest first. A zero
	// since returns the whole log.
	FindSince(ctx context.Context, since time.Time) ([]ChangeEntry, error)
}
