package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

// MemoryStockRepository keeps lots in a map. Records are copied in and out.
type MemoryStockRepository struct {
	mu      sync.RWMutex
	records map[string]domain.StockRecord
}

func NewMemoryStockRepository() *MemoryStockRepository {
	return &MemoryStockRepository{records: make(map[string]domain.StockRecord)}
}

func (r *MemoryStockRepository) Create(ctx context.Context, record *domain.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lotTaken(record.Lot(), "") {
		return domain.ErrLotExists
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	r.records[record.ID] = *record
	return nil
}

func (r *MemoryStockRepository) Update(ctx context.Context, record *domain.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return domain.ErrStockRecordNotFound
	}
	if r.lotTaken(record.Lot(), record.ID) {
		return domain.ErrLotExists
	}
	r.records[record.ID] = *record
	return nil
}

func (r *MemoryStockRepository) lotTaken(lot domain.LotKey, exceptID string) bool {
	for id, rec := range r.records {
		if id != exceptID && rec.ItemID == lot.ItemID && rec.ExpiryDate.Equal(lot.ExpiryDate) {
			return true
		}
	}
	return false
}

func (r *MemoryStockRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.records, id)
	r.mu.Unlock()
	return nil
}

func (r *MemoryStockRepository) FindByID(ctx context.Context, id string) (*domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrStockRecordNotFound
	}
	return &rec, nil
}

func (r *MemoryStockRepository) FindByLot(ctx context.Context, lot domain.LotKey) (*domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ItemID == lot.ItemID && rec.ExpiryDate.Equal(lot.ExpiryDate) {
			return &rec, nil
		}
	}
	return nil, domain.ErrStockRecordNotFound
}

func (r *MemoryStockRepository) FindAll(ctx context.Context, f domain.StockFilter) ([]domain.StockRecord, error) {
	prefix := strings.ToLower(f.NamePrefix)
	return r.collect(func(rec domain.StockRecord) bool {
		return rec.Quantity >= f.MinQuantity && rec.Quantity <= f.MaxQuantity &&
			!rec.ExpiryDate.Before(f.ExpiryFrom) && !rec.ExpiryDate.After(f.ExpiryTo) &&
			strings.HasPrefix(strings.ToLower(rec.ItemName), prefix)
	}), nil
}

func (r *MemoryStockRepository) FindExpired(ctx context.Context, now time.Time) ([]domain.StockRecord, error) {
	return r.collect(func(rec domain.StockRecord) bool {
		return rec.ExpiryDate.Before(now)
	}), nil
}

func (r *MemoryStockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, rec := range r.records {
		if rec.ExpiryDate.Before(now) {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryStockRepository) AggregateBySupplierAndItem(ctx context.Context) ([]domain.SupplierAggregate, error) {
	all := r.collect(func(domain.StockRecord) bool { return true })
	// Map order is arbitrary; id order decides which record names a group.
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return domain.Aggregate(all), nil
}

// collect returns matching records, latest expiry first.
func (r *MemoryStockRepository) collect(match func(domain.StockRecord) bool) []domain.StockRecord {
	r.mu.RLock()
	var out []domain.StockRecord
	for _, rec := range r.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.After(out[j].ExpiryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MemoryChangeRepository is an append-only slice.
type MemoryChangeRepository struct {
	mu      sync.RWMutex
	entries []domain.ChangeEntry
}

func NewMemoryChangeRepository() *MemoryChangeRepository {
	return &MemoryChangeRepository{}
}

func (r *MemoryChangeRepository) Append(ctx context.Context, entry *domain.ChangeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	stored := *entry
	stored.Items = append([]domain.ChangeItem(nil), entry.Items...)

	r.mu.Lock()
	r.entries = append(r.entries, stored)
	r.mu.Unlock()
	return nil
}

func (r *MemoryChangeRepository) FindByID(ctx context.Context, id string) (*domain.ChangeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			e.Items = append([]domain.ChangeItem(nil), e.Items...)
			return &e, nil
		}
	}
	return nil, domain.ErrChangeNotFound
}

func (r *MemoryChangeRepository) FindSince(ctx context.Context, since time.Time) ([]domain.ChangeEntry, error) {
	r.mu.RLock()
	var out []domain.ChangeEntry
	for _, e := range r.entries {
		if !e.Date.Before(since) {
			e.Items = append([]domain.ChangeItem(nil), e.Items...)
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	// Newest first. Among equal dates the later append comes first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
