package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

// MemoryOrderRepository keeps orders in a map. Orders are copied in and out.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]domain.Order)}
}

func clone(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	r.mu.Lock()
	r.orders[order.ID] = clone(*order)
	r.mu.Unlock()
	return nil
}

func (r *MemoryOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	stored.Status = order.Status
	stored.DriverID = order.DriverID
	r.orders[order.ID] = stored
	return nil
}

func (r *MemoryOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o = clone(o)
	return &o, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	var out []domain.Order
	for _, o := range r.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.DriverID != "" && o.DriverID != f.DriverID {
			continue
		}
		out = append(out, clone(o))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlacedDate.Equal(out[j].PlacedDate) {
			return out[i].PlacedDate.After(out[j].PlacedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
