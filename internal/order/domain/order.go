package domain

import (
	"context"
	"fmt"
	"time"

	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/pkg/apperr"
)

var ErrOrderNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)

// Order is a supplier order. Rejected orders are deleted, not kept with a
// status of their own.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;size:36"`
	SupplierID   string      `json:"supplierId" gorm:"not null;size:64;index"`
	SupplierName string      `json:"supplierName" gorm:"not null"`
	DriverID     string      `json:"driverId,omitempty" gorm:"size:64;index"`
	Status       Status      `json:"status" gorm:"not null;size:16;index"`
	PlacedDate   time.Time   `json:"placedDate" gorm:"not null;index"`
	DeliveryDate time.Time   `json:"deliveryDate" gorm:"not null"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Deltas returns the order lines in their original order.
func (o Order) Deltas() []inventory.ItemDelta {
	out := make([]inventory.ItemDelta, len(o.Items))
	for i, it := range o.Items {
		out[i] = it.ItemDelta
	}
	return out
}

// OrderItem is one order line.
type OrderItem struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	OrderID  string `json:"-" gorm:"not null;size:36;index"`
	Position int    `json:"-" gorm:"not null"`
	inventory.ItemDelta
}

func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItems keeps the deltas' order in Position.
func NewOrderItems(deltas []inventory.ItemDelta) []OrderItem {
	items := make([]OrderItem, len(deltas))
	for i, d := range deltas {
		items[i] = OrderItem{Position: i, ItemDelta: d}
	}
	return items
}

// Approve moves a READY or APPROVED order to APPROVED.
func (o *Order) Approve() error {
	if o.Status != StatusReady && o.Status != StatusApproved {
		return o.transitionError("approve")
	}
	o.Status = StatusApproved
	return nil
}

// CheckRejectable reports whether the order may still be rejected.
func (o *Order) CheckRejectable() error {
	switch o.Status {
	case StatusReady, StatusApproved, StatusInTransit:
		return nil
	default:
		return o.transitionError("reject")
	}
}

// Dispatch hands an APPROVED order to a driver.
func (o *Order) Dispatch(driverID string) error {
	if o.Status != StatusApproved {
		return o.transitionError("dispatch")
	}
	o.Status = StatusInTransit
	o.DriverID = driverID
	return nil
}

// Deliver marks an IN_TRANSIT order as delivered.
func (o *Order) Deliver() error {
	if o.Status != StatusInTransit {
		return o.transitionError("deliver")
	}
	o.Status = StatusDelivered
	return nil
}

func (o *Order) transitionError(action string) error {
	return fmt.Errorf("cannot %s order %s in status %s: %w", action, o.ID, o.Status, apperr.ErrInvalidTransition)
}

// OrderFilter narrows a listing. Zero fields match everything.
type OrderFilter struct {
	Status   *Status
	DriverID string
}

// OrderRepository defines the contract for order storage
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// Update persists status and driver; items are immutable.
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Order, error)
	// FindAll returns matches ordered by placed date, newest first.
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)
}
