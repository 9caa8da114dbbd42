package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// AutoMigrate creates the order tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":    order.Status,
			"driver_id": order.DriverID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items", orderByPosition)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.DriverID != "" {
		q = q.Where("driver_id = ?", f.DriverID)
	}

	var orders []domain.Order
	err := q.Order("placed_date DESC").Find(&orders).Error
	return orders, err
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
