package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// AutoMigrate creates the lot and change-log tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.StockRecord{}, &domain.ChangeEntry{}, &domain.ChangeItem{})
}

func (r *GormStockRepository) Create(ctx context.Context, record *domain.StockRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(record).Error, domain.ErrStockRecordNotFound)
}

func (r *GormStockRepository) Update(ctx context.Context, record *domain.StockRecord) error {
	res := r.db.WithContext(ctx).
		Model(&domain.StockRecord{}).
		Where("id = ?", record.ID).
		Select("item_id", "item_name", "supplier_id", "supplier_name", "quantity", "expiry_date", "updated_at").
		Updates(record)
	if res.Error != nil {
		return translate(res.Error, domain.ErrStockRecordNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockRecordNotFound
	}
	return nil
}

func (r *GormStockRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.StockRecord{}, "id = ?", id).Error
}

func (r *GormStockRepository) FindByID(ctx context.Context, id string) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, domain.ErrStockRecordNotFound)
	}
	return &record, nil
}

func (r *GormStockRepository) FindByLot(ctx context.Context, lot domain.LotKey) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND expiry_date = ?", lot.ItemID, lot.ExpiryDate).
		First(&record).Error
	if err != nil {
		return nil, translate(err, domain.ErrStockRecordNotFound)
	}
	return &record, nil
}

func (r *GormStockRepository) FindAll(ctx context.Context, f domain.StockFilter) ([]domain.StockRecord, error) {
	q := r.db.WithContext(ctx).
		Where("quantity BETWEEN ? AND ?", f.MinQuantity, f.MaxQuantity).
		Where("expiry_date BETWEEN ? AND ?", f.ExpiryFrom, f.ExpiryTo)
	if f.NamePrefix != "" {
		q = q.Where(`LOWER(item_name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(f.NamePrefix))+"%")
	}

	var records []domain.StockRecord
	err := q.Order("expiry_date DESC").Find(&records).Error
	return records, err
}

func (r *GormStockRepository) FindExpired(ctx context.Context, now time.Time) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := r.db.WithContext(ctx).
		Where("expiry_date < ?", now).
		Order("expiry_date DESC").
		Find(&records).Error
	return records, err
}

func (r *GormStockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expiry_date < ?", now).Delete(&domain.StockRecord{})
	return res.RowsAffected, res.Error
}

func (r *GormStockRepository) AggregateBySupplierAndItem(ctx context.Context) ([]domain.SupplierAggregate, error) {
	var records []domain.StockRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	// Same id order as the memory store, so both name a group after the same record.
	return domain.Aggregate(records), nil
}

type GormChangeRepository struct {
	db *gorm.DB
}

func NewGormChangeRepository(db *gorm.DB) *GormChangeRepository {
	return &GormChangeRepository{db: db}
}

func (r *GormChangeRepository) Append(ctx context.Context, entry *domain.ChangeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormChangeRepository) FindByID(ctx context.Context, id string) (*domain.ChangeEntry, error) {
	var entry domain.ChangeEntry
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, domain.ErrChangeNotFound)
	}
	return &entry, nil
}

func (r *GormChangeRepository) FindSince(ctx context.Context, since time.Time) ([]domain.ChangeEntry, error) {
	q := r.db.WithContext(ctx).Preload("Items", orderByPosition)
	if !since.IsZero() {
		q = q.Where("date >= ?", since)
	}

	var entries []domain.ChangeEntry
	err := q.Order("date DESC").Find(&entries).Error
	return entries, err
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrLotExists
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
