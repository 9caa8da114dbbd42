package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/inventory/delivery/http"
	"github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/inventory/repository"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/command"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
)

// ProvideStockRepository provides the traced gorm stock repository
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewStockRepositoryWithTracing(repository.NewGormStockRepository(db))
}

// ProvideChangeRepository provides the traced gorm change log
func ProvideChangeRepository(db *gorm.DB) domain.ChangeRepository {
	return repository.NewChangeRepositoryWithTracing(repository.NewGormChangeRepository(db))
}

// ProvideMemoryStockRepository provides the in-process stock repository
func ProvideMemoryStockRepository() domain.StockRepository {
	return repository.NewStockRepositoryWithTracing(repository.NewMemoryStockRepository())
}

// ProvideMemoryChangeRepository provides the in-process change log
func ProvideMemoryChangeRepository() domain.ChangeRepository {
	return repository.NewChangeRepositoryWithTracing(repository.NewMemoryChangeRepository())
}

// Wire sets
var GormRepositorySet = wire.NewSet(
	ProvideStockRepository,
	ProvideChangeRepository,
)

var MemoryRepositorySet = wire.NewSet(
	ProvideMemoryStockRepository,
	ProvideMemoryChangeRepository,
)

var UsecaseSet = wire.NewSet(
	command.NewAddStockHandler,
	command.NewRemoveStockHandler,
	command.NewUpdateStockRecordHandler,
	command.NewPurgeExpiredHandler,
	query.NewListStockHandler,
	query.NewGetStockRecordHandler,
	query.NewChangeHistoryHandler,
	query.NewGetChangeHandler,
	query.NewListExpiredHandler,
	query.NewAggregateStockHandler,
)

var HandlerSet = wire.NewSet(
	UsecaseSet,
	http.NewInventoryHandler,
)
