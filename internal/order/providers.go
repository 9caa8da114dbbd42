package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/order/delivery/http"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/internal/order/repository"
	"github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/internal/order/usecase/query"
	"github.com/tair/kitchen-stock/internal/order/verification"
)

// ProvideOrderRepository provides the traced gorm order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewOrderRepositoryWithTracing(repository.NewGormOrderRepository(db))
}

// ProvideMemoryOrderRepository provides the in-process order repository
func ProvideMemoryOrderRepository() domain.OrderRepository {
	return repository.NewOrderRepositoryWithTracing(repository.NewMemoryOrderRepository())
}

// Wire sets
var GormRepositorySet = wire.NewSet(ProvideOrderRepository)

var MemoryRepositorySet = wire.NewSet(ProvideMemoryOrderRepository)

var UsecaseSet = wire.NewSet(
	verification.NewVerifier,
	wire.Bind(new(command.DeliveryVerifier), new(*verification.Verifier)),
	command.NewCreateOrderHandler,
	command.NewApproveOrderHandler,
	command.NewRejectOrderHandler,
	command.NewDispatchOrderHandler,
	command.NewDeliverOrderHandler,
	query.NewGetOrderHandler,
	query.NewListOrdersHandler,
)

var HandlerSet = wire.NewSet(
	UsecaseSet,
	http.NewOrderHandler,
)
