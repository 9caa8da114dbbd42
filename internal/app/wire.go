//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/kitchen-stock/internal/config"
	"github.com/tair/kitchen-stock/internal/inventory"
	"github.com/tair/kitchen-stock/internal/order"
)

// InitializeApp wires the service over PostgreSQL
func InitializeApp(cfg *config.Config, db *gorm.DB) (*App, func(), error) {
	wire.Build(
		PlatformSet,
		AlertSet,
		inventory.GormRepositorySet,
		inventory.HandlerSet,
		order.GormRepositorySet,
		order.HandlerSet,
		ProvideChecker,
		JobSet,
		ProvideGormHealthChecker,
		NewApp,
	)
	return nil, nil, nil
}

// InitializeMemoryApp wires the service over in-process storage
func InitializeMemoryApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		PlatformSet,
		AlertSet,
		inventory.MemoryRepositorySet,
		inventory.HandlerSet,
		order.MemoryRepositorySet,
		order.HandlerSet,
		ProvideChecker,
		JobSet,
		ProvideMemoryHealthChecker,
		NewApp,
	)
	return nil, nil, nil
}
