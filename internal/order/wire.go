//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/order/delivery/http"
	"github.com/tdnguyen/serialpos/internal/order/domain"
	"github.com/tdnguyen/serialpos/internal/order/repository"
	"github.com/tdnguyen/serialpos/internal/order/usecase/command"
	"github.com/tdnguyen/serialpos/internal/order/usecase/query"
	"github.com/tdnguyen/serialpos/kafka"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(db *gorm.DB) invdomain.InventoryRepository {
	return invrepository.NewGormInventoryRepositoryWithTracing(db)
}

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepository.NewGormProductRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideInventoryRepository,
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateOrderHandler,
		query.NewListOrdersHandler,
		http.NewOrderHandler,
	)
	return nil, nil
}
