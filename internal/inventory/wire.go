//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	"github.com/tdnguyen/serialpos/internal/inventory/delivery/http"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
	orderdomain "github.com/tdnguyen/serialpos/internal/order/domain"
	orderrepository "github.com/tdnguyen/serialpos/internal/order/repository"
	supplierdomain "github.com/tdnguyen/serialpos/internal/supplier/domain"
	supplierrepository "github.com/tdnguyen/serialpos/internal/supplier/repository"
	"github.com/tdnguyen/serialpos/kafka"
)

// ProvideInventoryRepository provides the traced inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewGormInventoryRepositoryWithTracing(db)
}

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepository.NewGormProductRepository(db)
}

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) supplierdomain.SupplierRepository {
	return supplierrepository.NewGormSupplierRepository(db)
}

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepository.NewGormOrderRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideProductRepository,
	ProvideSupplierRepository,
	ProvideOrderRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewWarrantyInfoHandler,
		http.NewInventoryHandler,
	)
	return nil, nil
}
