//go:build wireinject
// +build wireinject

package supplier

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/supplier/delivery/http"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/repository"
	"github.com/tdnguyen/serialpos/internal/supplier/usecase/query"
)

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return repository.NewGormSupplierRepository(db)
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
	ProvideSupplierRepository,
	ProvideInventoryRepository,
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.SupplierHandler, error) {
	wire.Build(
		RepositorySet,
		query.NewUnitsBySupplierHandler,
		http.NewSupplierHandler,
	)
	return nil, nil
}
