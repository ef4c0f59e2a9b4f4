//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tdnguyen/serialpos/internal/catalog/delivery/http"
	"github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/catalog/repository"
	"github.com/tdnguyen/serialpos/internal/catalog/usecase/query"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	invquery "github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(db *gorm.DB) invdomain.InventoryRepository {
	return invrepository.NewGormInventoryRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideInventoryRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		invquery.NewStockSummaryHandler,
		query.NewListProductsHandler,
		http.NewProductHandler,
	)
	return nil, nil
}
