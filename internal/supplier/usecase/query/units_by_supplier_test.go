package query

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/repository"
)

// setupTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection because every SQLite :memory: connection is its
// own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Supplier{}, &catalogdomain.Product{}, &invdomain.Unit{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestUnitsBySupplierHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	handler := NewUnitsBySupplierHandler(
		repository.NewGormSupplierRepository(db),
		invrepository.NewGormInventoryRepository(db),
		catalogrepository.NewGormProductRepository(db),
	)

	supplier := &domain.Supplier{Code: "SUP-01", Name: "ACME Distribution", IsActive: true}
	other := &domain.Supplier{Code: "SUP-02", Name: "Other Trading", IsActive: true}
	for _, s := range []*domain.Supplier{supplier, other} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}
	}

	product := &catalogdomain.Product{Name: "Phone X", SKU: "SKU-X", Price: 100, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	units := []*invdomain.Unit{
		{ProductID: product.ID, SerialNumber: "SN-1", Status: invdomain.StatusAvailable, ConditionGrade: invdomain.GradeNew, SupplierID: &supplier.ID, PurchasePrice: 80},
		{ProductID: product.ID, SerialNumber: "SN-2", Status: invdomain.StatusSold, ConditionGrade: invdomain.GradeNew, SupplierID: &supplier.ID, PurchasePrice: 85},
		{ProductID: product.ID, SerialNumber: "SN-3", Status: invdomain.StatusAvailable, ConditionGrade: invdomain.GradeNew, SupplierID: &other.ID, PurchasePrice: 90},
		// No supplier recorded; must never be guessed into anyone's trail.
		{ProductID: product.ID, SerialNumber: "SN-4", Status: invdomain.StatusAvailable, ConditionGrade: invdomain.GradeNew},
	}
	for _, u := range units {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to create unit: %v", err)
		}
	}

	t.Run("exact attribution with product decoration", func(t *testing.T) {
		result, err := handler.Handle(UnitsBySupplierQuery{SupplierID: supplier.ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if result.TotalUnits != 2 {
			t.Fatalf("expected 2 units, got %d", result.TotalUnits)
		}
		if result.TotalValue != 80+85 {
			t.Errorf("expected total value 165, got %d", result.TotalValue)
		}
		for _, su := range result.Units {
			if su.SupplierID == nil || *su.SupplierID != supplier.ID {
				t.Errorf("unit %s attributed to the wrong supplier", su.SerialNumber)
			}
			if su.ProductName != "Phone X" || su.ProductSKU != "SKU-X" {
				t.Errorf("unit %s missing product decoration: %q/%q", su.SerialNumber, su.ProductName, su.ProductSKU)
			}
		}
	})

	t.Run("supplier with no units gets an empty trail", func(t *testing.T) {
		empty := &domain.Supplier{Code: "SUP-03", Name: "Brand New", IsActive: true}
		if err := db.Create(empty).Error; err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		result, err := handler.Handle(UnitsBySupplierQuery{SupplierID: empty.ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if result.TotalUnits != 0 || len(result.Units) != 0 {
			t.Errorf("expected empty trail, got %d units", result.TotalUnits)
		}
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := handler.Handle(UnitsBySupplierQuery{SupplierID: 999})
		de, ok := invdomain.AsDomainError(err)
		if !ok || de.Code != invdomain.CodeNotFound {
			t.Fatalf("expected %s, got %v", invdomain.CodeNotFound, err)
		}
	})
}
