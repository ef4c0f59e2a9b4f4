package query

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/inventory/usecase/command"
	orderdomain "github.com/tdnguyen/serialpos/internal/order/domain"
	orderrepository "github.com/tdnguyen/serialpos/internal/order/repository"
	supplierdomain "github.com/tdnguyen/serialpos/internal/supplier/domain"
	supplierrepository "github.com/tdnguyen/serialpos/internal/supplier/repository"
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

	if err := db.AutoMigrate(
		&catalogdomain.Product{},
		&domain.Unit{},
		&domain.AdjustmentEntry{},
		&supplierdomain.Supplier{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, minStock int64) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{
		Name:      "Test Laptop " + sku,
		SKU:       sku,
		Price:     30000000,
		CostPrice: 24000000,
		MinStock:  minStock,
		IsActive:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func receiveUnits(t *testing.T, db *gorm.DB, productID uint, serials []string) []*domain.Unit {
	t.Helper()

	repo := repository.NewGormInventoryRepository(db)
	products := catalogrepository.NewGormProductRepository(db)
	units, err := command.NewCreateUnitsHandler(repo, products).Handle(command.CreateUnitsCommand{
		ProductID: productID,
		Serials:   serials,
	})
	if err != nil {
		t.Fatalf("failed to receive units: %v", err)
	}
	return units
}

func TestStockSummaryHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormInventoryRepository(db)
	products := catalogrepository.NewGormProductRepository(db)
	handler := NewStockSummaryHandler(repo, products)

	product := createTestProduct(t, db, "SKU-100", 2)

	t.Run("zero units is out of stock", func(t *testing.T) {
		summary, err := handler.Handle(StockSummaryQuery{ProductID: product.ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if summary.Quantity != 0 {
			t.Errorf("expected quantity 0, got %d", summary.Quantity)
		}
		if summary.Status != catalogdomain.StockOutOfStock {
			t.Errorf("expected status %q, got %q", catalogdomain.StockOutOfStock, summary.Status)
		}
		if summary.StockValue != 0 {
			t.Errorf("expected stock value 0, got %d", summary.StockValue)
		}
	})

	t.Run("at min stock is low stock", func(t *testing.T) {
		receiveUnits(t, db, product.ID, []string{"SN-1", "SN-2"})

		summary, err := handler.Handle(StockSummaryQuery{ProductID: product.ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if summary.Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", summary.Quantity)
		}
		if summary.Status != catalogdomain.StockLowStock {
			t.Errorf("expected status %q, got %q", catalogdomain.StockLowStock, summary.Status)
		}
	})

	t.Run("above min stock is in stock with cost-price valuation", func(t *testing.T) {
		receiveUnits(t, db, product.ID, []string{"SN-3", "SN-4", "SN-5"})

		summary, err := handler.Handle(StockSummaryQuery{ProductID: product.ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if summary.Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", summary.Quantity)
		}
		if summary.Status != catalogdomain.StockInStock {
			t.Errorf("expected status %q, got %q", catalogdomain.StockInStock, summary.Status)
		}
		if want := int64(5) * 24000000; summary.StockValue != want {
			t.Errorf("expected stock value %d, got %d", want, summary.StockValue)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := handler.Handle(StockSummaryQuery{ProductID: 999})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeNotFound {
			t.Fatalf("expected %s, got %v", domain.CodeNotFound, err)
		}
	})
}

func TestStockSummaryHandler_HandleBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormInventoryRepository(db)
	products := catalogrepository.NewGormProductRepository(db)
	handler := NewStockSummaryHandler(repo, products)

	first := createTestProduct(t, db, "SKU-110", 1)
	second := createTestProduct(t, db, "SKU-111", 1)
	third := createTestProduct(t, db, "SKU-112", 1)

	receiveUnits(t, db, first.ID, []string{"SN-1", "SN-2", "SN-3"})
	receiveUnits(t, db, second.ID, []string{"SN-1"})

	ids := []uint{first.ID, second.ID, third.ID}
	batch, err := handler.HandleBatch(StockSummaryBatchQuery{ProductIDs: ids})
	if err != nil {
		t.Fatalf("HandleBatch() error = %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(batch))
	}

	// The batch must agree with per-product lookups.
	for _, id := range ids {
		single, err := handler.Handle(StockSummaryQuery{ProductID: id})
		if err != nil {
			t.Fatalf("Handle(%d) error = %v", id, err)
		}
		got, ok := batch[id]
		if !ok {
			t.Fatalf("batch is missing product %d", id)
		}
		if *got != *single {
			t.Errorf("product %d: batch %+v disagrees with single %+v", id, *got, *single)
		}
	}

	if batch[third.ID].Status != catalogdomain.StockOutOfStock {
		t.Errorf("expected product without units to be %q, got %q",
			catalogdomain.StockOutOfStock, batch[third.ID].Status)
	}
}

func TestListTransactionsHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormInventoryRepository(db)
	_ = catalogrepository.NewGormProductRepository(db)
	handler := NewListTransactionsHandler(repo)

	product := createTestProduct(t, db, "SKU-120", 0)
	units := receiveUnits(t, db, product.ID, []string{"SN-1", "SN-2", "SN-3"})

	if _, err := command.NewMarkSoldHandler(repo).Handle(command.MarkSoldCommand{
		UnitID:  units[0].ID,
		OrderID: 1,
	}); err != nil {
		t.Fatalf("failed to sell unit: %v", err)
	}
	if _, err := command.NewManualAdjustmentHandler(repo).Handle(command.ManualAdjustmentCommand{
		ProductID:   product.ID,
		NewQuantity: 4,
		Reason:      "cycle count",
	}); err != nil {
		t.Fatalf("failed to adjust stock: %v", err)
	}

	t.Run("entries come back newest-first and chain", func(t *testing.T) {
		entries, err := handler.Handle(ListTransactionsQuery{
			Filter: domain.TransactionFilter{ProductID: product.ID},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}

		wantTypes := []string{domain.AdjustmentManual, domain.AdjustmentExport, domain.AdjustmentImport}
		for i, want := range wantTypes {
			if entries[i].Type != want {
				t.Errorf("entry %d: expected type %q, got %q", i, want, entries[i].Type)
			}
		}

		// Chronologically each entry picks up where the previous left off.
		for i := len(entries) - 1; i > 0; i-- {
			if entries[i].QuantityAfter != entries[i-1].QuantityBefore {
				t.Errorf("ledger chain broken between %s (after %d) and %s (before %d)",
					entries[i].Type, entries[i].QuantityAfter,
					entries[i-1].Type, entries[i-1].QuantityBefore)
			}
		}
		if entries[2].QuantityBefore != 0 || entries[0].QuantityAfter != 4 {
			t.Errorf("expected chain 0 -> 4, got %d -> %d",
				entries[2].QuantityBefore, entries[0].QuantityAfter)
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		entries, err := handler.Handle(ListTransactionsQuery{
			Filter: domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentExport},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 export entry, got %d", len(entries))
		}
		if entries[0].UnitID == nil || *entries[0].UnitID != units[0].ID {
			t.Errorf("expected export entry bound to unit %d, got %v", units[0].ID, entries[0].UnitID)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := handler.Handle(ListTransactionsQuery{
			Filter: domain.TransactionFilter{Type: "teleport"},
		})
		if err == nil {
			t.Fatal("expected error for unknown type, got nil")
		}
	})
}

func TestWarrantyInfoHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormInventoryRepository(db)
	products := catalogrepository.NewGormProductRepository(db)
	suppliers := supplierrepository.NewGormSupplierRepository(db)
	orders := orderrepository.NewGormOrderRepository(db)
	handler := NewWarrantyInfoHandler(repo, products, suppliers, orders)

	product := createTestProduct(t, db, "SKU-130", 0)
	supplier := &supplierdomain.Supplier{Code: "SUP-01", Name: "ACME Distribution", IsActive: true}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	y, m, _ := time.Now().Date()
	start := time.Date(y, m, 15, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	period := 12
	unit := &domain.Unit{
		ProductID:            product.ID,
		SerialNumber:         "SN-WARR",
		Status:               domain.StatusAvailable,
		ConditionGrade:       domain.GradeNew,
		SupplierID:           &supplier.ID,
		WarrantyStartDate:    &start,
		WarrantyPeriodMonths: &period,
	}
	bare := &domain.Unit{
		ProductID:      product.ID,
		SerialNumber:   "SN-BARE",
		Status:         domain.StatusAvailable,
		ConditionGrade: domain.GradeNew,
	}
	for _, u := range []*domain.Unit{unit, bare} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to create unit: %v", err)
		}
	}

	t.Run("active warranty with joined context", func(t *testing.T) {
		info, err := handler.Handle(WarrantyInfoQuery{SerialNumber: "SN-WARR"})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if info.WarrantyStatus != "active" {
			t.Errorf("expected status active, got %q", info.WarrantyStatus)
		}
		if info.WarrantyEndDate == nil {
			t.Fatal("expected a derived end date")
		}
		if want := start.AddDate(0, 12, 0); !info.WarrantyEndDate.Equal(want) {
			t.Errorf("expected end date %v, got %v", want, *info.WarrantyEndDate)
		}
		if info.DaysLeft == nil || *info.DaysLeft <= 0 {
			t.Errorf("expected positive days left, got %v", info.DaysLeft)
		}
		if info.Product == nil || info.Product.ID != product.ID {
			t.Error("expected product to be joined")
		}
		if info.Supplier == nil || info.Supplier.ID != supplier.ID {
			t.Error("expected supplier to be joined")
		}
	})

	t.Run("no warranty data is unknown", func(t *testing.T) {
		info, err := handler.Handle(WarrantyInfoQuery{SerialNumber: "SN-BARE"})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if info.WarrantyStatus != "unknown" {
			t.Errorf("expected status unknown, got %q", info.WarrantyStatus)
		}
		if info.WarrantyEndDate != nil {
			t.Errorf("expected nil end date, got %v", *info.WarrantyEndDate)
		}
		if info.DaysLeft != nil {
			t.Errorf("expected nil days left, got %d", *info.DaysLeft)
		}
	})

	t.Run("unknown serial", func(t *testing.T) {
		_, err := handler.Handle(WarrantyInfoQuery{SerialNumber: "SN-MISSING"})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeNotFound {
			t.Fatalf("expected %s, got %v", domain.CodeNotFound, err)
		}
	})

	t.Run("empty serial", func(t *testing.T) {
		if _, err := handler.Handle(WarrantyInfoQuery{}); err == nil {
			t.Fatal("expected error for empty serial, got nil")
		}
	})
}

func TestListUnitsHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormInventoryRepository(db)
	handler := NewListUnitsHandler(repo)

	product := createTestProduct(t, db, "SKU-140", 0)
	receiveUnits(t, db, product.ID, []string{"SN-1", "SN-2"})

	units, err := handler.Handle(ListUnitsQuery{ProductID: product.ID})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}

	if _, err := handler.Handle(ListUnitsQuery{}); err == nil {
		t.Fatal("expected error without product id, got nil")
	}
}
