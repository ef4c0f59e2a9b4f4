package command

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	invrepository "github.com/tdnguyen/serialpos/internal/inventory/repository"
	"github.com/tdnguyen/serialpos/internal/order/domain"
	"github.com/tdnguyen/serialpos/internal/order/repository"
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
		&invdomain.Unit{},
		&invdomain.AdjustmentEntry{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestHandler(t *testing.T, db *gorm.DB) *CreateOrderHandler {
	t.Helper()
	return NewCreateOrderHandler(
		repository.NewGormOrderRepository(db),
		invrepository.NewGormInventoryRepository(db),
		catalogrepository.NewGormProductRepository(db),
	)
}

func seedProductWithUnits(t *testing.T, db *gorm.DB, sku string, serials ...string) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{Name: "Phone " + sku, SKU: sku, Price: 20000000, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	for _, serial := range serials {
		unit := &invdomain.Unit{
			ProductID:      product.ID,
			SerialNumber:   serial,
			Status:         invdomain.StatusAvailable,
			ConditionGrade: invdomain.GradeNew,
		}
		if err := db.Create(unit).Error; err != nil {
			t.Fatalf("failed to create unit: %v", err)
		}
	}
	return product
}

func TestCreateOrderHandler_Handle(t *testing.T) {
	t.Run("completes a serial-bound checkout", func(t *testing.T) {
		db := setupTestDB(t)
		product := seedProductWithUnits(t, db, "SKU-A", "SN-1", "SN-2")
		handler := newTestHandler(t, db)
		invRepo := invrepository.NewGormInventoryRepository(db)

		order, err := handler.Handle(CreateOrderCommand{
			CustomerName: "Nguyen Van A",
			Payment:      domain.Payment{Method: domain.PaymentCash},
			Items: []CreateOrderItem{
				{ProductID: product.ID, SerialNumber: "SN-1"},
			},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if order.Status != domain.OrderCompleted {
			t.Errorf("expected status %q, got %q", domain.OrderCompleted, order.Status)
		}
		if order.CompletedAt == nil {
			t.Error("expected completed_at to be set")
		}
		if order.TotalAmount != product.Price {
			t.Errorf("expected total %d (catalog price), got %d", product.Price, order.TotalAmount)
		}
		if order.OrderNumber == "" {
			t.Error("expected an order number")
		}

		unit, err := invRepo.FindUnitBySerial("SN-1")
		if err != nil {
			t.Fatalf("failed to load unit: %v", err)
		}
		if unit.Status != invdomain.StatusSold {
			t.Errorf("expected unit to be sold, got %q", unit.Status)
		}
		if unit.SoldOrderID == nil || *unit.SoldOrderID != order.ID {
			t.Errorf("expected unit bound to order %d, got %v", order.ID, unit.SoldOrderID)
		}

		entries, _ := invRepo.ListEntries(invdomain.TransactionFilter{ProductID: product.ID, Type: invdomain.AdjustmentExport})
		if len(entries) != 1 {
			t.Errorf("expected 1 export entry, got %d", len(entries))
		}

		count, _ := invRepo.CountAvailable(product.ID)
		if count != 1 {
			t.Errorf("expected 1 remaining unit, got %d", count)
		}
	})

	t.Run("unavailable unit cancels the order and releases claims", func(t *testing.T) {
		db := setupTestDB(t)
		product := seedProductWithUnits(t, db, "SKU-B", "SN-1", "SN-2")
		handler := newTestHandler(t, db)
		invRepo := invrepository.NewGormInventoryRepository(db)

		// SN-2 is already gone before the checkout starts.
		if err := db.Model(&invdomain.Unit{}).
			Where("serial_number = ?", "SN-2").
			Update("status", invdomain.StatusSold).Error; err != nil {
			t.Fatalf("failed to pre-sell unit: %v", err)
		}

		_, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentCash},
			Items: []CreateOrderItem{
				{ProductID: product.ID, SerialNumber: "SN-1"},
				{ProductID: product.ID, SerialNumber: "SN-2"},
			},
		})
		de, ok := invdomain.AsDomainError(err)
		if !ok || de.Code != invdomain.CodeUnitUnavailable {
			t.Fatalf("expected %s, got %v", invdomain.CodeUnitUnavailable, err)
		}

		// The claim on SN-1 must be compensated.
		unit, err := invRepo.FindUnitBySerial("SN-1")
		if err != nil {
			t.Fatalf("failed to load unit: %v", err)
		}
		if unit.Status != invdomain.StatusAvailable {
			t.Errorf("expected SN-1 back in the pool, got %q", unit.Status)
		}

		var orders []domain.Order
		if err := db.Find(&orders).Error; err != nil {
			t.Fatalf("failed to load orders: %v", err)
		}
		if len(orders) != 1 {
			t.Fatalf("expected 1 order, got %d", len(orders))
		}
		if orders[0].Status != domain.OrderCancelled {
			t.Errorf("expected order cancelled, got %q", orders[0].Status)
		}
	})

	t.Run("serial from another product is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		first := seedProductWithUnits(t, db, "SKU-C", "SN-1")
		seedProductWithUnits(t, db, "SKU-D", "SN-OTHER")
		handler := newTestHandler(t, db)

		_, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentCash},
			Items: []CreateOrderItem{
				{ProductID: first.ID, SerialNumber: "SN-OTHER"},
			},
		})
		if err == nil {
			t.Fatal("expected error for cross-product serial, got nil")
		}
	})

	t.Run("serial-bound line with quantity above one is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		product := seedProductWithUnits(t, db, "SKU-E", "SN-1")
		handler := newTestHandler(t, db)

		_, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentCash},
			Items: []CreateOrderItem{
				{ProductID: product.ID, SerialNumber: "SN-1", Quantity: 2},
			},
		})
		if err == nil {
			t.Fatal("expected error for serial-bound quantity 2, got nil")
		}
	})

	t.Run("quantity line without serial completes without claims", func(t *testing.T) {
		db := setupTestDB(t)
		product := seedProductWithUnits(t, db, "SKU-F", "SN-1")
		handler := newTestHandler(t, db)
		invRepo := invrepository.NewGormInventoryRepository(db)

		order, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentMomo, MomoRequestID: "MOMO-1"},
			Items: []CreateOrderItem{
				{ProductID: product.ID, Quantity: 3, UnitPrice: 50000},
			},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if order.Status != domain.OrderCompleted {
			t.Errorf("expected completed order, got %q", order.Status)
		}
		if order.TotalAmount != 150000 {
			t.Errorf("expected total 150000, got %d", order.TotalAmount)
		}

		count, _ := invRepo.CountAvailable(product.ID)
		if count != 1 {
			t.Errorf("expected the serialized unit to stay, got count %d", count)
		}
	})

	t.Run("invalid payment is rejected before anything is written", func(t *testing.T) {
		db := setupTestDB(t)
		product := seedProductWithUnits(t, db, "SKU-G", "SN-1")
		handler := newTestHandler(t, db)

		_, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentCash, VNPayTxnRef: "VNP-1"},
			Items: []CreateOrderItem{
				{ProductID: product.ID, SerialNumber: "SN-1"},
			},
		})
		if err == nil {
			t.Fatal("expected payment validation error, got nil")
		}

		var n int64
		if err := db.Model(&domain.Order{}).Count(&n).Error; err != nil {
			t.Fatalf("failed to count orders: %v", err)
		}
		if n != 0 {
			t.Errorf("expected no order rows, got %d", n)
		}
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		handler := newTestHandler(t, db)

		if _, err := handler.Handle(CreateOrderCommand{
			Payment: domain.Payment{Method: domain.PaymentCash},
		}); err == nil {
			t.Fatal("expected error for empty order, got nil")
		}
	})
}
