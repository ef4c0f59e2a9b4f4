package command

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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

	if err := db.AutoMigrate(&domain.Supplier{}, &invdomain.Unit{}, &invdomain.AdjustmentEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestCreateSupplierHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	handler := NewCreateSupplierHandler(repository.NewGormSupplierRepository(db))

	t.Run("creates a supplier", func(t *testing.T) {
		supplier, err := handler.Handle(CreateSupplierCommand{
			Code:         "SUP-01",
			Name:         "ACME Distribution",
			Phone:        "0901234567",
			PaymentTerms: "net 30",
			CreditLimit:  500000000,
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if supplier.ID == 0 {
			t.Error("expected supplier to get an id")
		}
		if !supplier.IsActive {
			t.Error("expected new supplier to be active")
		}
	})

	t.Run("requires name and code", func(t *testing.T) {
		if _, err := handler.Handle(CreateSupplierCommand{Code: "SUP-02"}); err == nil {
			t.Error("expected error without name, got nil")
		}
		if _, err := handler.Handle(CreateSupplierCommand{Name: "No Code Ltd"}); err == nil {
			t.Error("expected error without code, got nil")
		}
	})

	t.Run("rejects negative credit limit", func(t *testing.T) {
		if _, err := handler.Handle(CreateSupplierCommand{
			Code:        "SUP-03",
			Name:        "Bad Credit",
			CreditLimit: -1,
		}); err == nil {
			t.Error("expected error for negative credit limit, got nil")
		}
	})
}

func TestUpdateSupplierHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormSupplierRepository(db)

	created, err := NewCreateSupplierHandler(repo).Handle(CreateSupplierCommand{
		Code: "SUP-10",
		Name: "Original Name",
	})
	if err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	handler := NewUpdateSupplierHandler(repo)

	t.Run("patches only the given fields", func(t *testing.T) {
		name := "Renamed Ltd"
		inactive := false
		updated, err := handler.Handle(UpdateSupplierCommand{
			SupplierID: created.ID,
			Name:       &name,
			IsActive:   &inactive,
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if updated.Name != "Renamed Ltd" {
			t.Errorf("expected name %q, got %q", "Renamed Ltd", updated.Name)
		}
		if updated.IsActive {
			t.Error("expected supplier to be inactive")
		}
		if updated.Code != "SUP-10" {
			t.Errorf("expected code to be untouched, got %q", updated.Code)
		}
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := handler.Handle(UpdateSupplierCommand{SupplierID: 999})
		de, ok := invdomain.AsDomainError(err)
		if !ok || de.Code != invdomain.CodeNotFound {
			t.Fatalf("expected %s, got %v", invdomain.CodeNotFound, err)
		}
	})
}

func TestDeleteSupplierHandler_Handle(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormSupplierRepository(db)
	units := invrepository.NewGormInventoryRepository(db)
	handler := NewDeleteSupplierHandler(repo, units)

	t.Run("deletes a supplier without units", func(t *testing.T) {
		created, err := NewCreateSupplierHandler(repo).Handle(CreateSupplierCommand{
			Code: "SUP-20",
			Name: "Short Lived",
		})
		if err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		if err := handler.Handle(DeleteSupplierCommand{SupplierID: created.ID}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if _, err := repo.FindByID(created.ID); err == nil {
			t.Error("expected supplier to be gone")
		}
	})

	t.Run("supplier with attributed units is blocked", func(t *testing.T) {
		created, err := NewCreateSupplierHandler(repo).Handle(CreateSupplierCommand{
			Code: "SUP-21",
			Name: "Still Supplying",
		})
		if err != nil {
			t.Fatalf("failed to create supplier: %v", err)
		}

		unit := &invdomain.Unit{
			ProductID:      1,
			SerialNumber:   "SN-A",
			Status:         invdomain.StatusSold,
			ConditionGrade: invdomain.GradeNew,
			SupplierID:     &created.ID,
		}
		if err := db.Create(unit).Error; err != nil {
			t.Fatalf("failed to create unit: %v", err)
		}

		err = handler.Handle(DeleteSupplierCommand{SupplierID: created.ID})
		de, ok := invdomain.AsDomainError(err)
		if !ok || de.Code != invdomain.CodeSupplierConstraint {
			t.Fatalf("expected %s, got %v", invdomain.CodeSupplierConstraint, err)
		}

		// Even sold units keep their supplier attribution alive.
		if _, err := repo.FindByID(created.ID); err != nil {
			t.Errorf("supplier must survive the delete attempt: %v", err)
		}
	})
}
