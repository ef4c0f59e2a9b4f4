package command

import (
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	catalogrepository "github.com/tdnguyen/serialpos/internal/catalog/repository"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/repository"
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

	if err := db.AutoMigrate(&catalogdomain.Product{}, &domain.Unit{}, &domain.AdjustmentEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string) *catalogdomain.Product {
	t.Helper()

	product := &catalogdomain.Product{
		Name:      "Test Phone " + sku,
		SKU:       sku,
		Price:     15000000,
		CostPrice: 12000000,
		MinStock:  2,
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
	handler := NewCreateUnitsHandler(repo, products)

	units, err := handler.Handle(CreateUnitsCommand{
		ProductID: productID,
		Serials:   serials,
		ActorID:   1,
	})
	if err != nil {
		t.Fatalf("failed to receive units: %v", err)
	}
	return units
}

func TestCreateUnitsHandler_Handle(t *testing.T) {
	t.Run("creates batch with one import entry", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-001")
		repo := repository.NewGormInventoryRepository(db)
		products := catalogrepository.NewGormProductRepository(db)
		handler := NewCreateUnitsHandler(repo, products)

		units, err := handler.Handle(CreateUnitsCommand{
			ProductID: product.ID,
			Serials:   []string{"SN-A", "SN-B", "SN-C", "SN-D", "SN-E"},
			ActorID:   7,
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(units) != 5 {
			t.Fatalf("expected 5 units, got %d", len(units))
		}

		count, err := repo.CountAvailable(product.ID)
		if err != nil {
			t.Fatalf("CountAvailable() error = %v", err)
		}
		if count != 5 {
			t.Errorf("expected 5 available units, got %d", count)
		}

		entries, err := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID})
		if err != nil {
			t.Fatalf("ListEntries() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected exactly 1 ledger entry for the batch, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Type != domain.AdjustmentImport {
			t.Errorf("expected entry type %q, got %q", domain.AdjustmentImport, entry.Type)
		}
		if entry.QuantityBefore != 0 || entry.QuantityAfter != 5 || entry.QuantityChange != 5 {
			t.Errorf("expected quantities 0/5/+5, got %d/%d/%+d",
				entry.QuantityBefore, entry.QuantityAfter, entry.QuantityChange)
		}
		if entry.ActorUserID != 7 {
			t.Errorf("expected actor 7, got %d", entry.ActorUserID)
		}
	})

	t.Run("rejects duplicate serial within the batch", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-002")
		repo := repository.NewGormInventoryRepository(db)
		products := catalogrepository.NewGormProductRepository(db)
		handler := NewCreateUnitsHandler(repo, products)

		_, err := handler.Handle(CreateUnitsCommand{
			ProductID: product.ID,
			Serials:   []string{"SN-A", "SN-A"},
		})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeDuplicateSerial {
			t.Fatalf("expected %s, got %v", domain.CodeDuplicateSerial, err)
		}

		// Nothing from the rejected batch may land.
		count, _ := repo.CountAvailable(product.ID)
		if count != 0 {
			t.Errorf("expected 0 units after rejected batch, got %d", count)
		}
	})

	t.Run("rejects serial that already exists for the product", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-003")
		receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		products := catalogrepository.NewGormProductRepository(db)
		handler := NewCreateUnitsHandler(repo, products)

		_, err := handler.Handle(CreateUnitsCommand{
			ProductID: product.ID,
			Serials:   []string{"SN-B", "SN-A"},
		})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeDuplicateSerial {
			t.Fatalf("expected %s, got %v", domain.CodeDuplicateSerial, err)
		}
	})

	t.Run("same serial on another product is allowed", func(t *testing.T) {
		db := setupTestDB(t)
		first := createTestProduct(t, db, "SKU-004")
		second := createTestProduct(t, db, "SKU-005")

		receiveUnits(t, db, first.ID, []string{"SN-SHARED"})
		receiveUnits(t, db, second.ID, []string{"SN-SHARED"})

		repo := repository.NewGormInventoryRepository(db)
		for _, id := range []uint{first.ID, second.ID} {
			count, err := repo.CountAvailable(id)
			if err != nil {
				t.Fatalf("CountAvailable() error = %v", err)
			}
			if count != 1 {
				t.Errorf("product %d: expected 1 unit, got %d", id, count)
			}
		}
	})

	t.Run("generates serials from count and prefix", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-006")
		repo := repository.NewGormInventoryRepository(db)
		products := catalogrepository.NewGormProductRepository(db)
		handler := NewCreateUnitsHandler(repo, products)

		units, err := handler.Handle(CreateUnitsCommand{
			ProductID: product.ID,
			Count:     3,
			Prefix:    "IPH",
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(units) != 3 {
			t.Fatalf("expected 3 units, got %d", len(units))
		}
		for _, unit := range units {
			if !strings.HasPrefix(unit.SerialNumber, "IPH-") {
				t.Errorf("expected serial with IPH- prefix, got %q", unit.SerialNumber)
			}
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		db := setupTestDB(t)
		repo := repository.NewGormInventoryRepository(db)
		products := catalogrepository.NewGormProductRepository(db)
		handler := NewCreateUnitsHandler(repo, products)

		_, err := handler.Handle(CreateUnitsCommand{ProductID: 999, Count: 1})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeNotFound {
			t.Fatalf("expected %s, got %v", domain.CodeNotFound, err)
		}
	})
}

func TestMarkSoldHandler_Handle(t *testing.T) {
	t.Run("sells an available unit", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-010")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewMarkSoldHandler(repo)

		sold, err := handler.Handle(MarkSoldCommand{
			UnitID:     units[0].ID,
			OrderID:    42,
			CustomerID: 9,
			Price:      14500000,
			ActorID:    1,
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if sold.Status != domain.StatusSold {
			t.Errorf("expected status %q, got %q", domain.StatusSold, sold.Status)
		}
		if sold.SoldAt == nil {
			t.Error("expected sold_at to be set")
		}
		if sold.SoldOrderID == nil || *sold.SoldOrderID != 42 {
			t.Errorf("expected sold_order_id 42, got %v", sold.SoldOrderID)
		}
		if sold.SoldPrice != 14500000 {
			t.Errorf("expected sold_price 14500000, got %d", sold.SoldPrice)
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 0 {
			t.Errorf("expected 0 available units, got %d", count)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentExport})
		if len(entries) != 1 {
			t.Fatalf("expected 1 export entry, got %d", len(entries))
		}
		if entries[0].QuantityChange != -1 {
			t.Errorf("expected change -1, got %d", entries[0].QuantityChange)
		}
	})

	t.Run("exactly one of two racing sales wins", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-011")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewMarkSoldHandler(repo)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = handler.Handle(MarkSoldCommand{
					UnitID:  units[0].ID,
					OrderID: uint(100 + i),
					ActorID: 1,
				})
			}(i)
		}
		wg.Wait()

		var wins, losses int
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			de, ok := domain.AsDomainError(err)
			if !ok || de.Code != domain.CodeUnitUnavailable {
				t.Fatalf("loser got unexpected error: %v", err)
			}
			losses++
		}
		if wins != 1 || losses != 1 {
			t.Fatalf("expected 1 winner and 1 loser, got %d winners, %d losers", wins, losses)
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 0 {
			t.Errorf("expected 0 available units after the race, got %d", count)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentExport})
		if len(entries) != 1 {
			t.Errorf("expected exactly 1 export entry, got %d", len(entries))
		}
	})

	t.Run("sold unit can not be sold again", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-012")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewMarkSoldHandler(repo)

		if _, err := handler.Handle(MarkSoldCommand{UnitID: units[0].ID, OrderID: 1}); err != nil {
			t.Fatalf("first sale failed: %v", err)
		}
		_, err := handler.Handle(MarkSoldCommand{UnitID: units[0].ID, OrderID: 2})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeUnitUnavailable {
			t.Fatalf("expected %s, got %v", domain.CodeUnitUnavailable, err)
		}
	})
}

func TestManualAdjustmentHandler_Handle(t *testing.T) {
	t.Run("shrink removes the oldest units first", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-020")
		units := receiveUnits(t, db, product.ID, []string{"SN-1", "SN-2", "SN-3", "SN-4", "SN-5", "SN-6", "SN-7"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewManualAdjustmentHandler(repo)

		result, err := handler.Handle(ManualAdjustmentCommand{
			ProductID:   product.ID,
			NewQuantity: 3,
			Reason:      "cycle count",
			ActorID:     1,
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if result.RemovedUnits != 4 {
			t.Errorf("expected 4 removed units, got %d", result.RemovedUnits)
		}
		if result.Entry.QuantityBefore != 7 || result.Entry.QuantityAfter != 3 || result.Entry.QuantityChange != -4 {
			t.Errorf("expected quantities 7/3/-4, got %d/%d/%d",
				result.Entry.QuantityBefore, result.Entry.QuantityAfter, result.Entry.QuantityChange)
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 3 {
			t.Errorf("expected 3 available units, got %d", count)
		}

		// The four oldest units land in the removed bucket; the rest stay.
		for i, unit := range units {
			var found domain.Unit
			if err := db.First(&found, unit.ID).Error; err != nil {
				t.Fatalf("failed to load unit %d: %v", unit.ID, err)
			}
			wantStatus := domain.StatusRemoved
			if i >= 4 {
				wantStatus = domain.StatusAvailable
			}
			if found.Status != wantStatus {
				t.Errorf("unit %s: expected status %q, got %q", found.SerialNumber, wantStatus, found.Status)
			}
		}
	})

	t.Run("grow materializes auto-serial units", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-021")
		receiveUnits(t, db, product.ID, []string{"SN-1", "SN-2"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewManualAdjustmentHandler(repo)

		result, err := handler.Handle(ManualAdjustmentCommand{
			ProductID:   product.ID,
			NewQuantity: 5,
			Reason:      "found in back room",
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if result.AddedUnits != 3 {
			t.Errorf("expected 3 added units, got %d", result.AddedUnits)
		}
		if result.Entry.QuantityChange != 3 {
			t.Errorf("expected change +3, got %d", result.Entry.QuantityChange)
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 5 {
			t.Errorf("expected 5 available units, got %d", count)
		}

		var added []domain.Unit
		if err := db.Where("product_id = ? AND serial_number LIKE ?", product.ID, "ADJ-%").Find(&added).Error; err != nil {
			t.Fatalf("failed to load added units: %v", err)
		}
		if len(added) != 3 {
			t.Errorf("expected 3 ADJ-prefixed units, got %d", len(added))
		}
	})

	t.Run("no-op still records the reconciliation", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-022")
		receiveUnits(t, db, product.ID, []string{"SN-1"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewManualAdjustmentHandler(repo)

		result, err := handler.Handle(ManualAdjustmentCommand{ProductID: product.ID, NewQuantity: 1})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if result.RemovedUnits != 0 || result.AddedUnits != 0 {
			t.Errorf("expected no unit churn, got removed=%d added=%d", result.RemovedUnits, result.AddedUnits)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentManual})
		if len(entries) != 1 {
			t.Errorf("expected the no-op entry to be recorded, got %d entries", len(entries))
		}
	})

	t.Run("negative target is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-023")

		repo := repository.NewGormInventoryRepository(db)
		handler := NewManualAdjustmentHandler(repo)

		_, err := handler.Handle(ManualAdjustmentCommand{ProductID: product.ID, NewQuantity: -1})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeNegativeQuantity {
			t.Fatalf("expected %s, got %v", domain.CodeNegativeQuantity, err)
		}
	})
}

func TestUpdateUnitHandler_Handle(t *testing.T) {
	strptr := func(s string) *string { return &s }

	t.Run("patches a live unit", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-030")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewUpdateUnitHandler(repo)

		updated, err := handler.Handle(UpdateUnitCommand{
			UnitID: units[0].ID,
			Patch: domain.UnitPatch{
				Location: strptr("shelf B2"),
				Notes:    strptr("screen protector applied"),
			},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if updated.Location != "shelf B2" {
			t.Errorf("expected location %q, got %q", "shelf B2", updated.Location)
		}
	})

	t.Run("status change out of the pool writes a ledger entry", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-031")
		units := receiveUnits(t, db, product.ID, []string{"SN-A", "SN-B"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewUpdateUnitHandler(repo)

		status := domain.StatusDefective
		if _, err := handler.Handle(UpdateUnitCommand{
			UnitID: units[0].ID,
			Patch:  domain.UnitPatch{Status: &status},
		}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 1 {
			t.Errorf("expected 1 available unit, got %d", count)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentManual})
		if len(entries) != 1 {
			t.Fatalf("expected 1 manual entry for the status change, got %d", len(entries))
		}
		if entries[0].QuantityBefore != 2 || entries[0].QuantityAfter != 1 {
			t.Errorf("expected quantities 2/1, got %d/%d", entries[0].QuantityBefore, entries[0].QuantityAfter)
		}
	})

	t.Run("sold unit accepts only notes", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-032")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		if _, err := NewMarkSoldHandler(repo).Handle(MarkSoldCommand{UnitID: units[0].ID, OrderID: 1}); err != nil {
			t.Fatalf("failed to sell unit: %v", err)
		}

		handler := NewUpdateUnitHandler(repo)

		updated, err := handler.Handle(UpdateUnitCommand{
			UnitID: units[0].ID,
			Patch:  domain.UnitPatch{Notes: strptr("customer reported scratch")},
		})
		if err != nil {
			t.Fatalf("notes-only patch failed: %v", err)
		}
		if updated.Notes != "customer reported scratch" {
			t.Errorf("expected notes to change, got %q", updated.Notes)
		}

		_, err = handler.Handle(UpdateUnitCommand{
			UnitID: units[0].ID,
			Patch:  domain.UnitPatch{Location: strptr("warehouse")},
		})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeImmutableUnit {
			t.Fatalf("expected %s, got %v", domain.CodeImmutableUnit, err)
		}
	})

	t.Run("sold status can not be set directly", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-033")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewUpdateUnitHandler(repo)

		status := domain.StatusSold
		if _, err := handler.Handle(UpdateUnitCommand{
			UnitID: units[0].ID,
			Patch:  domain.UnitPatch{Status: &status},
		}); err == nil {
			t.Fatal("expected error when patching status to sold, got nil")
		}
	})
}

func TestDeleteUnitHandler_Handle(t *testing.T) {
	t.Run("deletes an available unit and records the shrink", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-040")
		units := receiveUnits(t, db, product.ID, []string{"SN-A", "SN-B"})

		repo := repository.NewGormInventoryRepository(db)
		handler := NewDeleteUnitHandler(repo)

		if err := handler.Handle(DeleteUnitCommand{UnitID: units[0].ID, Reason: "damaged in storage"}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if _, err := repo.FindUnitByID(units[0].ID); err == nil {
			t.Error("expected unit to be gone")
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 1 {
			t.Errorf("expected 1 available unit, got %d", count)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentManual})
		if len(entries) != 1 {
			t.Fatalf("expected 1 manual entry, got %d", len(entries))
		}
		if entries[0].QuantityChange != -1 {
			t.Errorf("expected change -1, got %d", entries[0].QuantityChange)
		}
		if entries[0].Reason != "damaged in storage" {
			t.Errorf("expected reason to be kept, got %q", entries[0].Reason)
		}
	})

	t.Run("sold unit can not be deleted", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-041")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		if _, err := NewMarkSoldHandler(repo).Handle(MarkSoldCommand{UnitID: units[0].ID, OrderID: 1}); err != nil {
			t.Fatalf("failed to sell unit: %v", err)
		}

		err := NewDeleteUnitHandler(repo).Handle(DeleteUnitCommand{UnitID: units[0].ID})
		de, ok := domain.AsDomainError(err)
		if !ok || de.Code != domain.CodeUnitSold {
			t.Fatalf("expected %s, got %v", domain.CodeUnitSold, err)
		}

		if _, err := repo.FindUnitByID(units[0].ID); err != nil {
			t.Errorf("sold unit must survive the delete attempt: %v", err)
		}
	})
}

func TestReturnUnitHandler_Handle(t *testing.T) {
	t.Run("returns a sold unit to the pool", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-050")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		if _, err := NewMarkSoldHandler(repo).Handle(MarkSoldCommand{UnitID: units[0].ID, OrderID: 5, Price: 100}); err != nil {
			t.Fatalf("failed to sell unit: %v", err)
		}

		returned, err := NewReturnUnitHandler(repo).Handle(ReturnUnitCommand{UnitID: units[0].ID})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if returned.Status != domain.StatusAvailable {
			t.Errorf("expected status %q, got %q", domain.StatusAvailable, returned.Status)
		}
		if returned.SoldAt != nil || returned.SoldOrderID != nil || returned.SoldPrice != 0 {
			t.Error("expected sale stamps to be cleared")
		}

		count, _ := repo.CountAvailable(product.ID)
		if count != 1 {
			t.Errorf("expected 1 available unit, got %d", count)
		}

		entries, _ := repo.ListEntries(domain.TransactionFilter{ProductID: product.ID, Type: domain.AdjustmentReturn})
		if len(entries) != 1 {
			t.Fatalf("expected 1 return entry, got %d", len(entries))
		}
		if entries[0].Reason != "customer return" {
			t.Errorf("expected default reason, got %q", entries[0].Reason)
		}
	})

	t.Run("unsold unit can not be returned", func(t *testing.T) {
		db := setupTestDB(t)
		product := createTestProduct(t, db, "SKU-051")
		units := receiveUnits(t, db, product.ID, []string{"SN-A"})

		repo := repository.NewGormInventoryRepository(db)
		if _, err := NewReturnUnitHandler(repo).Handle(ReturnUnitCommand{UnitID: units[0].ID}); err == nil {
			t.Fatal("expected error when returning an unsold unit, got nil")
		}
	})
}

func TestGenerateSerials(t *testing.T) {
	serials := GenerateSerials("", 3)
	if len(serials) != 3 {
		t.Fatalf("expected 3 serials, got %d", len(serials))
	}
	seen := make(map[string]bool)
	for _, s := range serials {
		if !strings.HasPrefix(s, "SN-") {
			t.Errorf("expected default SN- prefix, got %q", s)
		}
		if seen[s] {
			t.Errorf("duplicate serial %q in batch", s)
		}
		seen[s] = true
	}
}
