package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// GormInventoryRepository persists units and adjustment entries. Composite
// operations run inside one transaction so a unit never changes state
// without its ledger row.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Unit{}, &domain.AdjustmentEntry{})
}

func (r *GormInventoryRepository) FindUnitByID(id uint) (*domain.Unit, error) {
	var unit domain.Unit
	err := r.db.First(&unit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound("unit", id)
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *GormInventoryRepository) FindUnitBySerial(serial string) (*domain.Unit, error) {
	var unit domain.Unit
	err := r.db.Where("serial_number = ?", serial).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound("serial", serial)
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *GormInventoryRepository) FindUnitsByProduct(productID uint) ([]domain.Unit, error) {
	var units []domain.Unit
	err := r.db.Where("product_id = ?", productID).Order("created_at ASC, id ASC").Find(&units).Error
	return units, err
}

// FindUnitsBySupplier matches on the exact supplier id. There is no fuzzy
// fallback on supplier name; an empty result is an honest empty result.
func (r *GormInventoryRepository) FindUnitsBySupplier(supplierID uint) ([]domain.Unit, error) {
	var units []domain.Unit
	err := r.db.Where("supplier_id = ?", supplierID).Order("created_at ASC, id ASC").Find(&units).Error
	return units, err
}

// SerialsExist returns which of the given serials already exist for the
// product.
func (r *GormInventoryRepository) SerialsExist(productID uint, serials []string) ([]string, error) {
	if len(serials) == 0 {
		return nil, nil
	}
	var found []string
	err := r.db.Model(&domain.Unit{}).
		Where("product_id = ? AND serial_number IN ?", productID, serials).
		Pluck("serial_number", &found).Error
	return found, err
}

func (r *GormInventoryRepository) UpdateUnit(unit *domain.Unit, entry *domain.AdjustmentEntry) error {
	if entry == nil {
		return r.db.Save(unit).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		before, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}
		if err := tx.Save(unit).Error; err != nil {
			return err
		}
		after, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}
		setQuantities(entry, before, after)
		return appendEntry(tx, entry)
	})
}

func (r *GormInventoryRepository) DeleteUnit(id uint, entry *domain.AdjustmentEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var unit domain.Unit
		if err := tx.First(&unit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound("unit", id)
			}
			return err
		}

		before, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.Unit{}, id).Error; err != nil {
			return err
		}

		if entry != nil {
			after, err := countAvailable(tx, unit.ProductID)
			if err != nil {
				return err
			}
			setQuantities(entry, before, after)
			return appendEntry(tx, entry)
		}
		return nil
	})
}

func (r *GormInventoryRepository) CountAvailable(productID uint) (int64, error) {
	return countAvailable(r.db, productID)
}

func (r *GormInventoryRepository) CountAvailableBatch(productIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProductID uint
		N         int64
	}
	err := r.db.Model(&domain.Unit{}).
		Select("product_id, COUNT(*) AS n").
		Where("product_id IN ? AND status = ?", productIDs, domain.StatusAvailable).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProductID] = row.N
	}
	return counts, nil
}

// OldestAvailable returns up to n available units ordered oldest-first, the
// order manual shrink adjustments dispose in.
func (r *GormInventoryRepository) OldestAvailable(productID uint, n int) ([]domain.Unit, error) {
	var units []domain.Unit
	err := r.db.Where("product_id = ? AND status = ?", productID, domain.StatusAvailable).
		Order("created_at ASC, id ASC").
		Limit(n).
		Find(&units).Error
	return units, err
}

func (r *GormInventoryRepository) CountBySupplier(supplierID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Unit{}).Where("supplier_id = ?", supplierID).Count(&count).Error
	return count, err
}

// CreateUnits inserts a batch of units and its single import entry in one
// transaction. The entry quantities are recomputed inside the transaction.
func (r *GormInventoryRepository) CreateUnits(units []*domain.Unit, entry *domain.AdjustmentEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		before, err := countAvailable(tx, entry.ProductID)
		if err != nil {
			return err
		}

		for _, unit := range units {
			if err := tx.Create(unit).Error; err != nil {
				return err
			}
		}

		after, err := countAvailable(tx, entry.ProductID)
		if err != nil {
			return err
		}

		setQuantities(entry, before, after)
		return appendEntry(tx, entry)
	})
}

// ClaimUnit flips an available or reserved unit to sold with a
// status-guarded UPDATE. Exactly one of two racing claims wins; the loser
// gets UNIT_UNAVAILABLE. The export entry commits in the same transaction.
func (r *GormInventoryRepository) ClaimUnit(unitID uint, stamp domain.SaleStamp, entry *domain.AdjustmentEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var unit domain.Unit
		if err := tx.First(&unit, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound("unit", unitID)
			}
			return err
		}

		before, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}

		res := tx.Model(&domain.Unit{}).
			Where("id = ? AND status IN ?", unitID, []string{domain.StatusAvailable, domain.StatusReserved}).
			Updates(map[string]interface{}{
				"status":              domain.StatusSold,
				"sold_at":             stamp.SoldAt,
				"sold_price":          stamp.Price,
				"sold_order_id":       stamp.OrderID,
				"sold_to_customer_id": stamp.CustomerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUnitUnavailable(unitID)
		}

		after, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}

		setQuantities(entry, before, after)
		return appendEntry(tx, entry)
	})
}

// ReleaseUnit puts a sold unit back into stock (checkout compensation) and
// appends the return entry in the same transaction.
func (r *GormInventoryRepository) ReleaseUnit(unitID uint, entry *domain.AdjustmentEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var unit domain.Unit
		if err := tx.First(&unit, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound("unit", unitID)
			}
			return err
		}

		before, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}

		res := tx.Model(&domain.Unit{}).
			Where("id = ? AND status = ?", unitID, domain.StatusSold).
			Updates(map[string]interface{}{
				"status":              domain.StatusAvailable,
				"sold_at":             nil,
				"sold_price":          0,
				"sold_order_id":       nil,
				"sold_to_customer_id": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUnitUnavailable(unitID)
		}

		after, err := countAvailable(tx, unit.ProductID)
		if err != nil {
			return err
		}

		setQuantities(entry, before, after)
		return appendEntry(tx, entry)
	})
}

// Reconcile applies a manual adjustment: flips the given units out of the
// available pool and/or inserts replacement units, with exactly one ledger
// entry, all in one transaction.
func (r *GormInventoryRepository) Reconcile(removeUnitIDs []uint, addUnits []*domain.Unit, entry *domain.AdjustmentEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(removeUnitIDs) > 0 {
			res := tx.Model(&domain.Unit{}).
				Where("id IN ? AND status = ?", removeUnitIDs, domain.StatusAvailable).
				Update("status", domain.StatusRemoved)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(removeUnitIDs)) {
				return fmt.Errorf("reconcile lost a race: flipped %d of %d units", res.RowsAffected, len(removeUnitIDs))
			}
		}

		for _, unit := range addUnits {
			if err := tx.Create(unit).Error; err != nil {
				return err
			}
		}

		return appendEntry(tx, entry)
	})
}

func (r *GormInventoryRepository) AppendEntry(entry *domain.AdjustmentEntry) error {
	return appendEntry(r.db, entry)
}

func (r *GormInventoryRepository) ListEntries(filter domain.TransactionFilter) ([]domain.AdjustmentEntry, error) {
	q := r.db.Model(&domain.AdjustmentEntry{})

	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var entries []domain.AdjustmentEntry
	err := q.Order("created_at DESC, id DESC").Find(&entries).Error
	return entries, err
}

func (r *GormInventoryRepository) LatestEntry(productID uint) (*domain.AdjustmentEntry, error) {
	var entry domain.AdjustmentEntry
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func countAvailable(tx *gorm.DB, productID uint) (int64, error) {
	var count int64
	err := tx.Model(&domain.Unit{}).
		Where("product_id = ? AND status = ?", productID, domain.StatusAvailable).
		Count(&count).Error
	return count, err
}

func setQuantities(entry *domain.AdjustmentEntry, before, after int64) {
	entry.QuantityBefore = before
	entry.QuantityAfter = after
	entry.QuantityChange = after - before
}

func appendEntry(tx *gorm.DB, entry *domain.AdjustmentEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return tx.Create(entry).Error
}
