package domain

import (
	"time"

	"github.com/tdnguyen/serialpos/internal/warranty"
)

// Unit lifecycle states.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
	StatusDefective = "defective"
	// StatusRemoved is the neutral bucket units land in when a manual
	// adjustment shrinks the available count.
	StatusRemoved = "removed"
)

// Condition grades.
const (
	GradeNew         = "new"
	GradeUsedLikeNew = "used_like_new"
	GradeUsedGood    = "used_good"
	GradeUsedFair    = "used_fair"
	GradeRefurbished = "refurbished"
	GradeDamaged     = "damaged"
)

// Unit is one physical serialized instance of a product. Serial numbers are
// unique per product and case-sensitive. Prices are integer VND.
type Unit struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	ProductID            uint       `json:"product_id" gorm:"not null;index;uniqueIndex:idx_units_product_serial,priority:1"`
	SerialNumber         string     `json:"serial_number" gorm:"not null;uniqueIndex:idx_units_product_serial,priority:2"`
	Status               string     `json:"status" gorm:"not null;default:'available';index"`
	ConditionGrade       string     `json:"condition_grade" gorm:"not null;default:'new'"`
	Location             string     `json:"location"`
	PurchasePrice        int64      `json:"purchase_price"`
	SupplierID           *uint      `json:"supplier_id" gorm:"index"`
	WarrantyStartDate    *time.Time `json:"warranty_start_date"`
	WarrantyPeriodMonths *int       `json:"warranty_period_months"`
	Notes                string     `json:"notes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	SoldAt               *time.Time `json:"sold_at"`
	SoldPrice            int64      `json:"sold_price"`
	SoldOrderID          *uint      `json:"sold_order_id"`
	SoldToCustomerID     *uint      `json:"sold_to_customer_id"`
}

// TableName specifies the table name
func (Unit) TableName() string {
	return "units"
}

// WarrantyEndDate derives the warranty end from the stored start and period.
// The end date is never persisted, so the two can not drift apart.
func (u *Unit) WarrantyEndDate() *time.Time {
	return warranty.End(u.WarrantyStartDate, u.WarrantyPeriodMonths)
}

// IsSold reports whether the unit has left the stock for good.
func (u *Unit) IsSold() bool {
	return u.Status == StatusSold
}

// Claimable reports whether a sale may take this unit.
func (u *Unit) Claimable() bool {
	return u.Status == StatusAvailable || u.Status == StatusReserved
}

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold, StatusDefective, StatusRemoved:
		return true
	}
	return false
}

// ValidGrade reports whether g names a known condition grade.
func ValidGrade(g string) bool {
	switch g {
	case GradeNew, GradeUsedLikeNew, GradeUsedGood, GradeUsedFair, GradeRefurbished, GradeDamaged:
		return true
	}
	return false
}

// SaleStamp carries the fields written onto a unit when it is sold.
type SaleStamp struct {
	OrderID    uint
	CustomerID uint
	Price      int64
	SoldAt     time.Time
}

// UnitPatch is a partial update for a non-sold unit. Nil fields are left
// untouched.
type UnitPatch struct {
	Status               *string
	ConditionGrade       *string
	Location             *string
	PurchasePrice        *int64
	SupplierID           *uint
	WarrantyStartDate    *time.Time
	WarrantyPeriodMonths *int
	Notes                *string
}

// TouchesMoreThanNotes reports whether the patch changes anything a sold
// unit is not allowed to change.
func (p UnitPatch) TouchesMoreThanNotes() bool {
	return p.Status != nil || p.ConditionGrade != nil || p.Location != nil ||
		p.PurchasePrice != nil || p.SupplierID != nil ||
		p.WarrantyStartDate != nil || p.WarrantyPeriodMonths != nil
}

// InventoryRepository is the contract for unit and ledger data access.
// Composite operations (CreateUnits, ClaimUnit, ReleaseUnit, Reconcile) run
// the unit mutation and the ledger append in a single transaction: a unit
// never changes state without its audit row.
type InventoryRepository interface {
	// Units
	FindUnitByID(id uint) (*Unit, error)
	FindUnitBySerial(serial string) (*Unit, error)
	FindUnitsByProduct(productID uint) ([]Unit, error)
	FindUnitsBySupplier(supplierID uint) ([]Unit, error)
	SerialsExist(productID uint, serials []string) ([]string, error)
	// UpdateUnit and DeleteUnit take an optional adjustment entry; when the
	// mutation changes the available count the entry commits in the same
	// transaction, with its quantities recomputed there.
	UpdateUnit(unit *Unit, entry *AdjustmentEntry) error
	DeleteUnit(id uint, entry *AdjustmentEntry) error
	CountAvailable(productID uint) (int64, error)
	CountAvailableBatch(productIDs []uint) (map[uint]int64, error)
	OldestAvailable(productID uint, n int) ([]Unit, error)
	CountBySupplier(supplierID uint) (int64, error)

	// Composite transactional operations
	CreateUnits(units []*Unit, entry *AdjustmentEntry) error
	ClaimUnit(unitID uint, stamp SaleStamp, entry *AdjustmentEntry) error
	ReleaseUnit(unitID uint, entry *AdjustmentEntry) error
	Reconcile(removeUnitIDs []uint, addUnits []*Unit, entry *AdjustmentEntry) error

	// Ledger
	AppendEntry(entry *AdjustmentEntry) error
	ListEntries(filter TransactionFilter) ([]AdjustmentEntry, error)
	LatestEntry(productID uint) (*AdjustmentEntry, error)
}
