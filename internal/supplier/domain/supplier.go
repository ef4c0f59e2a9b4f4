package domain

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a goods supplier. Money fields are integer VND.
type Supplier struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Code          string         `json:"code" gorm:"uniqueIndex;not null"`
	Name          string         `json:"name" gorm:"not null;index"`
	ContactPerson string         `json:"contact_person"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Address       string         `json:"address"`
	TaxCode       string         `json:"tax_code"`
	PaymentTerms  string         `json:"payment_terms"`
	CreditLimit   int64          `json:"credit_limit"`
	TotalDebt     int64          `json:"total_debt"`
	Notes         string         `json:"notes"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierFilter narrows supplier listings.
type SupplierFilter struct {
	Search string
	Status string // active | inactive | "" for all
	Limit  int
	Offset int
}

// SupplierRepository defines the contract for supplier data access
type SupplierRepository interface {
	Create(supplier *Supplier) error
	FindByID(id uint) (*Supplier, error)
	FindByIDs(ids []uint) ([]Supplier, error)
	List(filter SupplierFilter) ([]Supplier, int64, error)
	Update(supplier *Supplier) error
	Delete(id uint) error
}
