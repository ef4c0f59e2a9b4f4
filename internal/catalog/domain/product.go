package domain

import (
	"time"

	"gorm.io/gorm"
)

// Stock summary statuses derived from the live available-unit count.
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Product is a catalog entry. Prices are integer VND. The available
// quantity is never stored here; it is derived from the unit pool on read.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	SKU           string         `json:"sku" gorm:"uniqueIndex;not null"`
	Barcode       string         `json:"barcode" gorm:"index"`
	Category      string         `json:"category" gorm:"index"`
	Price         int64          `json:"price" gorm:"not null"`
	CostPrice     int64          `json:"cost_price"`
	UnitOfMeasure string         `json:"unit_of_measure" gorm:"default:'pcs'"`
	MinStock      int64          `json:"min_stock" gorm:"default:0"`
	MaxStock      int64          `json:"max_stock" gorm:"default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// UnitValue is the per-unit value used for stock valuation: cost price when
// recorded, sale price otherwise.
func (p *Product) UnitValue() int64 {
	if p.CostPrice > 0 {
		return p.CostPrice
	}
	return p.Price
}

// StockSummary is the read-side aggregation embedded in product payloads.
type StockSummary struct {
	ProductID  uint   `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	StockValue int64  `json:"stock_value"`
	Status     string `json:"status"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search   string
	Category string
	Status   string // active | inactive | "" for all
	Limit    int
	Offset   int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindByIDs(ids []uint) ([]Product, error)
	List(filter ProductFilter) ([]Product, int64, error)
	Update(product *Product) error
	Delete(id uint) error
}
