package query

import (
	"fmt"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

// UnitsBySupplierQuery asks which units a supplier delivered. Attribution
// is by exact supplier id on the unit; units with no supplier recorded are
// never guessed into a supplier's trail.
type UnitsBySupplierQuery struct {
	SupplierID uint
}

// SuppliedUnit is a unit decorated with its product identity for display.
type SuppliedUnit struct {
	invdomain.Unit
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
}

// UnitsBySupplierResult groups a supplier's units with totals.
type UnitsBySupplierResult struct {
	Supplier   *domain.Supplier `json:"supplier"`
	Units      []SuppliedUnit   `json:"units"`
	TotalUnits int64            `json:"total_units"`
	TotalValue int64            `json:"total_value"`
}

// UnitsBySupplierHandler handles supplier attribution lookups
type UnitsBySupplierHandler struct {
	suppliers domain.SupplierRepository
	units     invdomain.InventoryRepository
	products  catalogdomain.ProductRepository
}

// NewUnitsBySupplierHandler creates a new units by supplier handler
func NewUnitsBySupplierHandler(
	suppliers domain.SupplierRepository,
	units invdomain.InventoryRepository,
	products catalogdomain.ProductRepository,
) *UnitsBySupplierHandler {
	return &UnitsBySupplierHandler{suppliers: suppliers, units: units, products: products}
}

// Handle executes the units by supplier query
func (h *UnitsBySupplierHandler) Handle(q UnitsBySupplierQuery) (*UnitsBySupplierResult, error) {
	supplier, err := h.suppliers.FindByID(q.SupplierID)
	if err != nil {
		return nil, err
	}

	units, err := h.units.FindUnitsBySupplier(q.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier units: %w", err)
	}

	productIDs := make([]uint, 0, len(units))
	seen := make(map[uint]bool)
	for _, u := range units {
		if !seen[u.ProductID] {
			seen[u.ProductID] = true
			productIDs = append(productIDs, u.ProductID)
		}
	}

	products, err := h.products.FindByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uint]*catalogdomain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := &UnitsBySupplierResult{
		Supplier:   supplier,
		Units:      make([]SuppliedUnit, 0, len(units)),
		TotalUnits: int64(len(units)),
	}
	for _, u := range units {
		su := SuppliedUnit{Unit: u}
		if p, ok := byID[u.ProductID]; ok {
			su.ProductName = p.Name
			su.ProductSKU = p.SKU
		}
		result.Units = append(result.Units, su)
		result.TotalValue += u.PurchasePrice
	}
	return result, nil
}
