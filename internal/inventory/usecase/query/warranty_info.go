package query

import (
	"fmt"
	"time"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
	orderdomain "github.com/tdnguyen/serialpos/internal/order/domain"
	supplierdomain "github.com/tdnguyen/serialpos/internal/supplier/domain"
	"github.com/tdnguyen/serialpos/internal/warranty"
)

// WarrantyInfoQuery looks a unit up by its serial number.
type WarrantyInfoQuery struct {
	SerialNumber string
}

// WarrantyInfo is the counter-facing warranty lookup payload. Product,
// supplier and sale context are attached when they resolve; a missing
// reference never fails the lookup.
type WarrantyInfo struct {
	Unit            *domain.Unit             `json:"unit"`
	Product         *catalogdomain.Product   `json:"product,omitempty"`
	Supplier        *supplierdomain.Supplier `json:"supplier,omitempty"`
	Order           *orderdomain.Order       `json:"order,omitempty"`
	WarrantyEndDate *time.Time               `json:"warranty_end_date"`
	WarrantyStatus  string                   `json:"warranty_status"`
	DaysLeft        *int                     `json:"days_left,omitempty"`
}

// WarrantyInfoHandler handles warranty lookups
type WarrantyInfoHandler struct {
	repo      domain.InventoryRepository
	products  catalogdomain.ProductRepository
	suppliers supplierdomain.SupplierRepository
	orders    orderdomain.OrderRepository
}

// NewWarrantyInfoHandler creates a new warranty info handler
func NewWarrantyInfoHandler(
	repo domain.InventoryRepository,
	products catalogdomain.ProductRepository,
	suppliers supplierdomain.SupplierRepository,
	orders orderdomain.OrderRepository,
) *WarrantyInfoHandler {
	return &WarrantyInfoHandler{repo: repo, products: products, suppliers: suppliers, orders: orders}
}

// Handle executes the warranty lookup
func (h *WarrantyInfoHandler) Handle(q WarrantyInfoQuery) (*WarrantyInfo, error) {
	if q.SerialNumber == "" {
		return nil, fmt.Errorf("serial_number is required")
	}

	unit, err := h.repo.FindUnitBySerial(q.SerialNumber)
	if err != nil {
		return nil, err
	}

	end := unit.WarrantyEndDate()
	status := warranty.Compute(end, time.Now())

	info := &WarrantyInfo{
		Unit:            unit,
		WarrantyEndDate: end,
		WarrantyStatus:  string(status.Bucket),
	}
	if status.Bucket != warranty.BucketUnknown {
		days := status.DaysLeft
		info.DaysLeft = &days
	}

	if product, err := h.products.FindByID(unit.ProductID); err == nil {
		info.Product = product
	}
	if unit.SupplierID != nil {
		if supplier, err := h.suppliers.FindByID(*unit.SupplierID); err == nil {
			info.Supplier = supplier
		}
	}
	if unit.SoldOrderID != nil {
		if order, err := h.orders.FindByID(*unit.SoldOrderID); err == nil {
			info.Order = order
		}
	}

	return info, nil
}
