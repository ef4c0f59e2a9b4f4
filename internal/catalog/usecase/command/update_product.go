package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/catalog/domain"
)

// UpdateProductCommand represents the update product request. Nil fields
// are left untouched.
type UpdateProductCommand struct {
	ProductID     uint
	Name          *string `json:"name"`
	Barcode       *string `json:"barcode"`
	Category      *string `json:"category"`
	Price         *int64  `json:"price"`
	CostPrice     *int64  `json:"cost_price"`
	UnitOfMeasure *string `json:"unit_of_measure"`
	MinStock      *int64  `json:"min_stock"`
	MaxStock      *int64  `json:"max_stock"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("product name can not be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.Barcode != nil {
		product.Barcode = *cmd.Barcode
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("price can not be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.CostPrice != nil {
		if *cmd.CostPrice < 0 {
			return nil, fmt.Errorf("cost price can not be negative")
		}
		product.CostPrice = *cmd.CostPrice
	}
	if cmd.UnitOfMeasure != nil {
		product.UnitOfMeasure = *cmd.UnitOfMeasure
	}
	if cmd.MinStock != nil {
		product.MinStock = *cmd.MinStock
	}
	if cmd.MaxStock != nil {
		product.MaxStock = *cmd.MaxStock
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}
