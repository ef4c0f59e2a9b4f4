package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/catalog/domain"
)

// CreateProductCommand represents the create product request
type CreateProductCommand struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Barcode       string `json:"barcode"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	CostPrice     int64  `json:"cost_price"`
	UnitOfMeasure string `json:"unit_of_measure"`
	MinStock      int64  `json:"min_stock"`
	MaxStock      int64  `json:"max_stock"`
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("product sku is required")
	}
	if cmd.Price < 0 || cmd.CostPrice < 0 {
		return nil, fmt.Errorf("prices can not be negative")
	}

	if existing, err := h.repo.FindBySKU(cmd.SKU); err == nil && existing != nil {
		return nil, fmt.Errorf("sku %q already exists", cmd.SKU)
	}

	uom := cmd.UnitOfMeasure
	if uom == "" {
		uom = "pcs"
	}

	product := &domain.Product{
		Name:          cmd.Name,
		SKU:           cmd.SKU,
		Barcode:       cmd.Barcode,
		Category:      cmd.Category,
		Price:         cmd.Price,
		CostPrice:     cmd.CostPrice,
		UnitOfMeasure: uom,
		MinStock:      cmd.MinStock,
		MaxStock:      cmd.MaxStock,
		IsActive:      true,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}
