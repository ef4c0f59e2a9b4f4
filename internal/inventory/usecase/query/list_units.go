package query

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// ListUnitsQuery lists all serialized units of a product.
type ListUnitsQuery struct {
	ProductID uint
}

// ListUnitsHandler handles unit listing
type ListUnitsHandler struct {
	repo domain.InventoryRepository
}

// NewListUnitsHandler creates a new list units handler
func NewListUnitsHandler(repo domain.InventoryRepository) *ListUnitsHandler {
	return &ListUnitsHandler{repo: repo}
}

// Handle executes the list units query
func (h *ListUnitsHandler) Handle(q ListUnitsQuery) ([]domain.Unit, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	units, err := h.repo.FindUnitsByProduct(q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}
