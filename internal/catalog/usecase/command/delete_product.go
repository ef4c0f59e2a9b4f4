package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/catalog/domain"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// DeleteProductCommand represents the delete product request
type DeleteProductCommand struct {
	ProductID uint
}

// DeleteProductHandler handles product deletion. A product with serialized
// units on record can not be deleted; the ledger and warranty trail behind
// those units must stay resolvable.
type DeleteProductHandler struct {
	repo  domain.ProductRepository
	units invdomain.InventoryRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, units invdomain.InventoryRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, units: units}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if _, err := h.repo.FindByID(cmd.ProductID); err != nil {
		return err
	}

	units, err := h.units.FindUnitsByProduct(cmd.ProductID)
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return fmt.Errorf("product %d has %d unit(s) on record and can not be deleted", cmd.ProductID, len(units))
	}

	return h.repo.Delete(cmd.ProductID)
}
