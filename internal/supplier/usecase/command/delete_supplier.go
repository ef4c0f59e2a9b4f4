package command

import (
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

// DeleteSupplierCommand represents the delete supplier request
type DeleteSupplierCommand struct {
	SupplierID uint
}

// DeleteSupplierHandler handles supplier deletion. A supplier with units
// still attributed to it can not be deleted; the attribution trail would
// dangle.
type DeleteSupplierHandler struct {
	repo  domain.SupplierRepository
	units invdomain.InventoryRepository
}

// NewDeleteSupplierHandler creates a new delete supplier handler
func NewDeleteSupplierHandler(repo domain.SupplierRepository, units invdomain.InventoryRepository) *DeleteSupplierHandler {
	return &DeleteSupplierHandler{repo: repo, units: units}
}

// Handle executes the delete supplier command
func (h *DeleteSupplierHandler) Handle(cmd DeleteSupplierCommand) error {
	if _, err := h.repo.FindByID(cmd.SupplierID); err != nil {
		return err
	}

	n, err := h.units.CountBySupplier(cmd.SupplierID)
	if err != nil {
		return err
	}
	if n > 0 {
		return invdomain.ErrSupplierConstraint(cmd.SupplierID, n)
	}

	return h.repo.Delete(cmd.SupplierID)
}
