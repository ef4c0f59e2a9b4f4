package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// DeleteUnitCommand hard-deletes a unit that has not been sold.
type DeleteUnitCommand struct {
	UnitID  uint
	Reason  string
	ActorID uint
}

// DeleteUnitHandler handles unit deletion
type DeleteUnitHandler struct {
	repo domain.InventoryRepository
}

// NewDeleteUnitHandler creates a new delete unit handler
func NewDeleteUnitHandler(repo domain.InventoryRepository) *DeleteUnitHandler {
	return &DeleteUnitHandler{repo: repo}
}

// Handle deletes the unit, recording the shrink when it was available.
func (h *DeleteUnitHandler) Handle(cmd DeleteUnitCommand) error {
	if cmd.UnitID == 0 {
		return fmt.Errorf("unit_id is required")
	}

	unit, err := h.repo.FindUnitByID(cmd.UnitID)
	if err != nil {
		return err
	}
	if unit.IsSold() {
		return domain.ErrUnitSold(unit.ID)
	}

	var entry *domain.AdjustmentEntry
	if unit.Status == domain.StatusAvailable {
		reason := cmd.Reason
		if reason == "" {
			reason = "unit deleted"
		}
		entry = domain.NewAdjustmentEntry(unit.ProductID, &unit.ID, domain.AdjustmentManual, 0, 0, reason, cmd.ActorID)
	}

	if err := h.repo.DeleteUnit(cmd.UnitID, entry); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	return nil
}
