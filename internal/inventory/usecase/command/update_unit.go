package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// UpdateUnitCommand patches a unit. Sold units accept only notes.
type UpdateUnitCommand struct {
	UnitID  uint
	Patch   domain.UnitPatch
	ActorID uint
}

// UpdateUnitHandler handles unit updates
type UpdateUnitHandler struct {
	repo domain.InventoryRepository
}

// NewUpdateUnitHandler creates a new update unit handler
func NewUpdateUnitHandler(repo domain.InventoryRepository) *UpdateUnitHandler {
	return &UpdateUnitHandler{repo: repo}
}

// Handle applies the patch. A status change that moves the unit in or out
// of the available pool gets its own adjustment entry in the same
// transaction.
func (h *UpdateUnitHandler) Handle(cmd UpdateUnitCommand) (*domain.Unit, error) {
	if cmd.UnitID == 0 {
		return nil, fmt.Errorf("unit_id is required")
	}

	unit, err := h.repo.FindUnitByID(cmd.UnitID)
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch
	if unit.IsSold() && patch.TouchesMoreThanNotes() {
		return nil, domain.ErrImmutableUnit(unit.ID)
	}

	if patch.Status != nil {
		if !domain.ValidStatus(*patch.Status) {
			return nil, fmt.Errorf("unknown status %q", *patch.Status)
		}
		if *patch.Status == domain.StatusSold {
			return nil, fmt.Errorf("status %q can only be set by a sale", domain.StatusSold)
		}
	}
	if patch.ConditionGrade != nil && !domain.ValidGrade(*patch.ConditionGrade) {
		return nil, fmt.Errorf("unknown condition grade %q", *patch.ConditionGrade)
	}

	wasAvailable := unit.Status == domain.StatusAvailable

	if patch.Status != nil {
		unit.Status = *patch.Status
	}
	if patch.ConditionGrade != nil {
		unit.ConditionGrade = *patch.ConditionGrade
	}
	if patch.Location != nil {
		unit.Location = *patch.Location
	}
	if patch.PurchasePrice != nil {
		unit.PurchasePrice = *patch.PurchasePrice
	}
	if patch.SupplierID != nil {
		unit.SupplierID = patch.SupplierID
	}
	if patch.WarrantyStartDate != nil {
		unit.WarrantyStartDate = patch.WarrantyStartDate
	}
	if patch.WarrantyPeriodMonths != nil {
		unit.WarrantyPeriodMonths = patch.WarrantyPeriodMonths
	}
	if patch.Notes != nil {
		unit.Notes = *patch.Notes
	}

	var entry *domain.AdjustmentEntry
	if nowAvailable := unit.Status == domain.StatusAvailable; nowAvailable != wasAvailable {
		entry = domain.NewAdjustmentEntry(unit.ProductID, &unit.ID, domain.AdjustmentManual, 0, 0,
			fmt.Sprintf("unit status changed to %s", unit.Status), cmd.ActorID)
	}

	if err := h.repo.UpdateUnit(unit, entry); err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}

	return unit, nil
}
