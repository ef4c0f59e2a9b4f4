package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// ReturnUnitCommand puts a sold unit back into the available pool.
type ReturnUnitCommand struct {
	UnitID  uint
	Reason  string
	ActorID uint
}

// ReturnUnitHandler handles customer returns
type ReturnUnitHandler struct {
	repo domain.InventoryRepository
}

// NewReturnUnitHandler creates a new return unit handler
func NewReturnUnitHandler(repo domain.InventoryRepository) *ReturnUnitHandler {
	return &ReturnUnitHandler{repo: repo}
}

// Handle releases the unit. The sale stamps are cleared and the return
// entry commits with the release.
func (h *ReturnUnitHandler) Handle(cmd ReturnUnitCommand) (*domain.Unit, error) {
	unit, err := h.repo.FindUnitByID(cmd.UnitID)
	if err != nil {
		return nil, err
	}
	if !unit.IsSold() {
		return nil, fmt.Errorf("unit %d is not sold and can not be returned", cmd.UnitID)
	}

	reason := cmd.Reason
	if reason == "" {
		reason = "customer return"
	}
	entry := domain.NewAdjustmentEntry(unit.ProductID, &unit.ID, domain.AdjustmentReturn, 0, 0, reason, cmd.ActorID)

	if err := h.repo.ReleaseUnit(cmd.UnitID, entry); err != nil {
		return nil, err
	}

	return h.repo.FindUnitByID(cmd.UnitID)
}
