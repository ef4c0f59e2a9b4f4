package command

import (
	"fmt"
	"time"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// MarkSoldCommand transitions an available or reserved unit to sold.
type MarkSoldCommand struct {
	UnitID     uint
	OrderID    uint
	CustomerID uint
	Price      int64
	ActorID    uint
}

// MarkSoldHandler handles the sale transition
type MarkSoldHandler struct {
	repo domain.InventoryRepository
}

// NewMarkSoldHandler creates a new mark sold handler
func NewMarkSoldHandler(repo domain.InventoryRepository) *MarkSoldHandler {
	return &MarkSoldHandler{repo: repo}
}

// Handle claims the unit. Under a race exactly one caller wins; the loser
// receives UNIT_UNAVAILABLE. The export entry commits with the claim.
func (h *MarkSoldHandler) Handle(cmd MarkSoldCommand) (*domain.Unit, error) {
	if cmd.UnitID == 0 {
		return nil, fmt.Errorf("unit_id is required")
	}
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order_id is required")
	}

	unit, err := h.repo.FindUnitByID(cmd.UnitID)
	if err != nil {
		return nil, err
	}

	stamp := domain.SaleStamp{
		OrderID:    cmd.OrderID,
		CustomerID: cmd.CustomerID,
		Price:      cmd.Price,
		SoldAt:     time.Now(),
	}
	entry := domain.NewAdjustmentEntry(unit.ProductID, &unit.ID, domain.AdjustmentExport, 0, 0,
		fmt.Sprintf("sold on order %d", cmd.OrderID), cmd.ActorID)

	if err := h.repo.ClaimUnit(cmd.UnitID, stamp, entry); err != nil {
		return nil, err
	}

	return h.repo.FindUnitByID(cmd.UnitID)
}
