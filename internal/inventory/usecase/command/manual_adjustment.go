package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// ManualAdjustmentCommand reconciles a product's available count to a
// target quantity.
type ManualAdjustmentCommand struct {
	ProductID   uint
	NewQuantity int64
	Reason      string
	ActorID     uint
}

// ManualAdjustmentResult reports what the reconciliation did.
type ManualAdjustmentResult struct {
	Entry        *domain.AdjustmentEntry `json:"entry"`
	RemovedUnits int                     `json:"removed_units"`
	AddedUnits   int                     `json:"added_units"`
}

// ManualAdjustmentHandler handles manual stock reconciliation
type ManualAdjustmentHandler struct {
	repo domain.InventoryRepository
}

// NewManualAdjustmentHandler creates a new manual adjustment handler
func NewManualAdjustmentHandler(repo domain.InventoryRepository) *ManualAdjustmentHandler {
	return &ManualAdjustmentHandler{repo: repo}
}

// Handle shrinks by flipping the oldest available units to the removed
// bucket, or grows by materializing auto-serial units, and appends exactly
// one adjustment entry for the whole reconciliation.
func (h *ManualAdjustmentHandler) Handle(cmd ManualAdjustmentCommand) (*ManualAdjustmentResult, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.NewQuantity < 0 {
		return nil, domain.ErrNegativeQuantity(cmd.NewQuantity)
	}

	current, err := h.repo.CountAvailable(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to count available units: %w", err)
	}

	entry := domain.NewAdjustmentEntry(cmd.ProductID, nil, domain.AdjustmentManual, current, cmd.NewQuantity, cmd.Reason, cmd.ActorID)
	result := &ManualAdjustmentResult{Entry: entry}

	switch {
	case cmd.NewQuantity < current:
		// Oldest-created first, resembling FIFO disposal.
		victims, err := h.repo.OldestAvailable(cmd.ProductID, int(current-cmd.NewQuantity))
		if err != nil {
			return nil, fmt.Errorf("failed to pick units for removal: %w", err)
		}
		ids := make([]uint, 0, len(victims))
		for _, u := range victims {
			ids = append(ids, u.ID)
		}
		if err := h.repo.Reconcile(ids, nil, entry); err != nil {
			return nil, fmt.Errorf("failed to apply adjustment: %w", err)
		}
		result.RemovedUnits = len(ids)

	case cmd.NewQuantity > current:
		serials := GenerateSerials("ADJ", int(cmd.NewQuantity-current))
		units := make([]*domain.Unit, 0, len(serials))
		for _, serial := range serials {
			units = append(units, &domain.Unit{
				ProductID:      cmd.ProductID,
				SerialNumber:   serial,
				Status:         domain.StatusAvailable,
				ConditionGrade: domain.GradeNew,
				Notes:          cmd.Reason,
			})
		}
		if err := h.repo.Reconcile(nil, units, entry); err != nil {
			return nil, fmt.Errorf("failed to apply adjustment: %w", err)
		}
		result.AddedUnits = len(units)

	default:
		// Quantity already matches; still record the reconciliation.
		if err := h.repo.AppendEntry(entry); err != nil {
			return nil, fmt.Errorf("failed to append adjustment entry: %w", err)
		}
	}

	return result, nil
}
