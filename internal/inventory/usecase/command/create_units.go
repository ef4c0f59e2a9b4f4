package command

import (
	"fmt"
	"time"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// CreateUnitsCommand bulk-receives serialized units for a product. Either
// explicit serial numbers or a count with an auto-generation prefix.
type CreateUnitsCommand struct {
	ProductID            uint
	Serials              []string
	Count                int
	Prefix               string
	ConditionGrade       string
	Location             string
	PurchasePrice        int64
	SupplierID           *uint
	WarrantyStartDate    *time.Time
	WarrantyPeriodMonths *int
	Notes                string
	ActorID              uint
}

// CreateUnitsHandler handles bulk unit creation
type CreateUnitsHandler struct {
	repo     domain.InventoryRepository
	products catalogdomain.ProductRepository
}

// NewCreateUnitsHandler creates a new create units handler
func NewCreateUnitsHandler(repo domain.InventoryRepository, products catalogdomain.ProductRepository) *CreateUnitsHandler {
	return &CreateUnitsHandler{repo: repo, products: products}
}

// Handle creates the batch and appends one import entry for the whole
// batch, in a single transaction.
func (h *CreateUnitsHandler) Handle(cmd CreateUnitsCommand) ([]*domain.Unit, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if len(cmd.Serials) == 0 && cmd.Count <= 0 {
		return nil, fmt.Errorf("either serials or a positive count is required")
	}
	if cmd.ConditionGrade == "" {
		cmd.ConditionGrade = domain.GradeNew
	}
	if !domain.ValidGrade(cmd.ConditionGrade) {
		return nil, fmt.Errorf("unknown condition grade %q", cmd.ConditionGrade)
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	serials := cmd.Serials
	if len(serials) == 0 {
		serials = GenerateSerials(cmd.Prefix, cmd.Count)
	}

	seen := make(map[string]struct{}, len(serials))
	for _, serial := range serials {
		if serial == "" {
			return nil, fmt.Errorf("serial numbers must not be empty")
		}
		if _, dup := seen[serial]; dup {
			return nil, domain.ErrDuplicateSerial(serial)
		}
		seen[serial] = struct{}{}
	}

	existing, err := h.repo.SerialsExist(cmd.ProductID, serials)
	if err != nil {
		return nil, fmt.Errorf("failed to check serials: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicateSerial(existing[0])
	}

	units := make([]*domain.Unit, 0, len(serials))
	for _, serial := range serials {
		units = append(units, &domain.Unit{
			ProductID:            cmd.ProductID,
			SerialNumber:         serial,
			Status:               domain.StatusAvailable,
			ConditionGrade:       cmd.ConditionGrade,
			Location:             cmd.Location,
			PurchasePrice:        cmd.PurchasePrice,
			SupplierID:           cmd.SupplierID,
			WarrantyStartDate:    cmd.WarrantyStartDate,
			WarrantyPeriodMonths: cmd.WarrantyPeriodMonths,
			Notes:                cmd.Notes,
		})
	}

	// One import entry per batch, not per unit.
	entry := domain.NewAdjustmentEntry(cmd.ProductID, nil, domain.AdjustmentImport, 0, 0, fmt.Sprintf("received %d unit(s)", len(units)), cmd.ActorID)

	if err := h.repo.CreateUnits(units, entry); err != nil {
		return nil, fmt.Errorf("failed to create units: %w", err)
	}

	return units, nil
}

// GenerateSerials builds prefix-based serial numbers for a batch. The batch
// timestamp keeps separate receipts from colliding.
func GenerateSerials(prefix string, count int) []string {
	if prefix == "" {
		prefix = "SN"
	}
	batch := time.Now().UTC().Format("060102150405")
	serials := make([]string, 0, count)
	for i := 0; i < count; i++ {
		serials = append(serials, fmt.Sprintf("%s-%s-%04d", prefix, batch, i+1))
	}
	return serials
}
