package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

// UpdateSupplierCommand represents the update supplier request. Nil fields
// are left untouched.
type UpdateSupplierCommand struct {
	SupplierID    uint
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	TaxCode       *string `json:"tax_code"`
	PaymentTerms  *string `json:"payment_terms"`
	CreditLimit   *int64  `json:"credit_limit"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateSupplierHandler handles supplier updates
type UpdateSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewUpdateSupplierHandler creates a new update supplier handler
func NewUpdateSupplierHandler(repo domain.SupplierRepository) *UpdateSupplierHandler {
	return &UpdateSupplierHandler{repo: repo}
}

// Handle executes the update supplier command
func (h *UpdateSupplierHandler) Handle(cmd UpdateSupplierCommand) (*domain.Supplier, error) {
	supplier, err := h.repo.FindByID(cmd.SupplierID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("supplier name can not be empty")
		}
		supplier.Name = *cmd.Name
	}
	if cmd.ContactPerson != nil {
		supplier.ContactPerson = *cmd.ContactPerson
	}
	if cmd.Phone != nil {
		supplier.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		supplier.Email = *cmd.Email
	}
	if cmd.Address != nil {
		supplier.Address = *cmd.Address
	}
	if cmd.TaxCode != nil {
		supplier.TaxCode = *cmd.TaxCode
	}
	if cmd.PaymentTerms != nil {
		supplier.PaymentTerms = *cmd.PaymentTerms
	}
	if cmd.CreditLimit != nil {
		if *cmd.CreditLimit < 0 {
			return nil, fmt.Errorf("credit limit can not be negative")
		}
		supplier.CreditLimit = *cmd.CreditLimit
	}
	if cmd.Notes != nil {
		supplier.Notes = *cmd.Notes
	}
	if cmd.IsActive != nil {
		supplier.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}
