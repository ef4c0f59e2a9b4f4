package command

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

// CreateSupplierCommand represents the create supplier request
type CreateSupplierCommand struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	TaxCode       string `json:"tax_code"`
	PaymentTerms  string `json:"payment_terms"`
	CreditLimit   int64  `json:"credit_limit"`
	Notes         string `json:"notes"`
}

// CreateSupplierHandler handles supplier creation
type CreateSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewCreateSupplierHandler creates a new create supplier handler
func NewCreateSupplierHandler(repo domain.SupplierRepository) *CreateSupplierHandler {
	return &CreateSupplierHandler{repo: repo}
}

// Handle executes the create supplier command
func (h *CreateSupplierHandler) Handle(cmd CreateSupplierCommand) (*domain.Supplier, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	if cmd.Code == "" {
		return nil, fmt.Errorf("supplier code is required")
	}
	if cmd.CreditLimit < 0 {
		return nil, fmt.Errorf("credit limit can not be negative")
	}

	supplier := &domain.Supplier{
		Code:          cmd.Code,
		Name:          cmd.Name,
		ContactPerson: cmd.ContactPerson,
		Phone:         cmd.Phone,
		Email:         cmd.Email,
		Address:       cmd.Address,
		TaxCode:       cmd.TaxCode,
		PaymentTerms:  cmd.PaymentTerms,
		CreditLimit:   cmd.CreditLimit,
		Notes:         cmd.Notes,
		IsActive:      true,
	}

	if err := h.repo.Create(supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}
