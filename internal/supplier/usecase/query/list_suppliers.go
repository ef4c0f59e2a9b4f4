package query

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

// ListSuppliersQuery represents the list suppliers request
type ListSuppliersQuery struct {
	Filter domain.SupplierFilter
}

// GetSupplierQuery fetches one supplier by id.
type GetSupplierQuery struct {
	SupplierID uint
}

// ListSuppliersResult carries a page of suppliers plus the total count.
type ListSuppliersResult struct {
	Suppliers []domain.Supplier `json:"suppliers"`
	Total     int64             `json:"total"`
}

// ListSuppliersHandler handles supplier listing
type ListSuppliersHandler struct {
	repo domain.SupplierRepository
}

// NewListSuppliersHandler creates a new list suppliers handler
func NewListSuppliersHandler(repo domain.SupplierRepository) *ListSuppliersHandler {
	return &ListSuppliersHandler{repo: repo}
}

// Handle executes the list suppliers query
func (h *ListSuppliersHandler) Handle(q ListSuppliersQuery) (*ListSuppliersResult, error) {
	if q.Filter.Limit == 0 {
		q.Filter.Limit = 50
	}

	suppliers, total, err := h.repo.List(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return &ListSuppliersResult{Suppliers: suppliers, Total: total}, nil
}

// HandleGet fetches a single supplier.
func (h *ListSuppliersHandler) HandleGet(q GetSupplierQuery) (*domain.Supplier, error) {
	return h.repo.FindByID(q.SupplierID)
}
