package query

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// ListTransactionsQuery filters the adjustment ledger. Entries come back
// newest-first.
type ListTransactionsQuery struct {
	Filter domain.TransactionFilter
}

// ListTransactionsHandler handles ledger listing
type ListTransactionsHandler struct {
	repo domain.InventoryRepository
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(repo domain.InventoryRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{repo: repo}
}

// Handle executes the list transactions query
func (h *ListTransactionsHandler) Handle(q ListTransactionsQuery) ([]domain.AdjustmentEntry, error) {
	if q.Filter.Type != "" && !domain.ValidAdjustmentType(q.Filter.Type) {
		return nil, fmt.Errorf("unknown transaction type %q", q.Filter.Type)
	}

	if q.Filter.Limit == 0 {
		q.Filter.Limit = 50
	}
	if q.Filter.Limit > 500 {
		q.Filter.Limit = 500
	}

	entries, err := h.repo.ListEntries(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return entries, nil
}
