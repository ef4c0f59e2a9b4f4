package query

import (
	"fmt"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
)

// StockSummaryQuery asks for the live stock summary of one product.
type StockSummaryQuery struct {
	ProductID uint
}

// StockSummaryBatchQuery asks for the summaries of several products at
// once, for list views.
type StockSummaryBatchQuery struct {
	ProductIDs []uint
}

// StockSummaryHandler derives quantity, stock value and status from the
// available-unit pool. The count is recomputed on every call; nothing is
// cached here.
type StockSummaryHandler struct {
	repo     domain.InventoryRepository
	products catalogdomain.ProductRepository
}

// NewStockSummaryHandler creates a new stock summary handler
func NewStockSummaryHandler(repo domain.InventoryRepository, products catalogdomain.ProductRepository) *StockSummaryHandler {
	return &StockSummaryHandler{repo: repo, products: products}
}

// Handle computes the summary for one product.
func (h *StockSummaryHandler) Handle(q StockSummaryQuery) (*catalogdomain.StockSummary, error) {
	product, err := h.products.FindByID(q.ProductID)
	if err != nil {
		return nil, err
	}

	quantity, err := h.repo.CountAvailable(q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to count available units: %w", err)
	}

	return summarize(product, quantity), nil
}

// HandleBatch computes summaries for many products with one grouped count.
// Results are identical to calling Handle per product.
func (h *StockSummaryHandler) HandleBatch(q StockSummaryBatchQuery) (map[uint]*catalogdomain.StockSummary, error) {
	products, err := h.products.FindByIDs(q.ProductIDs)
	if err != nil {
		return nil, err
	}

	counts, err := h.repo.CountAvailableBatch(q.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count available units: %w", err)
	}

	summaries := make(map[uint]*catalogdomain.StockSummary, len(products))
	for i := range products {
		product := &products[i]
		summaries[product.ID] = summarize(product, counts[product.ID])
	}
	return summaries, nil
}

func summarize(product *catalogdomain.Product, quantity int64) *catalogdomain.StockSummary {
	status := catalogdomain.StockInStock
	switch {
	case quantity == 0:
		status = catalogdomain.StockOutOfStock
	case quantity <= product.MinStock:
		status = catalogdomain.StockLowStock
	}

	return &catalogdomain.StockSummary{
		ProductID:  product.ID,
		Quantity:   quantity,
		StockValue: quantity * product.UnitValue(),
		Status:     status,
	}
}
