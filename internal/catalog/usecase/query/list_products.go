package query

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/catalog/domain"
	invquery "github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
)

// ListProductsQuery represents the list products request
type ListProductsQuery struct {
	Filter domain.ProductFilter
}

// GetProductQuery fetches one product by id.
type GetProductQuery struct {
	ProductID uint
}

// ProductView is a product with its live stock summary attached.
type ProductView struct {
	domain.Product
	Stock *domain.StockSummary `json:"stock"`
}

// ListProductsResult carries a page of product views plus the total count.
type ListProductsResult struct {
	Products []ProductView `json:"products"`
	Total    int64         `json:"total"`
}

// ListProductsHandler handles product listing with stock summaries
type ListProductsHandler struct {
	repo  domain.ProductRepository
	stock *invquery.StockSummaryHandler
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, stock *invquery.StockSummaryHandler) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, stock: stock}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*ListProductsResult, error) {
	if q.Filter.Limit == 0 {
		q.Filter.Limit = 50
	}

	products, total, err := h.repo.List(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	summaries, err := h.stock.HandleBatch(invquery.StockSummaryBatchQuery{ProductIDs: ids})
	if err != nil {
		return nil, err
	}

	result := &ListProductsResult{Products: make([]ProductView, len(products)), Total: total}
	for i := range products {
		result.Products[i] = ProductView{Product: products[i], Stock: summaries[products[i].ID]}
	}
	return result, nil
}

// HandleGet fetches a single product with its stock summary.
func (h *ListProductsHandler) HandleGet(q GetProductQuery) (*ProductView, error) {
	product, err := h.repo.FindByID(q.ProductID)
	if err != nil {
		return nil, err
	}

	summary, err := h.stock.Handle(invquery.StockSummaryQuery{ProductID: q.ProductID})
	if err != nil {
		return nil, err
	}

	return &ProductView{Product: *product, Stock: summary}, nil
}
