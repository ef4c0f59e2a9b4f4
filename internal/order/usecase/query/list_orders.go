package query

import (
	"fmt"

	"github.com/tdnguyen/serialpos/internal/order/domain"
)

// ListOrdersQuery represents the list orders request
type ListOrdersQuery struct {
	Filter domain.OrderFilter
}

// GetOrderQuery fetches one order with its items.
type GetOrderQuery struct {
	OrderID uint
}

// ListOrdersResult carries a page of orders plus the total count.
type ListOrdersResult struct {
	Orders []domain.Order `json:"orders"`
	Total  int64          `json:"total"`
}

// ListOrdersHandler handles order listing
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) (*ListOrdersResult, error) {
	if q.Filter.Limit == 0 {
		q.Filter.Limit = 50
	}

	orders, total, err := h.repo.List(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &ListOrdersResult{Orders: orders, Total: total}, nil
}

// HandleGet fetches a single order.
func (h *ListOrdersHandler) HandleGet(q GetOrderQuery) (*domain.Order, error) {
	return h.repo.FindByID(q.OrderID)
}
