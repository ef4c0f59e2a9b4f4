package kafka

import (
	"context"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	invquery "github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// LowStockAlerter recomputes a product's stock summary whenever a movement
// event lands and raises a structured warning when stock dips below the
// product's minimum.
type LowStockAlerter struct {
	stock *invquery.StockSummaryHandler
}

// NewLowStockAlerter creates a new low stock alerter
func NewLowStockAlerter(stock *invquery.StockSummaryHandler) *LowStockAlerter {
	return &LowStockAlerter{stock: stock}
}

// Register attaches the alerter to outbound movement types on the consumer.
func (a *LowStockAlerter) Register(consumer *Consumer) {
	consumer.RegisterHandler(EventTypeUnitSold, a.Handle)
	consumer.RegisterHandler(EventTypeStockAdjusted, a.Handle)
}

// Handle checks the product's stock level after a movement.
func (a *LowStockAlerter) Handle(ctx context.Context, event StockMovementEvent) error {
	summary, err := a.stock.Handle(invquery.StockSummaryQuery{ProductID: event.ProductID})
	if err != nil {
		return err
	}

	switch summary.Status {
	case catalogdomain.StockOutOfStock:
		logger.Warn(ctx).
			Uint("product_id", event.ProductID).
			Str("event_id", event.EventID).
			Msg("Product is out of stock")
	case catalogdomain.StockLowStock:
		logger.Warn(ctx).
			Uint("product_id", event.ProductID).
			Int64("quantity", summary.Quantity).
			Str("event_id", event.EventID).
			Msg("Product stock below minimum")
	}
	return nil
}
