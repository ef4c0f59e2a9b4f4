package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/order/domain"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// CreateOrderItem is one requested order line.
type CreateOrderItem struct {
	ProductID    uint   `json:"product_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	SerialNumber string `json:"serial_number"`
}

// CreateOrderCommand represents the checkout request
type CreateOrderCommand struct {
	CustomerID   *uint             `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Payment      domain.Payment    `json:"payment"`
	Items        []CreateOrderItem `json:"items"`
	Notes        string            `json:"notes"`
	ActorID      uint              `json:"-"`
}

// CreateOrderHandler runs the checkout: a pending order is created, each
// serial-bound line claims its unit, and only then does the order complete.
// When any claim loses, every unit already claimed is released again and
// the order is cancelled.
type CreateOrderHandler struct {
	orders   domain.OrderRepository
	units    invdomain.InventoryRepository
	products catalogdomain.ProductRepository
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(
	orders domain.OrderRepository,
	units invdomain.InventoryRepository,
	products catalogdomain.ProductRepository,
) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, units: units, products: products}
}

// Handle executes the checkout
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item")
	}
	if err := cmd.Payment.Validate(); err != nil {
		return nil, err
	}

	type resolvedItem struct {
		line domain.OrderItem
		unit *invdomain.Unit
	}

	resolved := make([]resolvedItem, 0, len(cmd.Items))
	var total int64
	for i, item := range cmd.Items {
		if item.ProductID == 0 {
			return nil, fmt.Errorf("item %d: product_id is required", i)
		}
		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			return nil, err
		}

		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := item.UnitPrice
		if price == 0 {
			price = product.Price
		}
		if price < 0 {
			return nil, fmt.Errorf("item %d: unit price can not be negative", i)
		}

		line := domain.OrderItem{
			ProductID:    item.ProductID,
			Quantity:     qty,
			UnitPrice:    price,
			SerialNumber: item.SerialNumber,
		}

		var unit *invdomain.Unit
		if item.SerialNumber != "" {
			if qty != 1 {
				return nil, fmt.Errorf("item %d: a serial-bound line sells exactly one unit", i)
			}
			unit, err = h.units.FindUnitBySerial(item.SerialNumber)
			if err != nil {
				return nil, err
			}
			if unit.ProductID != item.ProductID {
				return nil, fmt.Errorf("item %d: serial %q belongs to a different product", i, item.SerialNumber)
			}
			line.UnitID = &unit.ID
		}

		total += price * int64(qty)
		resolved = append(resolved, resolvedItem{line: line, unit: unit})
	}

	order := &domain.Order{
		OrderNumber:  newOrderNumber(),
		CustomerID:   cmd.CustomerID,
		CustomerName: cmd.CustomerName,
		Status:       domain.OrderPending,
		Payment:      cmd.Payment,
		TotalAmount:  total,
		Notes:        cmd.Notes,
	}
	for _, ri := range resolved {
		order.Items = append(order.Items, ri.line)
	}
	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	claimed := make([]*invdomain.Unit, 0, len(resolved))
	for _, ri := range resolved {
		if ri.unit == nil {
			continue
		}
		stamp := invdomain.SaleStamp{
			OrderID: order.ID,
			Price:   ri.line.UnitPrice,
			SoldAt:  time.Now(),
		}
		if cmd.CustomerID != nil {
			stamp.CustomerID = *cmd.CustomerID
		}
		entry := invdomain.NewAdjustmentEntry(ri.unit.ProductID, &ri.unit.ID, invdomain.AdjustmentExport, 0, 0,
			fmt.Sprintf("sold on order %s", order.OrderNumber), cmd.ActorID)

		if err := h.units.ClaimUnit(ri.unit.ID, stamp, entry); err != nil {
			h.rollback(order, claimed, cmd.ActorID)
			return nil, err
		}
		claimed = append(claimed, ri.unit)
	}

	now := time.Now()
	order.Status = domain.OrderCompleted
	order.CompletedAt = &now
	if err := h.orders.Update(order); err != nil {
		h.rollback(order, claimed, cmd.ActorID)
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	return order, nil
}

// rollback releases every claimed unit and cancels the order. Release
// failures are logged and skipped so one bad unit does not strand the rest.
func (h *CreateOrderHandler) rollback(order *domain.Order, claimed []*invdomain.Unit, actorID uint) {
	for _, unit := range claimed {
		entry := invdomain.NewAdjustmentEntry(unit.ProductID, &unit.ID, invdomain.AdjustmentReturn, 0, 0,
			fmt.Sprintf("order %s cancelled", order.OrderNumber), actorID)
		if err := h.units.ReleaseUnit(unit.ID, entry); err != nil {
			logger.Logger.Error().Err(err).
				Uint("unit_id", unit.ID).
				Str("order_number", order.OrderNumber).
				Msg("failed to release unit during order rollback")
		}
	}

	order.Status = domain.OrderCancelled
	if err := h.orders.Update(order); err != nil {
		logger.Logger.Error().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("failed to cancel order after rollback")
	}
}

func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
