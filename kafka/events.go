package kafka

import "time"

// StockMovementEvent represents one stock movement on a product
type StockMovementEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	ProductID      uint      `json:"product_id"`
	UnitID         *uint     `json:"unit_id,omitempty"`
	SerialNumber   string    `json:"serial_number,omitempty"`
	QuantityChange int64     `json:"quantity_change"`
	QuantityAfter  int64     `json:"quantity_after"`
	OrderID        *uint     `json:"order_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	ActorUserID    uint      `json:"actor_user_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeUnitsReceived = "units.received"
	EventTypeUnitSold      = "unit.sold"
	EventTypeStockAdjusted = "stock.adjusted"
	EventTypeUnitReturned  = "unit.returned"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
)

// KnownEventType reports whether t names a stock movement event type.
func KnownEventType(t string) bool {
	switch t {
	case EventTypeUnitsReceived, EventTypeUnitSold, EventTypeStockAdjusted, EventTypeUnitReturned:
		return true
	}
	return false
}
