package domain

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Order lifecycle states.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Payment methods. The set is closed: anything else is rejected at the
// boundary instead of being stored as free text.
const (
	PaymentCash   = "cash"
	PaymentVNPay  = "vnpay"
	PaymentMomo   = "momo"
	PaymentStripe = "stripe"
)

// Payment records how an order was paid. Each method carries its own
// reference field; the others stay empty.
type Payment struct {
	Method         string `json:"method" gorm:"column:payment_method;not null"`
	VNPayTxnRef    string `json:"vnpay_txn_ref,omitempty" gorm:"column:vnpay_txn_ref"`
	MomoRequestID  string `json:"momo_request_id,omitempty" gorm:"column:momo_request_id"`
	StripeChargeID string `json:"stripe_charge_id,omitempty" gorm:"column:stripe_charge_id"`
}

// Validate checks that the method is known and that only the reference
// belonging to it is set.
func (p Payment) Validate() error {
	refs := map[string]string{
		PaymentVNPay:  p.VNPayTxnRef,
		PaymentMomo:   p.MomoRequestID,
		PaymentStripe: p.StripeChargeID,
	}
	if _, ok := refs[p.Method]; !ok && p.Method != PaymentCash {
		return fmt.Errorf("unknown payment method %q", p.Method)
	}
	for method, ref := range refs {
		if method != p.Method && ref != "" {
			return fmt.Errorf("payment reference for %s set on a %s payment", method, p.Method)
		}
	}
	return nil
}

// Order is a sale. Completing an order is what flips its units to sold;
// there is no other path out of the available pool through a sale.
type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderNumber  string         `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID   *uint          `json:"customer_id" gorm:"index"`
	CustomerName string         `json:"customer_name"`
	Status       string         `json:"status" gorm:"not null;default:'pending';index"`
	Payment      Payment        `json:"payment" gorm:"embedded"`
	TotalAmount  int64          `json:"total_amount"`
	Notes        string         `json:"notes"`
	Items        []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one order line. Serialized products bind a specific unit by
// serial number; the binding is optional for lines sold by quantity alone.
type OrderItem struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	OrderID      uint   `json:"order_id" gorm:"not null;index"`
	ProductID    uint   `json:"product_id" gorm:"not null;index"`
	Quantity     int    `json:"quantity" gorm:"not null;default:1"`
	UnitPrice    int64  `json:"unit_price" gorm:"not null"`
	UnitID       *uint  `json:"unit_id" gorm:"index"`
	SerialNumber string `json:"serial_number"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status     string
	CustomerID uint
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	List(filter OrderFilter) ([]Order, int64, error)
	Update(order *Order) error
}
