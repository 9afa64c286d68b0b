// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// PaymentMethod represents how the customer paid
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "CASH"
	PaymentMethodCard    PaymentMethod = "CARD"
	PaymentMethodDigital PaymentMethod = "DIGITAL"
)

// Valid reports whether the payment method is one of the accepted values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodDigital:
		return true
	}
	return false
}

// Order represents a committed sale
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;size:50" json:"order_number"`
	CashierID   string      `gorm:"size:100;index" json:"cashier_id"`
	Status      OrderStatus `gorm:"not null;default:'COMPLETED'" json:"status"`

	// Amounts in the smallest currency unit
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod `gorm:"not null;size:20" json:"payment_method"`
	CashReceived  int64         `gorm:"default:0" json:"cash_received"`
	ChangeAmount  int64         `gorm:"default:0" json:"change_amount"`

	// SyncedFromOffline marks orders replayed from the offline queue
	SyncedFromOffline bool `gorm:"default:false" json:"synced_from_offline"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one cart line of a committed sale
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`    // unit price at sale time
	Subtotal  int64     `gorm:"not null" json:"subtotal"` // Price * Quantity
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber derives the human-facing order number from the id.
// Format: POS-YYYYMMDD-XXXXX
func (o *Order) GenerateOrderNumber() string {
	return fmt.Sprintf("POS-%s-%05d", time.Now().Format("20060102"), o.ID)
}
