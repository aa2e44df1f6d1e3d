package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status vocabulary.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a single line of an order. ProductName and UnitPrice are
// copied from the product at order time and never updated afterwards, so
// historical reports stay stable when the catalog changes. Price is the
// extended price (UnitPrice * Quantity).
type OrderItem struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36);index"`
	ProductName string          `json:"product_name" gorm:"type:varchar(100)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Order represents one sale. CustomerID and PaymentMethodCode are optional;
// a walk-in cash sale has neither. TotalAmount equals the sum of the items'
// extended prices at creation time and is not recomputed later.
type Order struct {
	ID                string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string          `json:"user_id" gorm:"type:varchar(36);index"`
	CustomerID        *string         `json:"customer_id" gorm:"type:varchar(36);index"`
	PaymentMethodCode *string         `json:"payment_method_code" gorm:"type:varchar(20);index"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Status            string          `json:"status" gorm:"type:varchar(50);index;default:pending"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
