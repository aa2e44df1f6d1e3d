package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report rows are derived data: built per request from the orders table and
// discarded after the response is sent. The *Row types carry fixed-point
// sums straight out of the store; the presented types (with json tags) hold
// the final shapes, with currency converted to float only at that edge.

// OverviewRow is the raw count/sum for one window.
type OverviewRow struct {
	TotalOrders  int64
	TotalRevenue decimal.NullDecimal
}

// OverviewReport is the presented overview shape.
type OverviewReport struct {
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// ProductRevenueRow is one grouped line-item aggregate. Grouping is by the
// product name snapshot stored on the line item, not the live product.
type ProductRevenueRow struct {
	ProductName string
	Quantity    int64
	TotalPrice  decimal.Decimal
}

// ProductRevenueReport is the presented per-product shape.
type ProductRevenueReport struct {
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

// DailyRevenueRow is one day's summed order total. Only days with at least
// one order appear; gap-filling happens in the service layer.
type DailyRevenueRow struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// DailyRevenuePoint is one presented daily bucket, e.g. {"05/06 - Thursday", 41.50}.
type DailyRevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// MonthlyRevenueRow is one month's summed order total.
type MonthlyRevenueRow struct {
	Year    int
	Month   int
	Revenue decimal.Decimal
}

// MonthlyRevenuePoint is one presented monthly bucket, e.g. {"06/2026", 1203.75}.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// OrderHistoryRow is one order in the filtered history listing, with the
// customer and payment method names resolved. The name pointers are nil for
// walk-in orders and render as explicit JSON null.
type OrderHistoryRow struct {
	ID                string
	OrderDate         time.Time
	TotalQuantity     int64
	TotalAmount       decimal.Decimal
	CustomerName      *string
	PaymentMethodName *string
}

// OrderHistoryEntry is the presented history shape.
type OrderHistoryEntry struct {
	ID                string    `json:"id"`
	OrderDate         time.Time `json:"order_date"`
	TotalQuantity     int64     `json:"total_quantity"`
	TotalAmount       float64   `json:"total_amount"`
	CustomerName      *string   `json:"customer_name"`
	PaymentMethodName *string   `json:"payment_method_name"`
}
