package repositories

import (
	"time"

	"kopipos/internal/models"
)

// ReportRepository defines the grouped read-only queries behind the revenue
// reports. Every method filters orders by creation timestamp over the
// half-open interval [start, end) and issues exactly one query. Results are
// sparse: periods or products without matching orders are simply absent and
// are gap-filled by the caller.
type ReportRepository interface {
	Overview(start, end time.Time) (models.OverviewRow, error)
	ProductRevenue(start, end time.Time) ([]models.ProductRevenueRow, error)
	RevenueByDay(start, end time.Time) ([]models.DailyRevenueRow, error)
	RevenueByMonth(start, end time.Time) ([]models.MonthlyRevenueRow, error)
	OrderHistory(start, end time.Time) ([]models.OrderHistoryRow, error)
}
