package repositories

import (
	"fmt"
	"time"

	"kopipos/internal/models"

	"gorm.io/gorm"
)

// GORMReportRepository is a GORM implementation of ReportRepository backed
// by PostgreSQL. Currency sums stay in the decimal column type end to end;
// nothing here converts to float.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		db: db,
	}
}

// Overview returns the order count and revenue sum for the window. An empty
// window yields a zero row, not an error.
func (r *GORMReportRepository) Overview(start, end time.Time) (models.OverviewRow, error) {
	var row models.OverviewRow
	err := r.db.Model(&models.Order{}).
		Select("COUNT(id) AS total_orders, SUM(total_amount) AS total_revenue").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return models.OverviewRow{}, fmt.Errorf("failed to query overview: %w", err)
	}
	return row, nil
}

// ProductRevenue sums quantity and extended price per product name snapshot
// for line items of orders inside the window. Grouping by the snapshot, not
// the live product, keeps history stable across renames.
func (r *GORMReportRepository) ProductRevenue(start, end time.Time) ([]models.ProductRevenueRow, error) {
	var rows []models.ProductRevenueRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_name AS product_name, SUM(order_items.quantity) AS quantity, SUM(order_items.price) AS total_price").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
		Group("order_items.product_name").
		Order("total_price DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query product revenue: %w", err)
	}
	return rows, nil
}

// RevenueByDay sums order totals per calendar date. Only dates with at
// least one order come back.
func (r *GORMReportRepository) RevenueByDay(start, end time.Time) ([]models.DailyRevenueRow, error) {
	var rows []models.DailyRevenueRow
	err := r.db.Model(&models.Order{}).
		Select("CAST(created_at AS DATE) AS day, SUM(total_amount) AS revenue").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("CAST(created_at AS DATE)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query daily revenue: %w", err)
	}
	return rows, nil
}

// RevenueByMonth sums order totals per calendar year+month.
func (r *GORMReportRepository) RevenueByMonth(start, end time.Time) ([]models.MonthlyRevenueRow, error) {
	var rows []models.MonthlyRevenueRow
	err := r.db.Model(&models.Order{}).
		Select("CAST(EXTRACT(YEAR FROM created_at) AS INT) AS year, CAST(EXTRACT(MONTH FROM created_at) AS INT) AS month, SUM(total_amount) AS revenue").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("1, 2").
		Order("1 ASC, 2 ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	return rows, nil
}

// OrderHistory lists orders in the window newest first, with the item
// quantity summed and the customer / payment method names resolved. Both
// joins are LEFT so walk-in orders and retired references come back as null
// names instead of dropping the row.
func (r *GORMReportRepository) OrderHistory(start, end time.Time) ([]models.OrderHistoryRow, error) {
	var rows []models.OrderHistoryRow
	err := r.db.Model(&models.Order{}).
		Select(`orders.id AS id,
			orders.created_at AS order_date,
			COALESCE(SUM(order_items.quantity), 0) AS total_quantity,
			orders.total_amount AS total_amount,
			customers.customer_name AS customer_name,
			payment_methods.name AS payment_method_name`).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Joins("LEFT JOIN payment_methods ON payment_methods.code = orders.payment_method_code").
		Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
		Group("orders.id, orders.created_at, orders.total_amount, customers.customer_name, payment_methods.name").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	return rows, nil
}
