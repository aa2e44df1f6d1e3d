package services

import (
	"errors"
	"fmt"
	"time"

	"kopipos/internal/models"
	"kopipos/internal/repositories"

	"github.com/shopspring/decimal"
)

// ErrInvalidDateFilter marks an unrecognized date_filter keyword. Handlers
// map it to a client error; no query is issued when it occurs.
var ErrInvalidDateFilter = errors.New("invalid date filter")

// Recognized date_filter keywords for the order history listing.
const (
	FilterToday     = "today"
	FilterYesterday = "yesterday"
	Filter7Days     = "7days"
	Filter14Days    = "14days"
	Filter30Days    = "30days"
)

// Window is a half-open date range [Start, End) used to filter orders by
// creation timestamp.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowForFilter maps a date_filter keyword to a window anchored on the
// calendar date of now. "Ndays" windows include today, so 7days covers
// today and the six days before it.
func WindowForFilter(filter string, now time.Time) (Window, error) {
	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	switch filter {
	case FilterToday:
		return Window{Start: today, End: tomorrow}, nil
	case FilterYesterday:
		return Window{Start: today.AddDate(0, 0, -1), End: today}, nil
	case Filter7Days:
		return Window{Start: today.AddDate(0, 0, -6), End: tomorrow}, nil
	case Filter14Days:
		return Window{Start: today.AddDate(0, 0, -13), End: tomorrow}, nil
	case Filter30Days:
		return Window{Start: today.AddDate(0, 0, -29), End: tomorrow}, nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidDateFilter, filter)
	}
}

// truncateToDay drops the time-of-day part, keeping the calendar date in
// the same location. Filtering is by calendar date, not a rolling 24h span.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ReportService computes the revenue reports. Each call reads the clock
// exactly once and threads that instant through window and bucket
// computation, so one response is internally consistent even across a
// midnight boundary. The service is stateless apart from its dependencies
// and safe for concurrent use.
type ReportService struct {
	repo repositories.ReportRepository
	now  func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the clock source. Tests use this to pin "today".
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Overview returns today's order count and revenue total. A day without
// orders yields {0, 0.0}.
func (s *ReportService) Overview() (models.OverviewReport, error) {
	w, err := WindowForFilter(FilterToday, s.now())
	if err != nil {
		return models.OverviewReport{}, err
	}

	row, err := s.repo.Overview(w.Start, w.End)
	if err != nil {
		return models.OverviewReport{}, err
	}

	report := models.OverviewReport{TotalOrders: row.TotalOrders}
	if row.TotalRevenue.Valid {
		report.TotalRevenue = roundCurrency(row.TotalRevenue.Decimal)
	}
	return report, nil
}

// ProductRevenue returns today's revenue grouped by the product name
// snapshot stored on each line item.
func (s *ReportService) ProductRevenue() ([]models.ProductRevenueReport, error) {
	w, err := WindowForFilter(FilterToday, s.now())
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ProductRevenue(w.Start, w.End)
	if err != nil {
		return nil, err
	}

	reports := make([]models.ProductRevenueReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, models.ProductRevenueReport{
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			TotalPrice:  roundCurrency(row.TotalPrice),
		})
	}
	return reports, nil
}

// DailyRevenue returns the last seven calendar days, today included, one
// entry per day with days without orders filled with zero.
func (s *ReportService) DailyRevenue() ([]models.DailyRevenuePoint, error) {
	now := s.now()
	w, err := WindowForFilter(Filter7Days, now)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.RevenueByDay(w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return denseDaily(w.Start, truncateToDay(now), rows), nil
}

// MonthlyRevenue returns a fixed four-bucket series: two months back, the
// previous month, the current month and the next month. The future bucket
// is always zero.
func (s *ReportService) MonthlyRevenue() ([]models.MonthlyRevenuePoint, error) {
	now := s.now()
	months := make([]time.Time, 0, 4)
	for offset := -2; offset <= 1; offset++ {
		months = append(months, time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location()))
	}
	start := months[0]
	end := months[3].AddDate(0, 1, 0)

	rows, err := s.repo.RevenueByMonth(start, end)
	if err != nil {
		return nil, err
	}

	return denseMonthly(months, rows), nil
}

// OrderHistory lists orders in the window named by the date_filter keyword,
// newest first. An unknown keyword fails before any query is issued.
func (s *ReportService) OrderHistory(filter string) ([]models.OrderHistoryEntry, error) {
	w, err := WindowForFilter(filter, s.now())
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.OrderHistory(w.Start, w.End)
	if err != nil {
		return nil, err
	}

	entries := make([]models.OrderHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.OrderHistoryEntry{
			ID:                row.ID,
			OrderDate:         row.OrderDate,
			TotalQuantity:     row.TotalQuantity,
			TotalAmount:       roundCurrency(row.TotalAmount),
			CustomerName:      row.CustomerName,
			PaymentMethodName: row.PaymentMethodName,
		})
	}
	return entries, nil
}

// denseDaily expands sparse per-day sums into one entry per calendar day
// from start to endInclusive, ascending. Missing days get zero revenue.
// Rows landing on the same day are summed, never overwritten.
func denseDaily(start, endInclusive time.Time, rows []models.DailyRevenueRow) []models.DailyRevenuePoint {
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		key := row.Day.Format("2006-01-02")
		byDay[key] = byDay[key].Add(row.Revenue)
	}

	var points []models.DailyRevenuePoint
	for day := start; !day.After(endInclusive); day = day.AddDate(0, 0, 1) {
		points = append(points, models.DailyRevenuePoint{
			Date:    dailyLabel(day),
			Revenue: roundCurrency(byDay[day.Format("2006-01-02")]),
		})
	}
	return points
}

// denseMonthly produces one entry per supplied month, in order. The last
// month is the future bucket and is forced to zero even if a stray order
// carries a future timestamp.
func denseMonthly(months []time.Time, rows []models.MonthlyRevenueRow) []models.MonthlyRevenuePoint {
	type ym struct {
		year  int
		month int
	}
	byMonth := make(map[ym]decimal.Decimal, len(rows))
	for _, row := range rows {
		key := ym{year: row.Year, month: row.Month}
		byMonth[key] = byMonth[key].Add(row.Revenue)
	}

	points := make([]models.MonthlyRevenuePoint, 0, len(months))
	for i, m := range months {
		revenue := byMonth[ym{year: m.Year(), month: int(m.Month())}]
		if i == len(months)-1 {
			revenue = decimal.Zero
		}
		points = append(points, models.MonthlyRevenuePoint{
			Month:   monthlyLabel(m),
			Revenue: roundCurrency(revenue),
		})
	}
	return points
}

// dailyLabel renders a day as "DD/MM - Weekday", e.g. "05/06 - Thursday".
func dailyLabel(day time.Time) string {
	return fmt.Sprintf("%02d/%02d - %s", day.Day(), int(day.Month()), day.Weekday())
}

// monthlyLabel renders a month as "MM/YYYY", e.g. "06/2026".
func monthlyLabel(month time.Time) string {
	return fmt.Sprintf("%02d/%04d", int(month.Month()), month.Year())
}

// roundCurrency converts a fixed-point sum to a float rounded to the stored
// column scale. This is the only place currency leaves decimal form.
func roundCurrency(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
