package handlers

import (
	"errors"
	"log"

	"kopipos/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for the revenue reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app. Every
// route is guarded by adminOnly; report queries are unreachable without
// passing it.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	reportRoutes := router.Group("/reports", adminOnly)
	reportRoutes.Get("/overview", h.HandleOverview)
	reportRoutes.Get("/product-revenue", h.HandleProductRevenue)
	reportRoutes.Get("/daily-revenue", h.HandleDailyRevenue)
	reportRoutes.Get("/monthly-revenue", h.HandleMonthlyRevenue)

	router.Get("/orders/history", adminOnly, h.HandleOrderHistory)
}

// HandleOrderHistory lists orders inside the window named by the
// date_filter query parameter, newest first. An unknown keyword is a
// client error, never a silent default.
func (h *ReportHandler) HandleOrderHistory(c *fiber.Ctx) error {
	filter := c.Query("date_filter", services.FilterToday)

	entries, err := h.service.OrderHistory(filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error building order history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order history",
			"error":   err.Error(),
		})
	}
	return c.JSON(entries)
}

// HandleOverview returns today's order count and revenue total.
func (h *ReportHandler) HandleOverview(c *fiber.Ctx) error {
	report, err := h.service.Overview()
	if err != nil {
		log.Printf("Error building overview report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build overview report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleProductRevenue returns today's revenue grouped by product name.
func (h *ReportHandler) HandleProductRevenue(c *fiber.Ctx) error {
	report, err := h.service.ProductRevenue()
	if err != nil {
		log.Printf("Error building product revenue report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build product revenue report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleDailyRevenue returns the last seven days of revenue, gap-filled.
func (h *ReportHandler) HandleDailyRevenue(c *fiber.Ctx) error {
	report, err := h.service.DailyRevenue()
	if err != nil {
		log.Printf("Error building daily revenue report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build daily revenue report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleMonthlyRevenue returns the fixed four-month revenue series.
func (h *ReportHandler) HandleMonthlyRevenue(c *fiber.Ctx) error {
	report, err := h.service.MonthlyRevenue()
	if err != nil {
		log.Printf("Error building monthly revenue report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build monthly revenue report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}
