package handlers

import (
	"fmt"
	"log"
	"strings"

	"kopipos/internal/models"
	"kopipos/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentMethodHandler handles HTTP requests for payment methods.
type PaymentMethodHandler struct {
	service  *services.PaymentMethodService
	validate *validator.Validate
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler.
func NewPaymentMethodHandler(service *services.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the payment method routes with the Fiber app.
func (h *PaymentMethodHandler) RegisterRoutes(router fiber.Router) {
	methodRoutes := router.Group("/payment-methods")
	methodRoutes.Get("/", h.HandleGetPaymentMethods)
	methodRoutes.Post("/", h.HandleCreatePaymentMethod)
	methodRoutes.Put("/:id", h.HandleUpdatePaymentMethod)
	methodRoutes.Delete("/:id", h.HandleDeactivatePaymentMethod)
}

// HandleGetPaymentMethods retrieves the active payment methods.
func (h *PaymentMethodHandler) HandleGetPaymentMethods(c *fiber.Ctx) error {
	methods, err := h.service.GetActivePaymentMethods()
	if err != nil {
		log.Printf("Error getting payment methods: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve payment methods",
			"error":   err.Error(),
		})
	}
	return c.JSON(methods)
}

// HandleCreatePaymentMethod creates a new payment method.
func (h *PaymentMethodHandler) HandleCreatePaymentMethod(c *fiber.Ctx) error {
	var method models.PaymentMethod
	if err := c.BodyParser(&method); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(method); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreatePaymentMethod(&method); err != nil {
		log.Printf("Error creating payment method: %v", err)
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Payment method creation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create payment method",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(method)
}

// HandleUpdatePaymentMethod updates an existing payment method.
func (h *PaymentMethodHandler) HandleUpdatePaymentMethod(c *fiber.Ctx) error {
	var method models.PaymentMethod
	if err := c.BodyParser(&method); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	method.ID = c.Params("id")

	if err := h.service.UpdatePaymentMethod(&method); err != nil {
		log.Printf("Error updating payment method %s: %v", method.ID, err)
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Payment method update failed",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Payment method update failed: %v", err.Error()),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update payment method",
			"error":   err.Error(),
		})
	}
	return c.JSON(method)
}

// HandleDeactivatePaymentMethod retires a payment method.
func (h *PaymentMethodHandler) HandleDeactivatePaymentMethod(c *fiber.Ctx) error {
	methodID := c.Params("id")
	if err := h.service.DeactivatePaymentMethod(methodID); err != nil {
		log.Printf("Error deactivating payment method %s: %v", methodID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Payment method with ID %s not found", methodID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not deactivate payment method",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Payment method deactivated successfully",
	})
}
