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

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/active", h.HandleGetActiveCustomers)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeactivateCustomer)
	customerRoutes.Put("/:id/activate", h.HandleActivateCustomer)
}

// HandleGetCustomers retrieves every customer.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		log.Printf("Error getting customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(customers)
}

// HandleGetActiveCustomers retrieves only active customers.
func (h *CustomerHandler) HandleGetActiveCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetActiveCustomers()
	if err != nil {
		log.Printf("Error getting active customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(customers)
}

// HandleCreateCustomer creates a new customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(customer); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateCustomer(&customer); err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer updates an existing customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	customer.ID = c.Params("id")

	if err := h.service.UpdateCustomer(&customer); err != nil {
		log.Printf("Error updating customer %s: %v", customer.ID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Customer update failed: %v", err.Error()),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

// HandleDeactivateCustomer deactivates a customer; their orders remain.
func (h *CustomerHandler) HandleDeactivateCustomer(c *fiber.Ctx) error {
	customerID := c.Params("id")
	if err := h.service.DeactivateCustomer(customerID); err != nil {
		log.Printf("Error deactivating customer %s: %v", customerID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Customer with ID %s not found", customerID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not deactivate customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Customer deactivated successfully",
	})
}

// HandleActivateCustomer re-activates a customer.
func (h *CustomerHandler) HandleActivateCustomer(c *fiber.Ctx) error {
	customerID := c.Params("id")
	if err := h.service.ActivateCustomer(customerID); err != nil {
		log.Printf("Error activating customer %s: %v", customerID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Customer with ID %s not found", customerID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not activate customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Customer activated successfully",
	})
}
