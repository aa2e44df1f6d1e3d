package services

import (
	"fmt"
	"log"
	"time"

	"kopipos/internal/models"
	"kopipos/internal/repositories"
	"kopipos/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest carries everything needed to ring up a sale. Customer
// and payment method are optional; a walk-in cash sale has neither.
type CreateOrderRequest struct {
	UserID            string             `json:"-"`
	CustomerID        *string            `json:"customer_id"`
	PaymentMethodCode *string            `json:"payment_method_code"`
	Items             []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	paymentRepo  repositories.PaymentMethodRepository
	mqClient     *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	customerRepo repositories.CustomerRepository,
	paymentRepo repositories.PaymentMethodRepository,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		mqClient:     mqClient,
	}
}

// GetAllOrders retrieves all orders, optionally restricted to one user.
func (s *OrderService) GetAllOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAll(userID)
}

// GetOrderByID retrieves a single order by its ID. Sellers only see their
// own orders; a mismatch reads as not found so order IDs are not probeable.
// Admins see every order.
func (s *OrderService) GetOrderByID(id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return order, nil
}

// CreateOrder builds and persists a new order. Each line item copies the
// product name and unit price at this moment; the total is the decimal sum
// of the extended prices and is never recomputed after creation.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if req.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(*req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer %s not found: %w", *req.CustomerID, err)
		}
	}
	if req.PaymentMethodCode != nil {
		if _, err := s.paymentRepo.GetByCode(*req.PaymentMethodCode); err != nil {
			return nil, fmt.Errorf("payment method %s not found: %w", *req.PaymentMethodCode, err)
		}
	}

	totalAmount := decimal.Zero
	var processedItems []models.OrderItem

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product %s", item.ProductID)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}

		// Snapshot name and price so later catalog edits never rewrite
		// this order.
		extended := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		processedItems = append(processedItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Price:       extended,
		})
		totalAmount = totalAmount.Add(extended)
	}

	now := time.Now()
	newOrder := &models.Order{
		UserID:            req.UserID,
		CustomerID:        req.CustomerID,
		PaymentMethodCode: req.PaymentMethodCode,
		Items:             processedItems,
		TotalAmount:       totalAmount,
		Status:            models.OrderStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent(rabbitmq.OrderCreatedKey, map[string]interface{}{
		"order_id": newOrder.ID,
		"user_id":  newOrder.UserID,
		"status":   newOrder.Status,
		"total":    newOrder.TotalAmount.StringFixed(2),
	})

	return newOrder, nil
}

// UpdateOrderStatus updates the status of an existing order. Scoped to the
// caller's own orders unless the caller is an admin.
func (s *OrderService) UpdateOrderStatus(id, userID string, isAdmin bool, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if _, err := s.GetOrderByID(id, userID, isAdmin); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishEvent(rabbitmq.OrderStatusUpdatedKey, map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	return nil
}

// DeleteOrder deletes an order together with its items, scoped like
// UpdateOrderStatus.
func (s *OrderService) DeleteOrder(id, userID string, isAdmin bool) error {
	if _, err := s.GetOrderByID(id, userID, isAdmin); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(rabbitmq.OrderDeletedKey, map[string]interface{}{
		"order_id": id,
	})

	return nil
}

// publishEvent sends an order event to the broker. Publishing is best
// effort: a broker outage must not fail the sale.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.Publish(routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
