package repositories

import (
	"kopipos/internal/models"
)

// OrderRepository defines the interface for order data access. Orders own
// their items: Create persists both, Delete cascades to the items.
type OrderRepository interface {
	GetAll(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	Delete(id string) error
}
