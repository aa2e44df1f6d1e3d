package repositories

import (
	"kopipos/internal/models"
)

// ProductRepository defines the interface for product data access.
// Deactivate is used instead of a hard delete so line-item snapshots keep a
// resolvable product reference.
type ProductRepository interface {
	GetAll(categoryID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Deactivate(id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Deactivate(id string) error
}
