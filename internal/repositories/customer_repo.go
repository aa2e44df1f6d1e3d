package repositories

import "kopipos/internal/models"

// CustomerRepository defines the interface for customer data access.
// Customers are never hard-deleted; orders keep non-owning references to
// them, so removal is a deactivation.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetActive() ([]models.Customer, error)
	GetByID(id string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	SetActive(id string, active bool) error
}

// PaymentMethodRepository defines the interface for payment method data access.
type PaymentMethodRepository interface {
	GetActive() ([]models.PaymentMethod, error)
	GetByID(id string) (*models.PaymentMethod, error)
	GetByCode(code string) (*models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Update(method *models.PaymentMethod) error
	Deactivate(id string) error
}
