package services

import (
	"kopipos/internal/models"
	"kopipos/internal/repositories"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// GetAllCustomers retrieves every customer, active or not.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// GetActiveCustomers retrieves only active customers.
func (s *CustomerService) GetActiveCustomers() ([]models.Customer, error) {
	return s.repo.GetActive()
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	return s.repo.Create(customer)
}

// UpdateCustomer updates an existing customer.
func (s *CustomerService) UpdateCustomer(customer *models.Customer) error {
	return s.repo.Update(customer)
}

// DeactivateCustomer deactivates a customer. Orders that reference the
// customer are untouched.
func (s *CustomerService) DeactivateCustomer(id string) error {
	return s.repo.SetActive(id, false)
}

// ActivateCustomer re-activates a previously deactivated customer.
func (s *CustomerService) ActivateCustomer(id string) error {
	return s.repo.SetActive(id, true)
}
