package repositories

import (
	"fmt"

	"kopipos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetAll retrieves every customer, active or not, ordered for display.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("sort_order ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// GetActive retrieves only active customers ordered for display.
func (r *GORMCustomerRepository) GetActive() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get active customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *GORMCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return &customer, nil
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.IsActive = true
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update updates an existing customer. Save would insert a missing row, so
// existence is checked first.
func (r *GORMCustomerRepository) Update(customer *models.Customer) error {
	var count int64
	if err := r.db.Model(&models.Customer{}).Where("id = ?", customer.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("customer with ID %s not found for update", customer.ID)
	}
	if err := r.db.Save(customer).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// SetActive activates or deactivates a customer. Orders referencing the
// customer are untouched.
func (r *GORMCustomerRepository) SetActive(id string, active bool) error {
	res := r.db.Model(&models.Customer{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to set customer active state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %s not found", id)
	}
	return nil
}

// GORMPaymentMethodRepository is a GORM implementation of PaymentMethodRepository.
type GORMPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGORMPaymentMethodRepository creates a new instance of GORMPaymentMethodRepository.
func NewGORMPaymentMethodRepository(db *gorm.DB) *GORMPaymentMethodRepository {
	return &GORMPaymentMethodRepository{
		db: db,
	}
}

// GetActive retrieves the active payment methods.
func (r *GORMPaymentMethodRepository) GetActive() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to get active payment methods: %w", err)
	}
	return methods, nil
}

// GetByID retrieves a payment method by its ID.
func (r *GORMPaymentMethodRepository) GetByID(id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.First(&method, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("payment method with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get payment method by ID %s: %w", id, err)
	}
	return &method, nil
}

// GetByCode retrieves a payment method by its stable code.
func (r *GORMPaymentMethodRepository) GetByCode(code string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.First(&method, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("payment method with code %s not found", code)
		}
		return nil, fmt.Errorf("failed to get payment method by code %s: %w", code, err)
	}
	return &method, nil
}

// Create creates a new payment method in the database.
func (r *GORMPaymentMethodRepository) Create(method *models.PaymentMethod) error {
	if method.ID == "" {
		method.ID = uuid.New().String()
	}
	method.IsActive = true
	if err := r.db.Create(method).Error; err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

// Update updates an existing payment method.
func (r *GORMPaymentMethodRepository) Update(method *models.PaymentMethod) error {
	var count int64
	if err := r.db.Model(&models.PaymentMethod{}).Where("id = ?", method.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("payment method with ID %s not found for update", method.ID)
	}
	if err := r.db.Save(method).Error; err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return nil
}

// Deactivate retires a payment method. Orders keep the dangling code; the
// history query resolves it to null when no active method matches.
func (r *GORMPaymentMethodRepository) Deactivate(id string) error {
	res := r.db.Model(&models.PaymentMethod{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate payment method: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment method with ID %s not found for deactivation", id)
	}
	return nil
}
