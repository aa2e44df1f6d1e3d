package services

import (
	"fmt"

	"kopipos/internal/models"
	"kopipos/internal/repositories"
)

// PaymentMethodService handles business logic related to payment methods.
type PaymentMethodService struct {
	repo repositories.PaymentMethodRepository
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(repo repositories.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{
		repo: repo,
	}
}

// GetActivePaymentMethods retrieves the active payment methods.
func (s *PaymentMethodService) GetActivePaymentMethods() ([]models.PaymentMethod, error) {
	return s.repo.GetActive()
}

// CreatePaymentMethod creates a new payment method with a unique code.
func (s *PaymentMethodService) CreatePaymentMethod(method *models.PaymentMethod) error {
	if existing, err := s.repo.GetByCode(method.Code); err == nil && existing != nil {
		return fmt.Errorf("payment method code '%s' already exists", method.Code)
	}
	return s.repo.Create(method)
}

// UpdatePaymentMethod updates an existing payment method, keeping codes unique.
func (s *PaymentMethodService) UpdatePaymentMethod(method *models.PaymentMethod) error {
	if existing, err := s.repo.GetByCode(method.Code); err == nil && existing != nil && existing.ID != method.ID {
		return fmt.Errorf("payment method code '%s' already exists", method.Code)
	}
	return s.repo.Update(method)
}

// DeactivatePaymentMethod retires a payment method. Orders keep the code
// they were paid with.
func (s *PaymentMethodService) DeactivatePaymentMethod(id string) error {
	return s.repo.Deactivate(id)
}
