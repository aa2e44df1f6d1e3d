package models

import "time"

// PaymentMethod is a way an order can be paid (cash, card, QR transfer...).
// Orders reference it by Code, not by ID, so the code must stay stable.
type PaymentMethod struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code        string    `json:"payment_method_code" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=2,max=20"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string    `json:"description" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
