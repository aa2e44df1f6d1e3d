package models

import "time"

// Customer is an optional record an order can be linked to. Deleting a
// customer only deactivates it; existing orders keep their reference.
type Customer struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(100);index" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Address      string    `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	City         string    `json:"city" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
