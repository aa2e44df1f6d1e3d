package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the menu (espresso drinks, teas, pastries...).
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string    `json:"description" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product represents an item on the menu. Price is a fixed-point currency
// column; order items copy Name and Price at order time, so edits here never
// rewrite history.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string          `json:"description" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	CategoryID  string          `json:"category_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
