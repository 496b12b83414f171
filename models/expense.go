package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense categories accepted by the API.
var ExpenseCategories = []string{"Food", "Transport", "Clothing", "Shopping", "Others"}

type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User      User            `gorm:"foreignKey:UserID" json:"-"`
	Category  string          `gorm:"not null;size:50" json:"category"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	SpentAt   time.Time       `gorm:"index" json:"spent_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func ValidCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Request structs
type CreateExpenseRequest struct {
	Category string          `json:"category" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	SpentAt  string          `json:"spent_at"` // YYYY-MM-DD, defaults to today
}

type UpdateExpenseRequest struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

// CategoryBreakdown is returned for GET /api/analytics
type CategoryBreakdown struct {
	From       time.Time                  `json:"from"`
	To         time.Time                  `json:"to"`
	Categories map[string]decimal.Decimal `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}
