package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial movement tied to a property
type Transaction struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	PropertyID uuid.UUID  `json:"propertyId" db:"property_id"`
	TenantID   *uuid.UUID `json:"tenantId,omitempty" db:"tenant_id"`

	Description string          `json:"description" db:"description"`
	Amount      float64         `json:"amount" db:"amount"`
	Type        TransactionType `json:"type" db:"type"`
	Category    string          `json:"category" db:"category"`
	Date        time.Time       `json:"date" db:"date"`

	Recurring    bool `json:"recurring" db:"recurring"`
	RecurringDay *int `json:"recurringDay,omitempty" db:"recurring_day"`

	Notes string `json:"notes,omitempty" db:"notes"`
}
