package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the contract status of a tenant
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusPending  TenantStatus = "pending"
)

// Tenant represents a person renting a property
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Document string `json:"document" db:"document"`

	PropertyID *uuid.UUID `json:"propertyId,omitempty" db:"property_id"`

	RentValue float64 `json:"rentValue" db:"rent_value"`

	// Day of month (1-31) on which rent is contractually due
	RentDueDate int `json:"rentDueDate" db:"rent_due_date"`

	Status TenantStatus `json:"status" db:"status"`
	Notes  string       `json:"notes,omitempty" db:"notes"`
}
