package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus represents the occupancy status of a property
type PropertyStatus string

const (
	PropertyStatusVacant      PropertyStatus = "vacant"
	PropertyStatusRented      PropertyStatus = "rented"
	PropertyStatusMaintenance PropertyStatus = "maintenance"
)

// Property represents a rental property
type Property struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Name    string  `json:"name" db:"name"`
	Address string  `json:"address" db:"address"`
	Type    string  `json:"type" db:"type"`
	Size    float64 `json:"size" db:"size"`
	Rooms   int     `json:"rooms" db:"rooms"`

	RentValue float64 `json:"rentValue" db:"rent_value"`
	Expenses  float64 `json:"expenses" db:"expenses"`

	Status      PropertyStatus `json:"status" db:"status"`
	Description string         `json:"description,omitempty" db:"description"`

	// Set when a tenant occupies the property; non-nil implies status = rented
	TenantID *uuid.UUID `json:"tenantId,omitempty" db:"tenant_id"`
}
