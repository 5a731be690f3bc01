package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Allocations maps tenant ids to their allocated share of a bill
type Allocations map[string]float64

// Value implements driver.Valuer interface
func (a Allocations) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(Allocations{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface
func (a *Allocations) Scan(value interface{}) error {
	if value == nil {
		*a = make(Allocations)
		return nil
	}

	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, a)
	case string:
		return json.Unmarshal([]byte(data), a)
	default:
		return fmt.Errorf("unsupported allocations type %T", value)
	}
}

// EnergyBill represents a shared electricity bill for a property group
type EnergyBill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	PropertyID uuid.UUID `json:"propertyId" db:"property_id"`
	GroupID    string    `json:"groupId" db:"group_id"`

	Month int `json:"month" db:"month"`
	Year  int `json:"year" db:"year"`

	TotalAmount float64 `json:"totalAmount" db:"total_amount"`
	TotalKWh    float64 `json:"totalKwh" db:"total_kwh"`

	ReadingDate time.Time `json:"readingDate" db:"reading_date"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`

	TenantAllocations Allocations `json:"tenantAllocations" db:"tenant_allocations"`
}

// WaterBill represents a shared water bill for a property group
type WaterBill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	PropertyID uuid.UUID `json:"propertyId" db:"property_id"`
	GroupID    string    `json:"groupId" db:"group_id"`

	Month int `json:"month" db:"month"`
	Year  int `json:"year" db:"year"`

	TotalAmount float64 `json:"totalAmount" db:"total_amount"`
	TotalLiters float64 `json:"totalLiters" db:"total_liters"`

	ReadingDate time.Time `json:"readingDate" db:"reading_date"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`

	TenantAllocations Allocations `json:"tenantAllocations" db:"tenant_allocations"`
}
