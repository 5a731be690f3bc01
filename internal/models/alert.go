package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertType represents the kind of alert
type AlertType string

const (
	AlertTypeRentDue          AlertType = "rent_due"
	AlertTypeMaintenance      AlertType = "maintenance"
	AlertTypeContractExpiring AlertType = "contract_expiring"
	AlertTypePaymentOverdue   AlertType = "payment_overdue"
	AlertTypeHighEnergyBill   AlertType = "high_energy_bill"
	AlertTypeHighWaterBill    AlertType = "high_water_bill"
)

// AlertPriority represents the urgency of an alert
type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "low"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityCritical AlertPriority = "critical"
)

// ValidPriority reports whether p is one of the known priorities
func ValidPriority(p AlertPriority) bool {
	switch p {
	case AlertPriorityLow, AlertPriorityMedium, AlertPriorityHigh, AlertPriorityCritical:
		return true
	}
	return false
}

// Alert represents a system notice tied optionally to a property or tenant
type Alert struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	PropertyID *uuid.UUID `json:"propertyId,omitempty" db:"property_id"`
	TenantID   *uuid.UUID `json:"tenantId,omitempty" db:"tenant_id"`

	Title    string        `json:"title" db:"title"`
	Message  string        `json:"message" db:"message"`
	Type     AlertType     `json:"type" db:"type"`
	Priority AlertPriority `json:"priority" db:"priority"`

	Resolved   bool       `json:"resolved" db:"resolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty" db:"resolved_at"`

	DueDate *time.Time `json:"dueDate,omitempty" db:"due_date"`
}
