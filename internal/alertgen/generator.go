// Package alertgen scans active tenants and produces rent-due and
// payment-overdue alert payloads.
package alertgen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/period"
)

// Store is the read access the generator needs
type Store interface {
	ListTenantsRentDue(ctx context.Context, day int) ([]*models.Tenant, error)
	HasRentPayment(ctx context.Context, tenantID uuid.UUID, since time.Time) (bool, error)
}

// Generator produces alert payloads for tenants with due or overdue rent
type Generator struct {
	store Store
	now   func() time.Time
}

// NewGenerator creates a new generator. A nil clock defaults to time.Now.
func NewGenerator(store Store, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{store: store, now: now}
}

// Generate returns alert payloads for active tenants whose rent-due day has
// arrived or passed this month and who have no rent payment recorded since
// the start of the month. It writes nothing; persisting the payloads (and
// deduplicating against existing alerts) is the caller's job.
//
// The due-day comparison is a naive day-of-month check: a tenant with
// rent_due_date = 31 is never flagged in a 30-day month.
//
// Any store error aborts the scan; no partial list is returned.
func (g *Generator) Generate(ctx context.Context) ([]*models.Alert, error) {
	now := g.now()
	day := now.Day()

	tenants, err := g.store.ListTenantsRentDue(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list tenants with rent due: %w", err)
	}

	monthStart := period.MonthStart(now)

	var alerts []*models.Alert
	for _, tenant := range tenants {
		paid, err := g.store.HasRentPayment(ctx, tenant.ID, monthStart)
		if err != nil {
			return nil, fmt.Errorf("check rent payment for tenant %s: %w", tenant.ID, err)
		}
		if paid {
			continue
		}

		alerts = append(alerts, g.buildAlert(tenant, now, day))
	}

	return alerts, nil
}

// buildAlert builds the alert payload for a single tenant
func (g *Generator) buildAlert(tenant *models.Tenant, now time.Time, day int) *models.Alert {
	overdue := tenant.RentDueDate < day

	alert := &models.Alert{
		PropertyID: tenant.PropertyID,
		Title:      "Due Rent Payment",
		Message:    fmt.Sprintf("Rent payment is due for tenant %s", tenant.Name),
		Type:       models.AlertTypeRentDue,
		Priority:   models.AlertPriorityMedium,
	}

	tenantID := tenant.ID
	alert.TenantID = &tenantID

	dueDate := now
	alert.DueDate = &dueDate

	if overdue {
		alert.Title = "Overdue Rent Payment"
		alert.Message = fmt.Sprintf("Rent payment is overdue for tenant %s", tenant.Name)
		alert.Type = models.AlertTypePaymentOverdue
		alert.Priority = models.AlertPriorityHigh
	}

	return alert
}
