// Package dashboard aggregates portfolio occupancy and current-month cash
// flow into a single summary snapshot.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/period"
)

// recentTransactionCount is the number of transactions shown on the dashboard
const recentTransactionCount = 5

// Store is the read access the calculator needs
type Store interface {
	CountProperties(ctx context.Context, status *models.PropertyStatus) (int64, error)
	CountTenants(ctx context.Context, status *models.TenantStatus) (int64, error)
	CountAlerts(ctx context.Context, resolved *bool) (int64, error)
	SumTransactions(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error)
	ListRecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error)
}

// Calculator computes dashboard summaries over a store
type Calculator struct {
	store Store
	now   func() time.Time
}

// NewCalculator creates a new calculator. A nil clock defaults to time.Now.
func NewCalculator(store Store, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{store: store, now: now}
}

// Summarize aggregates counts and monetary sums across the collections for
// the current calendar month. It is fail-fast: the first store error aborts
// the whole call, no partial summary is returned.
func (c *Calculator) Summarize(ctx context.Context) (*models.DashboardSummary, error) {
	totalProperties, err := c.store.CountProperties(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}

	rented := models.PropertyStatusRented
	occupiedProperties, err := c.store.CountProperties(ctx, &rented)
	if err != nil {
		return nil, fmt.Errorf("count occupied properties: %w", err)
	}

	vacant := models.PropertyStatusVacant
	vacantProperties, err := c.store.CountProperties(ctx, &vacant)
	if err != nil {
		return nil, fmt.Errorf("count vacant properties: %w", err)
	}

	active := models.TenantStatusActive
	totalTenants, err := c.store.CountTenants(ctx, &active)
	if err != nil {
		return nil, fmt.Errorf("count active tenants: %w", err)
	}

	monthStart, nextMonth := period.MonthWindow(c.now())

	income, err := c.store.SumTransactions(ctx, models.TransactionTypeIncome, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("sum monthly income: %w", err)
	}

	expenses, err := c.store.SumTransactions(ctx, models.TransactionTypeExpense, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("sum monthly expenses: %w", err)
	}

	unresolved := false
	pendingAlerts, err := c.store.CountAlerts(ctx, &unresolved)
	if err != nil {
		return nil, fmt.Errorf("count pending alerts: %w", err)
	}

	recent, err := c.store.ListRecentTransactions(ctx, recentTransactionCount)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	if recent == nil {
		recent = []*models.Transaction{}
	}

	return &models.DashboardSummary{
		TotalProperties:      totalProperties,
		TotalTenants:         totalTenants,
		OccupiedProperties:   occupiedProperties,
		VacantProperties:     vacantProperties,
		TotalMonthlyIncome:   income,
		TotalMonthlyExpenses: expenses,
		PendingAlerts:        pendingAlerts,
		RecentTransactions:   recent,
	}, nil
}
