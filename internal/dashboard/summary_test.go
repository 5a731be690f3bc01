package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismobi/rental-server/internal/models"
)

// fakeStore is a canned-response store for calculator tests
type fakeStore struct {
	properties map[models.PropertyStatus]int64
	total      int64
	tenants    int64
	alerts     int64
	income     float64
	expenses   float64
	recent     []*models.Transaction

	sumCalls [][2]time.Time

	failOn string
}

func (f *fakeStore) CountProperties(ctx context.Context, status *models.PropertyStatus) (int64, error) {
	if f.failOn == "properties" {
		return 0, errors.New("connection reset")
	}
	if status == nil {
		return f.total, nil
	}
	return f.properties[*status], nil
}

func (f *fakeStore) CountTenants(ctx context.Context, status *models.TenantStatus) (int64, error) {
	if f.failOn == "tenants" {
		return 0, errors.New("connection reset")
	}
	return f.tenants, nil
}

func (f *fakeStore) CountAlerts(ctx context.Context, resolved *bool) (int64, error) {
	if f.failOn == "alerts" {
		return 0, errors.New("connection reset")
	}
	return f.alerts, nil
}

func (f *fakeStore) SumTransactions(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error) {
	if f.failOn == "sums" {
		return 0, errors.New("connection reset")
	}
	f.sumCalls = append(f.sumCalls, [2]time.Time{from, to})
	if txType == models.TransactionTypeIncome {
		return f.income, nil
	}
	return f.expenses, nil
}

func (f *fakeStore) ListRecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	if f.failOn == "recent" {
		return nil, errors.New("connection reset")
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSummarizeAggregates(t *testing.T) {
	recent := []*models.Transaction{
		{Description: "May rent"},
		{Description: "Repairs"},
	}
	store := &fakeStore{
		total: 10,
		properties: map[models.PropertyStatus]int64{
			models.PropertyStatusRented: 6,
			models.PropertyStatusVacant: 3,
		},
		tenants:  6,
		alerts:   2,
		income:   4200.50,
		expenses: 1300.25,
		recent:   recent,
	}

	calc := NewCalculator(store, fixedClock(time.Date(2025, time.May, 17, 10, 0, 0, 0, time.UTC)))

	summary, err := calc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), summary.TotalProperties)
	assert.Equal(t, int64(6), summary.OccupiedProperties)
	assert.Equal(t, int64(3), summary.VacantProperties)
	assert.Equal(t, int64(6), summary.TotalTenants)
	assert.Equal(t, 4200.50, summary.TotalMonthlyIncome)
	assert.Equal(t, 1300.25, summary.TotalMonthlyExpenses)
	assert.Equal(t, int64(2), summary.PendingAlerts)
	assert.Equal(t, recent, summary.RecentTransactions)

	// Both sums cover exactly the calendar month of the clock
	require.Len(t, store.sumCalls, 2)
	for _, window := range store.sumCalls {
		assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), window[0])
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), window[1])
	}
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	store := &fakeStore{}

	calc := NewCalculator(store, fixedClock(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)))

	summary, err := calc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalProperties)
	assert.Zero(t, summary.TotalMonthlyIncome)
	assert.Zero(t, summary.TotalMonthlyExpenses)
	assert.NotNil(t, summary.RecentTransactions)
	assert.Empty(t, summary.RecentTransactions)
}

func TestSummarizeRecentCappedAtFive(t *testing.T) {
	recent := make([]*models.Transaction, 8)
	for i := range recent {
		recent[i] = &models.Transaction{}
	}
	store := &fakeStore{recent: recent}

	calc := NewCalculator(store, nil)

	summary, err := calc.Summarize(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.RecentTransactions, 5)
}

func TestSummarizeFailFast(t *testing.T) {
	for _, failOn := range []string{"properties", "tenants", "sums", "alerts", "recent"} {
		t.Run(failOn, func(t *testing.T) {
			store := &fakeStore{failOn: failOn}
			calc := NewCalculator(store, nil)

			summary, err := calc.Summarize(context.Background())
			require.Error(t, err)
			assert.Nil(t, summary)
		})
	}
}
