package alertgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismobi/rental-server/internal/models"
)

// fakeStore serves canned tenants and rent-payment answers
type fakeStore struct {
	tenants []*models.Tenant
	paid    map[uuid.UUID]bool

	listErr error
	paidErr error

	requestedDay int
	paidSince    time.Time
}

func (f *fakeStore) ListTenantsRentDue(ctx context.Context, day int) ([]*models.Tenant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.requestedDay = day

	var out []*models.Tenant
	for _, tenant := range f.tenants {
		if tenant.Status == models.TenantStatusActive && tenant.RentDueDate <= day {
			out = append(out, tenant)
		}
	}
	return out, nil
}

func (f *fakeStore) HasRentPayment(ctx context.Context, tenantID uuid.UUID, since time.Time) (bool, error) {
	if f.paidErr != nil {
		return false, f.paidErr
	}
	f.paidSince = since
	return f.paid[tenantID], nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func activeTenant(name string, dueDay int) *models.Tenant {
	propertyID := uuid.New()
	return &models.Tenant{
		ID:          uuid.New(),
		Name:        name,
		PropertyID:  &propertyID,
		RentDueDate: dueDay,
		Status:      models.TenantStatusActive,
	}
}

func TestGenerateDueToday(t *testing.T) {
	tenant := activeTenant("Maria Silva", 10)
	store := &fakeStore{tenants: []*models.Tenant{tenant}}

	now := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	alerts, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, models.AlertTypeRentDue, alert.Type)
	assert.Equal(t, models.AlertPriorityMedium, alert.Priority)
	assert.Equal(t, "Due Rent Payment", alert.Title)
	assert.Contains(t, alert.Message, "Maria Silva")
	assert.Equal(t, tenant.PropertyID, alert.PropertyID)
	require.NotNil(t, alert.TenantID)
	assert.Equal(t, tenant.ID, *alert.TenantID)
	require.NotNil(t, alert.DueDate)
	assert.Equal(t, now, *alert.DueDate)
	assert.False(t, alert.Resolved)
}

func TestGenerateOverdue(t *testing.T) {
	tenant := activeTenant("Joao Santos", 5)
	store := &fakeStore{tenants: []*models.Tenant{tenant}}

	now := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	alerts, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, models.AlertTypePaymentOverdue, alert.Type)
	assert.Equal(t, models.AlertPriorityHigh, alert.Priority)
	assert.Equal(t, "Overdue Rent Payment", alert.Title)
	assert.Contains(t, alert.Message, "overdue")
}

func TestGenerateDueDayNotReached(t *testing.T) {
	tenant := activeTenant("Ana Costa", 15)
	store := &fakeStore{tenants: []*models.Tenant{tenant}}

	now := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	alerts, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Equal(t, 10, store.requestedDay)
}

func TestGenerateSkipsPaidTenant(t *testing.T) {
	paid := activeTenant("Paid Tenant", 5)
	unpaid := activeTenant("Unpaid Tenant", 5)
	store := &fakeStore{
		tenants: []*models.Tenant{paid, unpaid},
		paid:    map[uuid.UUID]bool{paid.ID: true},
	}

	now := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	alerts, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, unpaid.ID, *alerts[0].TenantID)

	// Payment lookups start at the first of the current month
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), store.paidSince)
}

func TestGenerateIdempotentPayloads(t *testing.T) {
	tenant := activeTenant("Maria Silva", 5)
	store := &fakeStore{tenants: []*models.Tenant{tenant}}

	now := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	first, err := gen.Generate(context.Background())
	require.NoError(t, err)
	second, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Type, second[0].Type)
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.Equal(t, first[0].Message, second[0].Message)
	assert.Equal(t, *first[0].TenantID, *second[0].TenantID)
}

func TestGenerateAbortsOnListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection reset")}
	gen := NewGenerator(store, nil)

	alerts, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Nil(t, alerts)
}

func TestGenerateAbortsOnPaymentError(t *testing.T) {
	tenant := activeTenant("Maria Silva", 5)
	store := &fakeStore{
		tenants: []*models.Tenant{tenant},
		paidErr: errors.New("connection reset"),
	}

	now := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(store, fixedClock(now))

	alerts, err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Nil(t, alerts)
}
