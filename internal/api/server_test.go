package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismobi/rental-server/internal/config"
	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// stubStore embeds the Store interface so tests only implement what a
// handler actually touches; anything else panics loudly.
type stubStore struct {
	storage.Store

	pingErr error

	totalProperties int64
	rented          int64
	vacant          int64
	activeTenants   int64
	unresolved      int64
	income          float64
	expenses        float64
	recent          []*models.Transaction

	properties []*models.Property
}

func (s *stubStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *stubStore) CountProperties(ctx context.Context, status *models.PropertyStatus) (int64, error) {
	if status == nil {
		return s.totalProperties, nil
	}
	switch *status {
	case models.PropertyStatusRented:
		return s.rented, nil
	case models.PropertyStatusVacant:
		return s.vacant, nil
	}
	return 0, nil
}

func (s *stubStore) CountTenants(ctx context.Context, status *models.TenantStatus) (int64, error) {
	return s.activeTenants, nil
}

func (s *stubStore) CountAlerts(ctx context.Context, resolved *bool) (int64, error) {
	return s.unresolved, nil
}

func (s *stubStore) SumTransactions(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error) {
	if txType == models.TransactionTypeIncome {
		return s.income, nil
	}
	return s.expenses, nil
}

func (s *stubStore) ListRecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	return s.recent, nil
}

func (s *stubStore) ListProperties(ctx context.Context, filters storage.PropertyFilters, limit, offset int) ([]*models.Property, int64, error) {
	return s.properties, int64(len(s.properties)), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Name: "Rental Management Server", Version: "test"},
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}
}

func newTestServer(store storage.Store) *RESTServer {
	return NewRESTServer(testConfig(), store, nil)
}

func bearerToken(t *testing.T, s *RESTServer) string {
	t.Helper()
	access, _, err := s.auth.GenerateTokenPair(&models.User{ID: uuid.New(), Email: "admin@example.com"})
	require.NoError(t, err)
	return "Bearer " + access
}

func TestHealthHealthy(t *testing.T) {
	s := newTestServer(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"database_status":"connected"`)
}

func TestHealthUnhealthy(t *testing.T) {
	s := newTestServer(&stubStore{pingErr: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	s := newTestServer(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListPropertiesAuthorized(t *testing.T) {
	store := &stubStore{
		properties: []*models.Property{{ID: uuid.New(), Name: "Casa 1"}},
	}
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	req.Header.Set("Authorization", bearerToken(t, s))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Casa 1")
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestDashboardSummary(t *testing.T) {
	store := &stubStore{
		totalProperties: 4,
		rented:          3,
		vacant:          1,
		activeTenants:   3,
		unresolved:      2,
		income:          5000,
		expenses:        1750.5,
	}
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	req.Header.Set("Authorization", bearerToken(t, s))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"totalProperties":4`)
	assert.Contains(t, body, `"occupiedProperties":3`)
	assert.Contains(t, body, `"vacantProperties":1`)
	assert.Contains(t, body, `"totalTenants":3`)
	assert.Contains(t, body, `"totalMonthlyIncome":5000`)
	assert.Contains(t, body, `"totalMonthlyExpenses":1750.5`)
	assert.Contains(t, body, `"pendingAlerts":2`)
	assert.Contains(t, body, `"recentTransactions":[]`)
}
