package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// PropertyFilters represents filters for listing properties
type PropertyFilters struct {
	Status  *models.PropertyStatus
	Type    string
	MinRent *float64
	MaxRent *float64
}

// TenantFilters represents filters for listing tenants
type TenantFilters struct {
	Status     *models.TenantStatus
	PropertyID *uuid.UUID
}

// TransactionFilters represents filters for listing transactions
type TransactionFilters struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Type       *models.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
}

// AlertFilters represents filters for listing alerts
type AlertFilters struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Type       *models.AlertType
	Priority   *models.AlertPriority
	Resolved   *bool
}

// BillFilters represents filters for listing energy/water bills
type BillFilters struct {
	PropertyID *uuid.UUID
	GroupID    string
	Month      *int
	Year       *int
}

// DocumentFilters represents filters for listing documents
type DocumentFilters struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Type       *models.DocumentType
}

// Store defines the storage interface
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Property methods
	CreateProperty(ctx context.Context, property *models.Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	UpdateProperty(ctx context.Context, property *models.Property) error
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	ListProperties(ctx context.Context, filters PropertyFilters, limit, offset int) ([]*models.Property, int64, error)
	CountProperties(ctx context.Context, status *models.PropertyStatus) (int64, error)

	// Tenant methods
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetTenantByEmail(ctx context.Context, email string) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error
	ListTenants(ctx context.Context, filters TenantFilters, limit, offset int) ([]*models.Tenant, int64, error)
	CountTenants(ctx context.Context, status *models.TenantStatus) (int64, error)
	ListTenantsRentDue(ctx context.Context, day int) ([]*models.Tenant, error)

	// Transaction methods
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filters TransactionFilters, limit, offset int) ([]*models.Transaction, int64, error)
	ListRecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error)
	SumTransactions(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error)
	HasRentPayment(ctx context.Context, tenantID uuid.UUID, since time.Time) (bool, error)
	DeleteTransactionsByProperty(ctx context.Context, propertyID uuid.UUID) error
	DeleteTransactionsByTenant(ctx context.Context, tenantID uuid.UUID) error

	// Alert methods
	CreateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error)
	UpdateAlert(ctx context.Context, alert *models.Alert) error
	DeleteAlert(ctx context.Context, id uuid.UUID) error
	ListAlerts(ctx context.Context, filters AlertFilters, limit, offset int) ([]*models.Alert, int64, error)
	CountAlerts(ctx context.Context, resolved *bool) (int64, error)
	FindUnresolvedAlert(ctx context.Context, tenantID uuid.UUID, alertType models.AlertType, since time.Time) (*models.Alert, error)
	DeleteAlertsByProperty(ctx context.Context, propertyID uuid.UUID) error
	DeleteAlertsByTenant(ctx context.Context, tenantID uuid.UUID) error

	// Energy bill methods
	CreateEnergyBill(ctx context.Context, bill *models.EnergyBill) error
	GetEnergyBill(ctx context.Context, id uuid.UUID) (*models.EnergyBill, error)
	UpdateEnergyBill(ctx context.Context, bill *models.EnergyBill) error
	DeleteEnergyBill(ctx context.Context, id uuid.UUID) error
	ListEnergyBills(ctx context.Context, filters BillFilters, limit, offset int) ([]*models.EnergyBill, int64, error)
	DeleteEnergyBillsByProperty(ctx context.Context, propertyID uuid.UUID) error

	// Water bill methods
	CreateWaterBill(ctx context.Context, bill *models.WaterBill) error
	GetWaterBill(ctx context.Context, id uuid.UUID) (*models.WaterBill, error)
	UpdateWaterBill(ctx context.Context, bill *models.WaterBill) error
	DeleteWaterBill(ctx context.Context, id uuid.UUID) error
	ListWaterBills(ctx context.Context, filters BillFilters, limit, offset int) ([]*models.WaterBill, int64, error)
	DeleteWaterBillsByProperty(ctx context.Context, propertyID uuid.UUID) error

	// Document methods
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ListDocuments(ctx context.Context, filters DocumentFilters, limit, offset int) ([]*models.Document, int64, error)
	DeleteDocumentsByProperty(ctx context.Context, propertyID uuid.UUID) error
	DeleteDocumentsByTenant(ctx context.Context, tenantID uuid.UUID) error

	// Ping checks the connection
	Ping(ctx context.Context) error

	// Close the store
	Close() error
}
