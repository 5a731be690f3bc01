package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
)

// CreateTenant creates a new tenant
func (s *PostgresStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}

	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}

	query := `
		INSERT INTO tenants (
			id, created_at, updated_at, name, email, phone, document,
			property_id, rent_value, rent_due_date, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.CreatedAt, tenant.UpdatedAt, tenant.Name, tenant.Email,
		tenant.Phone, tenant.Document, tenant.PropertyID, tenant.RentValue,
		tenant.RentDueDate, tenant.Status, tenant.Notes,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetTenant gets a tenant by ID
func (s *PostgresStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, phone, document,
		       property_id, rent_value, rent_due_date, status, notes
		FROM tenants
		WHERE id = $1`

	tenant := &models.Tenant{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Name,
		&tenant.Email, &tenant.Phone, &tenant.Document, &tenant.PropertyID,
		&tenant.RentValue, &tenant.RentDueDate, &tenant.Status, &tenant.Notes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return tenant, err
}

// GetTenantByEmail gets a tenant by email
func (s *PostgresStore) GetTenantByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, phone, document,
		       property_id, rent_value, rent_due_date, status, notes
		FROM tenants
		WHERE email = $1`

	tenant := &models.Tenant{}
	err := s.getDB().QueryRowContext(ctx, query, email).Scan(
		&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Name,
		&tenant.Email, &tenant.Phone, &tenant.Document, &tenant.PropertyID,
		&tenant.RentValue, &tenant.RentDueDate, &tenant.Status, &tenant.Notes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return tenant, err
}

// UpdateTenant updates a tenant
func (s *PostgresStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	tenant.UpdatedAt = time.Now()

	query := `
		UPDATE tenants SET
			updated_at = $2, name = $3, email = $4, phone = $5, document = $6,
			property_id = $7, rent_value = $8, rent_due_date = $9, status = $10,
			notes = $11
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.UpdatedAt, tenant.Name, tenant.Email, tenant.Phone,
		tenant.Document, tenant.PropertyID, tenant.RentValue, tenant.RentDueDate,
		tenant.Status, tenant.Notes,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTenant deletes a tenant
func (s *PostgresStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListTenants lists tenants with optional filters
func (s *PostgresStore) ListTenants(ctx context.Context, filters TenantFilters, limit, offset int) ([]*models.Tenant, int64, error) {
	var args []interface{}
	var conds []string

	if filters.Status != nil {
		args = append(args, *filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		conds = append(conds, fmt.Sprintf("property_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM tenants"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, name, email, phone, document,
		       property_id, rent_value, rent_due_date, status, notes
		FROM tenants` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		err := rows.Scan(
			&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Name,
			&tenant.Email, &tenant.Phone, &tenant.Document, &tenant.PropertyID,
			&tenant.RentValue, &tenant.RentDueDate, &tenant.Status, &tenant.Notes,
		)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, count, rows.Err()
}

// CountTenants counts tenants, optionally restricted to a status
func (s *PostgresStore) CountTenants(ctx context.Context, status *models.TenantStatus) (int64, error) {
	var count int64
	var err error

	if status != nil {
		err = s.getDB().QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tenants WHERE status = $1", *status,
		).Scan(&count)
	} else {
		err = s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM tenants").Scan(&count)
	}

	return count, err
}

// ListTenantsRentDue lists active tenants whose rent-due day equals or
// precedes the given day of month
func (s *PostgresStore) ListTenantsRentDue(ctx context.Context, day int) ([]*models.Tenant, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, phone, document,
		       property_id, rent_value, rent_due_date, status, notes
		FROM tenants
		WHERE status = $1 AND (rent_due_date = $2 OR rent_due_date < $2)
		ORDER BY rent_due_date`

	rows, err := s.getDB().QueryContext(ctx, query, models.TenantStatusActive, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		err := rows.Scan(
			&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Name,
			&tenant.Email, &tenant.Phone, &tenant.Document, &tenant.PropertyID,
			&tenant.RentValue, &tenant.RentDueDate, &tenant.Status, &tenant.Notes,
		)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}
