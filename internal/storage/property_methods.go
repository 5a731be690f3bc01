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

// CreateProperty creates a new property
func (s *PostgresStore) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == uuid.Nil {
		property.ID = uuid.New()
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if property.Status == "" {
		property.Status = models.PropertyStatusVacant
	}

	query := `
		INSERT INTO properties (
			id, created_at, updated_at, name, address, type, size, rooms,
			rent_value, expenses, status, description, tenant_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		property.ID, property.CreatedAt, property.UpdatedAt, property.Name,
		property.Address, property.Type, property.Size, property.Rooms,
		property.RentValue, property.Expenses, property.Status,
		property.Description, property.TenantID,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetProperty gets a property by ID
func (s *PostgresStore) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := `
		SELECT id, created_at, updated_at, name, address, type, size, rooms,
		       rent_value, expenses, status, description, tenant_id
		FROM properties
		WHERE id = $1`

	property := &models.Property{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&property.ID, &property.CreatedAt, &property.UpdatedAt, &property.Name,
		&property.Address, &property.Type, &property.Size, &property.Rooms,
		&property.RentValue, &property.Expenses, &property.Status,
		&property.Description, &property.TenantID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return property, err
}

// UpdateProperty updates a property
func (s *PostgresStore) UpdateProperty(ctx context.Context, property *models.Property) error {
	property.UpdatedAt = time.Now()

	query := `
		UPDATE properties SET
			updated_at = $2, name = $3, address = $4, type = $5, size = $6,
			rooms = $7, rent_value = $8, expenses = $9, status = $10,
			description = $11, tenant_id = $12
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		property.ID, property.UpdatedAt, property.Name, property.Address,
		property.Type, property.Size, property.Rooms, property.RentValue,
		property.Expenses, property.Status, property.Description, property.TenantID,
	)

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

// DeleteProperty deletes a property
func (s *PostgresStore) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM properties WHERE id = $1", id)
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

// ListProperties lists properties with optional filters
func (s *PostgresStore) ListProperties(ctx context.Context, filters PropertyFilters, limit, offset int) ([]*models.Property, int64, error) {
	var args []interface{}
	var conds []string

	if filters.Status != nil {
		args = append(args, *filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Type != "" {
		args = append(args, "%"+filters.Type+"%")
		conds = append(conds, fmt.Sprintf("type ILIKE $%d", len(args)))
	}
	if filters.MinRent != nil {
		args = append(args, *filters.MinRent)
		conds = append(conds, fmt.Sprintf("rent_value >= $%d", len(args)))
	}
	if filters.MaxRent != nil {
		args = append(args, *filters.MaxRent)
		conds = append(conds, fmt.Sprintf("rent_value <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM properties"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, name, address, type, size, rooms,
		       rent_value, expenses, status, description, tenant_id
		FROM properties` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		err := rows.Scan(
			&property.ID, &property.CreatedAt, &property.UpdatedAt, &property.Name,
			&property.Address, &property.Type, &property.Size, &property.Rooms,
			&property.RentValue, &property.Expenses, &property.Status,
			&property.Description, &property.TenantID,
		)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, property)
	}

	return properties, count, rows.Err()
}

// CountProperties counts properties, optionally restricted to a status
func (s *PostgresStore) CountProperties(ctx context.Context, status *models.PropertyStatus) (int64, error) {
	var count int64
	var err error

	if status != nil {
		err = s.getDB().QueryRowContext(ctx,
			"SELECT COUNT(*) FROM properties WHERE status = $1", *status,
		).Scan(&count)
	} else {
		err = s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&count)
	}

	return count, err
}
