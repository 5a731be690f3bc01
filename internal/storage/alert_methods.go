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

// CreateAlert creates a new alert
func (s *PostgresStore) CreateAlert(ctx context.Context, alert *models.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}

	now := time.Now()
	alert.CreatedAt = now
	alert.UpdatedAt = now

	if !models.ValidPriority(alert.Priority) {
		alert.Priority = models.AlertPriorityMedium
	}

	query := `
		INSERT INTO alerts (
			id, created_at, updated_at, property_id, tenant_id, title, message,
			type, priority, resolved, resolved_at, due_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		alert.ID, alert.CreatedAt, alert.UpdatedAt, alert.PropertyID,
		alert.TenantID, alert.Title, alert.Message, alert.Type, alert.Priority,
		alert.Resolved, alert.ResolvedAt, alert.DueDate,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetAlert gets an alert by ID
func (s *PostgresStore) GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, title,
		       message, type, priority, resolved, resolved_at, due_date
		FROM alerts
		WHERE id = $1`

	alert := &models.Alert{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&alert.ID, &alert.CreatedAt, &alert.UpdatedAt, &alert.PropertyID,
		&alert.TenantID, &alert.Title, &alert.Message, &alert.Type,
		&alert.Priority, &alert.Resolved, &alert.ResolvedAt, &alert.DueDate,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return alert, err
}

// UpdateAlert updates an alert
func (s *PostgresStore) UpdateAlert(ctx context.Context, alert *models.Alert) error {
	alert.UpdatedAt = time.Now()

	query := `
		UPDATE alerts SET
			updated_at = $2, property_id = $3, tenant_id = $4, title = $5,
			message = $6, type = $7, priority = $8, resolved = $9,
			resolved_at = $10, due_date = $11
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		alert.ID, alert.UpdatedAt, alert.PropertyID, alert.TenantID,
		alert.Title, alert.Message, alert.Type, alert.Priority,
		alert.Resolved, alert.ResolvedAt, alert.DueDate,
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

// DeleteAlert deletes an alert
func (s *PostgresStore) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM alerts WHERE id = $1", id)
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

// ListAlerts lists alerts with optional filters, unresolved and most
// urgent first
func (s *PostgresStore) ListAlerts(ctx context.Context, filters AlertFilters, limit, offset int) ([]*models.Alert, int64, error) {
	var args []interface{}
	var conds []string

	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		conds = append(conds, fmt.Sprintf("property_id = $%d", len(args)))
	}
	if filters.TenantID != nil {
		args = append(args, *filters.TenantID)
		conds = append(conds, fmt.Sprintf("tenant_id = $%d", len(args)))
	}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filters.Priority != nil {
		args = append(args, *filters.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filters.Resolved != nil {
		args = append(args, *filters.Resolved)
		conds = append(conds, fmt.Sprintf("resolved = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM alerts"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, title,
		       message, type, priority, resolved, resolved_at, due_date
		FROM alerts` + where + `
		ORDER BY resolved,
			CASE priority
				WHEN 'critical' THEN 1
				WHEN 'high' THEN 2
				WHEN 'medium' THEN 3
				ELSE 4
			END,
			created_at DESC` +
		fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		alert := &models.Alert{}
		err := rows.Scan(
			&alert.ID, &alert.CreatedAt, &alert.UpdatedAt, &alert.PropertyID,
			&alert.TenantID, &alert.Title, &alert.Message, &alert.Type,
			&alert.Priority, &alert.Resolved, &alert.ResolvedAt, &alert.DueDate,
		)
		if err != nil {
			return nil, 0, err
		}
		alerts = append(alerts, alert)
	}

	return alerts, count, rows.Err()
}

// CountAlerts counts alerts, optionally restricted by resolved state
func (s *PostgresStore) CountAlerts(ctx context.Context, resolved *bool) (int64, error) {
	var count int64
	var err error

	if resolved != nil {
		err = s.getDB().QueryRowContext(ctx,
			"SELECT COUNT(*) FROM alerts WHERE resolved = $1", *resolved,
		).Scan(&count)
	} else {
		err = s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM alerts").Scan(&count)
	}

	return count, err
}

// FindUnresolvedAlert finds an unresolved alert for the tenant of the
// given type created on or after the given time
func (s *PostgresStore) FindUnresolvedAlert(ctx context.Context, tenantID uuid.UUID, alertType models.AlertType, since time.Time) (*models.Alert, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, title,
		       message, type, priority, resolved, resolved_at, due_date
		FROM alerts
		WHERE tenant_id = $1 AND type = $2 AND resolved = FALSE AND created_at >= $3
		LIMIT 1`

	alert := &models.Alert{}
	err := s.getDB().QueryRowContext(ctx, query, tenantID, alertType, since).Scan(
		&alert.ID, &alert.CreatedAt, &alert.UpdatedAt, &alert.PropertyID,
		&alert.TenantID, &alert.Title, &alert.Message, &alert.Type,
		&alert.Priority, &alert.Resolved, &alert.ResolvedAt, &alert.DueDate,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return alert, err
}

// DeleteAlertsByProperty deletes all alerts of a property
func (s *PostgresStore) DeleteAlertsByProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM alerts WHERE property_id = $1", propertyID)
	return err
}

// DeleteAlertsByTenant deletes all alerts of a tenant
func (s *PostgresStore) DeleteAlertsByTenant(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM alerts WHERE tenant_id = $1", tenantID)
	return err
}
