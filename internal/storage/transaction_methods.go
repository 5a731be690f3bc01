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

// CreateTransaction creates a new transaction
func (s *PostgresStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	query := `
		INSERT INTO transactions (
			id, created_at, updated_at, property_id, tenant_id, description,
			amount, type, category, date, recurring, recurring_day, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		tx.ID, tx.CreatedAt, tx.UpdatedAt, tx.PropertyID, tx.TenantID,
		tx.Description, tx.Amount, tx.Type, tx.Category, tx.Date,
		tx.Recurring, tx.RecurringDay, tx.Notes,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetTransaction gets a transaction by ID
func (s *PostgresStore) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, description,
		       amount, type, category, date, recurring, recurring_day, notes
		FROM transactions
		WHERE id = $1`

	tx := &models.Transaction{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.CreatedAt, &tx.UpdatedAt, &tx.PropertyID, &tx.TenantID,
		&tx.Description, &tx.Amount, &tx.Type, &tx.Category, &tx.Date,
		&tx.Recurring, &tx.RecurringDay, &tx.Notes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return tx, err
}

// UpdateTransaction updates a transaction
func (s *PostgresStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	tx.UpdatedAt = time.Now()

	query := `
		UPDATE transactions SET
			updated_at = $2, property_id = $3, tenant_id = $4, description = $5,
			amount = $6, type = $7, category = $8, date = $9, recurring = $10,
			recurring_day = $11, notes = $12
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		tx.ID, tx.UpdatedAt, tx.PropertyID, tx.TenantID, tx.Description,
		tx.Amount, tx.Type, tx.Category, tx.Date, tx.Recurring,
		tx.RecurringDay, tx.Notes,
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

// DeleteTransaction deletes a transaction
func (s *PostgresStore) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
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

// ListTransactions lists transactions with optional filters
func (s *PostgresStore) ListTransactions(ctx context.Context, filters TransactionFilters, limit, offset int) ([]*models.Transaction, int64, error) {
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
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, description,
		       amount, type, category, date, recurring, recurring_day, notes
		FROM transactions` + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

// ListRecentTransactions lists the most recently created transactions
func (s *PostgresStore) ListRecentTransactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, updated_at, property_id, tenant_id, description,
		       amount, type, category, date, recurring, recurring_day, notes
		FROM transactions
		ORDER BY created_at DESC
		LIMIT %d`, limit)

	rows, err := s.getDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumTransactions sums amounts of the given type with date in [from, to)
func (s *PostgresStore) SumTransactions(ctx context.Context, txType models.TransactionType, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type = $1 AND date >= $2 AND date < $3`

	var total float64
	err := s.getDB().QueryRowContext(ctx, query, txType, from, to).Scan(&total)
	return total, err
}

// HasRentPayment reports whether the tenant has an income transaction with
// a rent-like category dated on or after the given time. Category matching
// is a case-insensitive substring, as entered categories are free text.
func (s *PostgresStore) HasRentPayment(ctx context.Context, tenantID uuid.UUID, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE tenant_id = $1 AND type = $2 AND category ILIKE '%rent%' AND date >= $3
		)`

	var exists bool
	err := s.getDB().QueryRowContext(ctx, query, tenantID, models.TransactionTypeIncome, since).Scan(&exists)
	return exists, err
}

// DeleteTransactionsByProperty deletes all transactions of a property
func (s *PostgresStore) DeleteTransactionsByProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM transactions WHERE property_id = $1", propertyID)
	return err
}

// DeleteTransactionsByTenant deletes all transactions of a tenant
func (s *PostgresStore) DeleteTransactionsByTenant(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM transactions WHERE tenant_id = $1", tenantID)
	return err
}

// scanTransactions scans transaction rows
func scanTransactions(rows *sql.Rows) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		err := rows.Scan(
			&tx.ID, &tx.CreatedAt, &tx.UpdatedAt, &tx.PropertyID, &tx.TenantID,
			&tx.Description, &tx.Amount, &tx.Type, &tx.Category, &tx.Date,
			&tx.Recurring, &tx.RecurringDay, &tx.Notes,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
