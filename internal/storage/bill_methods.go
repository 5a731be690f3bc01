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

// billWhere builds the WHERE clause shared by both bill tables
func billWhere(filters BillFilters) (string, []interface{}) {
	var args []interface{}
	var conds []string

	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		conds = append(conds, fmt.Sprintf("property_id = $%d", len(args)))
	}
	if filters.GroupID != "" {
		args = append(args, filters.GroupID)
		conds = append(conds, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if filters.Month != nil {
		args = append(args, *filters.Month)
		conds = append(conds, fmt.Sprintf("month = $%d", len(args)))
	}
	if filters.Year != nil {
		args = append(args, *filters.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ========== Energy bill methods ==========

// CreateEnergyBill creates a new energy bill
func (s *PostgresStore) CreateEnergyBill(ctx context.Context, bill *models.EnergyBill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}

	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `
		INSERT INTO energy_bills (
			id, created_at, updated_at, property_id, group_id, month, year,
			total_amount, total_kwh, reading_date, due_date, tenant_allocations
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		bill.ID, bill.CreatedAt, bill.UpdatedAt, bill.PropertyID, bill.GroupID,
		bill.Month, bill.Year, bill.TotalAmount, bill.TotalKWh,
		bill.ReadingDate, bill.DueDate, bill.TenantAllocations,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetEnergyBill gets an energy bill by ID
func (s *PostgresStore) GetEnergyBill(ctx context.Context, id uuid.UUID) (*models.EnergyBill, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, group_id, month, year,
		       total_amount, total_kwh, reading_date, due_date, tenant_allocations
		FROM energy_bills
		WHERE id = $1`

	bill := &models.EnergyBill{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&bill.ID, &bill.CreatedAt, &bill.UpdatedAt, &bill.PropertyID,
		&bill.GroupID, &bill.Month, &bill.Year, &bill.TotalAmount,
		&bill.TotalKWh, &bill.ReadingDate, &bill.DueDate, &bill.TenantAllocations,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return bill, err
}

// UpdateEnergyBill updates an energy bill
func (s *PostgresStore) UpdateEnergyBill(ctx context.Context, bill *models.EnergyBill) error {
	bill.UpdatedAt = time.Now()

	query := `
		UPDATE energy_bills SET
			updated_at = $2, total_amount = $3, total_kwh = $4,
			reading_date = $5, due_date = $6, tenant_allocations = $7
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		bill.ID, bill.UpdatedAt, bill.TotalAmount, bill.TotalKWh,
		bill.ReadingDate, bill.DueDate, bill.TenantAllocations,
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

// DeleteEnergyBill deletes an energy bill
func (s *PostgresStore) DeleteEnergyBill(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM energy_bills WHERE id = $1", id)
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

// ListEnergyBills lists energy bills with optional filters
func (s *PostgresStore) ListEnergyBills(ctx context.Context, filters BillFilters, limit, offset int) ([]*models.EnergyBill, int64, error) {
	where, args := billWhere(filters)

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM energy_bills"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, property_id, group_id, month, year,
		       total_amount, total_kwh, reading_date, due_date, tenant_allocations
		FROM energy_bills` + where +
		fmt.Sprintf(" ORDER BY year DESC, month DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []*models.EnergyBill
	for rows.Next() {
		bill := &models.EnergyBill{}
		err := rows.Scan(
			&bill.ID, &bill.CreatedAt, &bill.UpdatedAt, &bill.PropertyID,
			&bill.GroupID, &bill.Month, &bill.Year, &bill.TotalAmount,
			&bill.TotalKWh, &bill.ReadingDate, &bill.DueDate, &bill.TenantAllocations,
		)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, bill)
	}

	return bills, count, rows.Err()
}

// DeleteEnergyBillsByProperty deletes all energy bills of a property
func (s *PostgresStore) DeleteEnergyBillsByProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM energy_bills WHERE property_id = $1", propertyID)
	return err
}

// ========== Water bill methods ==========

// CreateWaterBill creates a new water bill
func (s *PostgresStore) CreateWaterBill(ctx context.Context, bill *models.WaterBill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}

	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `
		INSERT INTO water_bills (
			id, created_at, updated_at, property_id, group_id, month, year,
			total_amount, total_liters, reading_date, due_date, tenant_allocations
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		bill.ID, bill.CreatedAt, bill.UpdatedAt, bill.PropertyID, bill.GroupID,
		bill.Month, bill.Year, bill.TotalAmount, bill.TotalLiters,
		bill.ReadingDate, bill.DueDate, bill.TenantAllocations,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetWaterBill gets a water bill by ID
func (s *PostgresStore) GetWaterBill(ctx context.Context, id uuid.UUID) (*models.WaterBill, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, group_id, month, year,
		       total_amount, total_liters, reading_date, due_date, tenant_allocations
		FROM water_bills
		WHERE id = $1`

	bill := &models.WaterBill{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&bill.ID, &bill.CreatedAt, &bill.UpdatedAt, &bill.PropertyID,
		&bill.GroupID, &bill.Month, &bill.Year, &bill.TotalAmount,
		&bill.TotalLiters, &bill.ReadingDate, &bill.DueDate, &bill.TenantAllocations,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return bill, err
}

// UpdateWaterBill updates a water bill
func (s *PostgresStore) UpdateWaterBill(ctx context.Context, bill *models.WaterBill) error {
	bill.UpdatedAt = time.Now()

	query := `
		UPDATE water_bills SET
			updated_at = $2, total_amount = $3, total_liters = $4,
			reading_date = $5, due_date = $6, tenant_allocations = $7
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		bill.ID, bill.UpdatedAt, bill.TotalAmount, bill.TotalLiters,
		bill.ReadingDate, bill.DueDate, bill.TenantAllocations,
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

// DeleteWaterBill deletes a water bill
func (s *PostgresStore) DeleteWaterBill(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM water_bills WHERE id = $1", id)
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

// ListWaterBills lists water bills with optional filters
func (s *PostgresStore) ListWaterBills(ctx context.Context, filters BillFilters, limit, offset int) ([]*models.WaterBill, int64, error) {
	where, args := billWhere(filters)

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM water_bills"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, property_id, group_id, month, year,
		       total_amount, total_liters, reading_date, due_date, tenant_allocations
		FROM water_bills` + where +
		fmt.Sprintf(" ORDER BY year DESC, month DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []*models.WaterBill
	for rows.Next() {
		bill := &models.WaterBill{}
		err := rows.Scan(
			&bill.ID, &bill.CreatedAt, &bill.UpdatedAt, &bill.PropertyID,
			&bill.GroupID, &bill.Month, &bill.Year, &bill.TotalAmount,
			&bill.TotalLiters, &bill.ReadingDate, &bill.DueDate, &bill.TenantAllocations,
		)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, bill)
	}

	return bills, count, rows.Err()
}

// DeleteWaterBillsByProperty deletes all water bills of a property
func (s *PostgresStore) DeleteWaterBillsByProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM water_bills WHERE property_id = $1", propertyID)
	return err
}
