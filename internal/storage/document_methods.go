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

// CreateDocument creates a new document record
func (s *PostgresStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `
		INSERT INTO documents (
			id, created_at, updated_at, property_id, tenant_id, name, type,
			file_path, file_size, mime_type, description
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		doc.ID, doc.CreatedAt, doc.UpdatedAt, doc.PropertyID, doc.TenantID,
		doc.Name, doc.Type, doc.FilePath, doc.FileSize, doc.MimeType,
		doc.Description,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetDocument gets a document by ID
func (s *PostgresStore) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, name, type,
		       file_path, file_size, mime_type, description
		FROM documents
		WHERE id = $1`

	doc := &models.Document{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.CreatedAt, &doc.UpdatedAt, &doc.PropertyID, &doc.TenantID,
		&doc.Name, &doc.Type, &doc.FilePath, &doc.FileSize, &doc.MimeType,
		&doc.Description,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return doc, err
}

// UpdateDocument updates a document record
func (s *PostgresStore) UpdateDocument(ctx context.Context, doc *models.Document) error {
	doc.UpdatedAt = time.Now()

	query := `
		UPDATE documents SET
			updated_at = $2, name = $3, type = $4, description = $5
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		doc.ID, doc.UpdatedAt, doc.Name, doc.Type, doc.Description,
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

// DeleteDocument deletes a document record
func (s *PostgresStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
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

// ListDocuments lists documents with optional filters
func (s *PostgresStore) ListDocuments(ctx context.Context, filters DocumentFilters, limit, offset int) ([]*models.Document, int64, error) {
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

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int64
	err := s.getDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM documents"+where, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, created_at, updated_at, property_id, tenant_id, name, type,
		       file_path, file_size, mime_type, description
		FROM documents` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID, &doc.CreatedAt, &doc.UpdatedAt, &doc.PropertyID,
			&doc.TenantID, &doc.Name, &doc.Type, &doc.FilePath, &doc.FileSize,
			&doc.MimeType, &doc.Description,
		)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}

	return docs, count, rows.Err()
}

// DeleteDocumentsByProperty deletes all documents of a property
func (s *PostgresStore) DeleteDocumentsByProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM documents WHERE property_id = $1", propertyID)
	return err
}

// DeleteDocumentsByTenant deletes all documents of a tenant
func (s *PostgresStore) DeleteDocumentsByTenant(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.getDB().ExecContext(ctx, "DELETE FROM documents WHERE tenant_id = $1", tenantID)
	return err
}
