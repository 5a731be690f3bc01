package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType represents the kind of stored document
type DocumentType string

const (
	DocumentTypeContract DocumentType = "contract"
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeReceipt  DocumentType = "receipt"
	DocumentTypeReport   DocumentType = "report"
	DocumentTypeOther    DocumentType = "other"
)

// Document represents file metadata attached to a property or tenant
type Document struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	PropertyID *uuid.UUID `json:"propertyId,omitempty" db:"property_id"`
	TenantID   *uuid.UUID `json:"tenantId,omitempty" db:"tenant_id"`

	Name     string       `json:"name" db:"name"`
	Type     DocumentType `json:"type" db:"type"`
	FilePath string       `json:"filePath" db:"file_path"`
	FileSize int64        `json:"fileSize" db:"file_size"`
	MimeType string       `json:"mimeType" db:"mime_type"`

	Description string `json:"description,omitempty" db:"description"`
}
