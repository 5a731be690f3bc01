package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// documentRequest is the payload for create and update
type documentRequest struct {
	PropertyID  *string `json:"property_id"`
	TenantID    *string `json:"tenant_id"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Type        string  `json:"type" validate:"required,oneof=contract|invoice|receipt|report|other"`
	FilePath    string  `json:"file_path" validate:"required"`
	FileSize    int64   `json:"file_size" validate:"min=0"`
	MimeType    string  `json:"mime_type"`
	Description string  `json:"description"`
}

// HandleListDocuments lists documents
func (s *RESTServer) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	var filters storage.DocumentFilters

	propertyID, err := queryUUID(r, "property_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property_id")
		return
	}
	filters.PropertyID = propertyID

	tenantID, err := queryUUID(r, "tenant_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tenant_id")
		return
	}
	filters.TenantID = tenantID

	if raw := r.URL.Query().Get("type"); raw != "" {
		docType := models.DocumentType(raw)
		filters.Type = &docType
	}

	documents, total, err := s.store.ListDocuments(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": documents,
		"total":     total,
	})
}

// HandleCreateDocument creates a document record
func (s *RESTServer) HandleCreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc := &models.Document{
		Name:        req.Name,
		Type:        models.DocumentType(req.Type),
		FilePath:    req.FilePath,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		Description: req.Description,
	}

	if req.PropertyID != nil && *req.PropertyID != "" {
		id, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid property_id")
			return
		}
		if _, err := s.store.GetProperty(ctx, id); err != nil {
			if err == storage.ErrNotFound {
				s.respondError(w, http.StatusBadRequest, "property does not exist")
				return
			}
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		doc.PropertyID = &id
	}
	if req.TenantID != nil && *req.TenantID != "" {
		id, err := uuid.Parse(*req.TenantID)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid tenant_id")
			return
		}
		if _, err := s.store.GetTenant(ctx, id); err != nil {
			if err == storage.ErrNotFound {
				s.respondError(w, http.StatusBadRequest, "tenant does not exist")
				return
			}
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		doc.TenantID = &id
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("document", "created", doc)
	s.respondJSON(w, http.StatusCreated, doc)
}

// HandleGetDocument gets a document record
func (s *RESTServer) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, doc)
}

// HandleUpdateDocument updates a document's metadata
func (s *RESTServer) HandleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc.Name = req.Name
	doc.Type = models.DocumentType(req.Type)
	doc.Description = req.Description

	if err := s.store.UpdateDocument(r.Context(), doc); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("document", "updated", doc)
	s.respondJSON(w, http.StatusOK, doc)
}

// HandleDeleteDocument deletes a document record
func (s *RESTServer) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("document", "deleted", map[string]string{"id": id.String()})
	w.WriteHeader(http.StatusNoContent)
}
