package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// tenantRequest is the payload for create and update
type tenantRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone"`
	Document    string  `json:"document"`
	PropertyID  *string `json:"property_id"`
	RentValue   float64 `json:"rent_value" validate:"min=0"`
	RentDueDate int     `json:"rent_due_date" validate:"required,min=1,max=31"`
	Status      string  `json:"status" validate:"oneof=active|inactive|pending"`
	Notes       string  `json:"notes"`
}

// HandleListTenants lists tenants
func (s *RESTServer) HandleListTenants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	var filters storage.TenantFilters

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TenantStatus(raw)
		filters.Status = &status
	}
	propertyID, err := queryUUID(r, "property_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property_id")
		return
	}
	filters.PropertyID = propertyID

	tenants, total, err := s.store.ListTenants(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"total":   total,
	})
}

// HandleCreateTenant creates a tenant and links it to its property
func (s *RESTServer) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var propertyID *uuid.UUID
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
		propertyID = &id
	}

	status := models.TenantStatus(req.Status)
	if status == "" {
		status = models.TenantStatusActive
	}

	tenant := &models.Tenant{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Document:    req.Document,
		PropertyID:  propertyID,
		RentValue:   req.RentValue,
		RentDueDate: req.RentDueDate,
		Status:      status,
		Notes:       req.Notes,
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if err := tx.CreateTenant(ctx, tenant); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "tenant email already registered")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if propertyID != nil {
		if err := s.occupyProperty(ctx, tx, *propertyID, tenant.ID); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("tenant", "created", tenant)
	s.respondJSON(w, http.StatusCreated, tenant)
}

// HandleGetTenant gets a tenant
func (s *RESTServer) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	tenant, err := s.store.GetTenant(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "tenant not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, tenant)
}

// HandleUpdateTenant updates a tenant, moving the property link when the
// tenant changes homes
func (s *RESTServer) HandleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	var req tenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := s.store.GetTenant(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "tenant not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var newPropertyID *uuid.UUID
	if req.PropertyID != nil && *req.PropertyID != "" {
		pid, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid property_id")
			return
		}
		if _, err := s.store.GetProperty(ctx, pid); err != nil {
			if err == storage.ErrNotFound {
				s.respondError(w, http.StatusBadRequest, "property does not exist")
				return
			}
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		newPropertyID = &pid
	}

	oldPropertyID := tenant.PropertyID

	tenant.Name = req.Name
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.Document = req.Document
	tenant.PropertyID = newPropertyID
	tenant.RentValue = req.RentValue
	tenant.RentDueDate = req.RentDueDate
	tenant.Notes = req.Notes
	if req.Status != "" {
		tenant.Status = models.TenantStatus(req.Status)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if err := tx.UpdateTenant(ctx, tenant); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "tenant email already registered")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	moved := !sameProperty(oldPropertyID, newPropertyID)
	if moved && oldPropertyID != nil {
		if err := s.vacateProperty(ctx, tx, *oldPropertyID); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if moved && newPropertyID != nil {
		if err := s.occupyProperty(ctx, tx, *newPropertyID, tenant.ID); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("tenant", "updated", tenant)
	s.respondJSON(w, http.StatusOK, tenant)
}

// HandleDeleteTenant deletes a tenant with its related records and frees
// the occupied property
func (s *RESTServer) HandleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	tenant, err := s.store.GetTenant(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "tenant not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if err := tx.DeleteTransactionsByTenant(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteAlertsByTenant(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteDocumentsByTenant(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if tenant.PropertyID != nil {
		if err := s.vacateProperty(ctx, tx, *tenant.PropertyID); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tx.DeleteTenant(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "tenant not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("tenantID", id.String()).Msg("Tenant deleted with related records")
	s.events.Publish("tenant", "deleted", map[string]string{"id": id.String()})

	w.WriteHeader(http.StatusNoContent)
}

// occupyProperty marks a property rented by the given tenant
func (s *RESTServer) occupyProperty(ctx context.Context, store storage.Store, propertyID, tenantID uuid.UUID) error {
	property, err := store.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	property.Status = models.PropertyStatusRented
	property.TenantID = &tenantID

	return store.UpdateProperty(ctx, property)
}

// vacateProperty marks a property vacant and clears its tenant link
func (s *RESTServer) vacateProperty(ctx context.Context, store storage.Store, propertyID uuid.UUID) error {
	property, err := store.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	property.Status = models.PropertyStatusVacant
	property.TenantID = nil

	return store.UpdateProperty(ctx, property)
}

// sameProperty compares two optional property ids
func sameProperty(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
