package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// propertyRequest is the payload for create and update
type propertyRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Address     string  `json:"address" validate:"required"`
	Type        string  `json:"type"`
	Size        float64 `json:"size" validate:"min=0"`
	Rooms       int     `json:"rooms" validate:"min=0"`
	RentValue   float64 `json:"rent_value" validate:"min=0"`
	Expenses    float64 `json:"expenses" validate:"min=0"`
	Status      string  `json:"status" validate:"oneof=vacant|rented|maintenance"`
	Description string  `json:"description"`
}

// HandleListProperties lists properties
func (s *RESTServer) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	var filters storage.PropertyFilters

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.PropertyStatus(raw)
		filters.Status = &status
	}
	filters.Type = r.URL.Query().Get("type")
	if raw := r.URL.Query().Get("min_rent"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRent = &v
		}
	}
	if raw := r.URL.Query().Get("max_rent"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxRent = &v
		}
	}

	properties, total, err := s.store.ListProperties(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"total":      total,
	})
}

// HandleCreateProperty creates a property
func (s *RESTServer) HandleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := models.PropertyStatus(req.Status)
	if status == "" {
		status = models.PropertyStatusVacant
	}

	property := &models.Property{
		Name:        req.Name,
		Address:     req.Address,
		Type:        req.Type,
		Size:        req.Size,
		Rooms:       req.Rooms,
		RentValue:   req.RentValue,
		Expenses:    req.Expenses,
		Status:      status,
		Description: req.Description,
	}

	if err := s.store.CreateProperty(r.Context(), property); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "property already exists")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("property", "created", property)
	s.respondJSON(w, http.StatusCreated, property)
}

// HandleGetProperty gets a property
func (s *RESTServer) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	property, err := s.store.GetProperty(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "property not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, property)
}

// HandleUpdateProperty updates a property
func (s *RESTServer) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	property, err := s.store.GetProperty(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "property not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	property.Name = req.Name
	property.Address = req.Address
	property.Type = req.Type
	property.Size = req.Size
	property.Rooms = req.Rooms
	property.RentValue = req.RentValue
	property.Expenses = req.Expenses
	property.Description = req.Description
	if req.Status != "" {
		property.Status = models.PropertyStatus(req.Status)
		if property.Status != models.PropertyStatusRented {
			property.TenantID = nil
		}
	}

	if err := s.store.UpdateProperty(ctx, property); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("property", "updated", property)
	s.respondJSON(w, http.StatusOK, property)
}

// HandleDeleteProperty deletes a property and everything attached to it.
// Transactions, alerts, documents and shared bills of the property go in
// the same database transaction, so a failure leaves nothing half-deleted.
func (s *RESTServer) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	if _, err := s.store.GetProperty(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "property not found")
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

	if err := tx.DeleteTransactionsByProperty(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteAlertsByProperty(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteDocumentsByProperty(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteEnergyBillsByProperty(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteWaterBillsByProperty(ctx, id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.DeleteProperty(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "property not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("propertyID", id.String()).Msg("Property deleted with related records")
	s.events.Publish("property", "deleted", map[string]string{"id": id.String()})

	w.WriteHeader(http.StatusNoContent)
}
