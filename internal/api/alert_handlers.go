package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sismobi/rental-server/internal/alertgen"
	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/period"
	"github.com/sismobi/rental-server/internal/storage"
)

// alertRequest is the payload for create and update
type alertRequest struct {
	PropertyID *string    `json:"property_id"`
	TenantID   *string    `json:"tenant_id"`
	Title      string     `json:"title" validate:"required,min=2,max=200"`
	Message    string     `json:"message" validate:"required"`
	Type       string     `json:"type" validate:"required,oneof=rent_due|maintenance|contract_expiring|payment_overdue|high_energy_bill|high_water_bill"`
	Priority   string     `json:"priority" validate:"required,oneof=low|medium|high|critical"`
	Resolved   bool       `json:"resolved"`
	DueDate    *time.Time `json:"due_date"`
}

// HandleListAlerts lists alerts
func (s *RESTServer) HandleListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	var filters storage.AlertFilters

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
		alertType := models.AlertType(raw)
		filters.Type = &alertType
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := models.AlertPriority(raw)
		if !models.ValidPriority(priority) {
			s.respondError(w, http.StatusBadRequest, "invalid priority")
			return
		}
		filters.Priority = &priority
	}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved := raw == "true"
		filters.Resolved = &resolved
	}

	alerts, total, err := s.store.ListAlerts(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"total":  total,
	})
}

// HandleCreateAlert creates an alert
func (s *RESTServer) HandleCreateAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	alert := &models.Alert{
		Title:    req.Title,
		Message:  req.Message,
		Type:     models.AlertType(req.Type),
		Priority: models.AlertPriority(req.Priority),
		Resolved: req.Resolved,
		DueDate:  req.DueDate,
	}

	if req.PropertyID != nil && *req.PropertyID != "" {
		id, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid property_id")
			return
		}
		alert.PropertyID = &id
	}
	if req.TenantID != nil && *req.TenantID != "" {
		id, err := uuid.Parse(*req.TenantID)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid tenant_id")
			return
		}
		alert.TenantID = &id
	}

	if err := s.store.CreateAlert(ctx, alert); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("alert", "created", alert)
	s.respondJSON(w, http.StatusCreated, alert)
}

// HandleGetAlert gets an alert
func (s *RESTServer) HandleGetAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "alert not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, alert)
}

// HandleUpdateAlert updates an alert. Flipping resolved here also sets or
// clears resolved_at.
func (s *RESTServer) HandleUpdateAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "alert not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	alert.Title = req.Title
	alert.Message = req.Message
	alert.Type = models.AlertType(req.Type)
	alert.Priority = models.AlertPriority(req.Priority)
	alert.DueDate = req.DueDate

	if req.Resolved && !alert.Resolved {
		now := time.Now()
		alert.ResolvedAt = &now
	}
	if !req.Resolved {
		alert.ResolvedAt = nil
	}
	alert.Resolved = req.Resolved

	if err := s.store.UpdateAlert(ctx, alert); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("alert", "updated", alert)
	s.respondJSON(w, http.StatusOK, alert)
}

// HandleResolveAlert marks an alert resolved
func (s *RESTServer) HandleResolveAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "alert not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !alert.Resolved {
		now := time.Now()
		alert.Resolved = true
		alert.ResolvedAt = &now

		if err := s.store.UpdateAlert(ctx, alert); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		s.events.Publish("alert", "resolved", alert)
	}

	s.respondJSON(w, http.StatusOK, alert)
}

// HandleDeleteAlert deletes an alert
func (s *RESTServer) HandleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	if err := s.store.DeleteAlert(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "alert not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("alert", "deleted", map[string]string{"id": id.String()})
	w.WriteHeader(http.StatusNoContent)
}

// HandleGenerateAlerts runs the rent-due scan and persists the resulting
// alerts. Tenants that already have an unresolved alert of the same type
// created this month are skipped, so repeated runs stay idempotent.
func (s *RESTServer) HandleGenerateAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	generator := alertgen.NewGenerator(s.store, nil)

	candidates, err := generator.Generate(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	monthStart := period.MonthStart(time.Now())

	created := make([]*models.Alert, 0, len(candidates))
	skipped := 0

	for _, candidate := range candidates {
		if candidate.TenantID != nil {
			existing, err := s.store.FindUnresolvedAlert(ctx, *candidate.TenantID, candidate.Type, monthStart)
			if err != nil && err != storage.ErrNotFound {
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if existing != nil {
				skipped++
				continue
			}
		}

		if err := s.store.CreateAlert(ctx, candidate); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		s.events.Publish("alert", "created", candidate)
		created = append(created, candidate)
	}

	log.Info().
		Int("created", len(created)).
		Int("skipped", skipped).
		Msg("Rent alert generation finished")

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": len(created),
		"skipped": skipped,
		"alerts":  created,
	})
}
