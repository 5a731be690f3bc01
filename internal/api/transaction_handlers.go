package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// transactionRequest is the payload for create and update
type transactionRequest struct {
	PropertyID   string    `json:"property_id" validate:"required"`
	TenantID     *string   `json:"tenant_id"`
	Description  string    `json:"description" validate:"required"`
	Amount       float64   `json:"amount" validate:"required,min=0"`
	Type         string    `json:"type" validate:"required,oneof=income|expense"`
	Category     string    `json:"category" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	Recurring    bool      `json:"recurring"`
	RecurringDay *int      `json:"recurring_day" validate:"min=1,max=31"`
	Notes        string    `json:"notes"`
}

// HandleListTransactions lists transactions
func (s *RESTServer) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := parsePagination(r)

	var filters storage.TransactionFilters

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
		txType := models.TransactionType(raw)
		filters.Type = &txType
	}

	transactions, total, err := s.store.ListTransactions(ctx, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"total":        total,
	})
}

// HandleCreateTransaction creates a transaction
func (s *RESTServer) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property_id")
		return
	}

	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusBadRequest, "property does not exist")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var tenantID *uuid.UUID
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
		tenantID = &id
	}

	transaction := &models.Transaction{
		PropertyID:   propertyID,
		TenantID:     tenantID,
		Description:  req.Description,
		Amount:       req.Amount,
		Type:         models.TransactionType(req.Type),
		Category:     req.Category,
		Date:         req.Date,
		Recurring:    req.Recurring,
		RecurringDay: req.RecurringDay,
		Notes:        req.Notes,
	}

	if err := s.store.CreateTransaction(ctx, transaction); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("transaction", "created", transaction)
	s.respondJSON(w, http.StatusCreated, transaction)
}

// HandleGetTransaction gets a transaction
func (s *RESTServer) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	transaction, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, transaction)
}

// HandleUpdateTransaction updates a transaction
func (s *RESTServer) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	transaction, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transaction.Description = req.Description
	transaction.Amount = req.Amount
	transaction.Type = models.TransactionType(req.Type)
	transaction.Category = req.Category
	transaction.Date = req.Date
	transaction.Recurring = req.Recurring
	transaction.RecurringDay = req.RecurringDay
	transaction.Notes = req.Notes

	if err := s.store.UpdateTransaction(ctx, transaction); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("transaction", "updated", transaction)
	s.respondJSON(w, http.StatusOK, transaction)
}

// HandleDeleteTransaction deletes a transaction
func (s *RESTServer) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("transaction", "deleted", map[string]string{"id": id.String()})
	w.WriteHeader(http.StatusNoContent)
}
