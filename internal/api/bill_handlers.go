package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sismobi/rental-server/internal/models"
	"github.com/sismobi/rental-server/internal/storage"
)

// billRequest is the shared payload for energy and water bills. Usage holds
// kWh for energy bills and liters for water bills.
type billRequest struct {
	PropertyID  string             `json:"property_id" validate:"required"`
	GroupID     string             `json:"group_id" validate:"required"`
	Month       int                `json:"month" validate:"required,min=1,max=12"`
	Year        int                `json:"year" validate:"required,min=2000"`
	TotalAmount float64            `json:"total_amount" validate:"required,min=0"`
	Usage       float64            `json:"usage" validate:"min=0"`
	ReadingDate time.Time          `json:"reading_date" validate:"required"`
	DueDate     time.Time          `json:"due_date" validate:"required"`
	Allocations models.Allocations `json:"tenant_allocations"`
}

// parseBillFilters reads the shared bill list query parameters
func (s *RESTServer) parseBillFilters(w http.ResponseWriter, r *http.Request) (storage.BillFilters, bool) {
	var filters storage.BillFilters

	propertyID, err := queryUUID(r, "property_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property_id")
		return filters, false
	}
	filters.PropertyID = propertyID
	filters.GroupID = r.URL.Query().Get("group_id")

	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.Month = &v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.Year = &v
		}
	}

	return filters, true
}

// resolveBillProperty validates the property reference of a bill payload
func (s *RESTServer) resolveBillProperty(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	propertyID, err := uuid.Parse(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid property_id")
		return uuid.Nil, false
	}

	if _, err := s.store.GetProperty(r.Context(), propertyID); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusBadRequest, "property does not exist")
			return uuid.Nil, false
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return uuid.Nil, false
	}

	return propertyID, true
}

// ========== Energy bill handlers ==========

// HandleListEnergyBills lists energy bills
func (s *RESTServer) HandleListEnergyBills(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	filters, ok := s.parseBillFilters(w, r)
	if !ok {
		return
	}

	bills, total, err := s.store.ListEnergyBills(r.Context(), filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"bills": bills,
		"total": total,
	})
}

// HandleCreateEnergyBill creates an energy bill
func (s *RESTServer) HandleCreateEnergyBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	propertyID, ok := s.resolveBillProperty(w, r, req.PropertyID)
	if !ok {
		return
	}

	bill := &models.EnergyBill{
		PropertyID:        propertyID,
		GroupID:           req.GroupID,
		Month:             req.Month,
		Year:              req.Year,
		TotalAmount:       req.TotalAmount,
		TotalKWh:          req.Usage,
		ReadingDate:       req.ReadingDate,
		DueDate:           req.DueDate,
		TenantAllocations: req.Allocations,
	}

	if err := s.store.CreateEnergyBill(r.Context(), bill); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "energy bill already exists for this period")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("energy_bill", "created", bill)
	s.respondJSON(w, http.StatusCreated, bill)
}

// HandleGetEnergyBill gets an energy bill
func (s *RESTServer) HandleGetEnergyBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	bill, err := s.store.GetEnergyBill(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "energy bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, bill)
}

// HandleUpdateEnergyBill updates an energy bill
func (s *RESTServer) HandleUpdateEnergyBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bill, err := s.store.GetEnergyBill(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "energy bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bill.TotalAmount = req.TotalAmount
	bill.TotalKWh = req.Usage
	bill.ReadingDate = req.ReadingDate
	bill.DueDate = req.DueDate
	bill.TenantAllocations = req.Allocations

	if err := s.store.UpdateEnergyBill(r.Context(), bill); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("energy_bill", "updated", bill)
	s.respondJSON(w, http.StatusOK, bill)
}

// HandleDeleteEnergyBill deletes an energy bill
func (s *RESTServer) HandleDeleteEnergyBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	if err := s.store.DeleteEnergyBill(r.Context(), id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "energy bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("energy_bill", "deleted", map[string]string{"id": id.String()})
	w.WriteHeader(http.StatusNoContent)
}

// ========== Water bill handlers ==========

// HandleListWaterBills lists water bills
func (s *RESTServer) HandleListWaterBills(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	filters, ok := s.parseBillFilters(w, r)
	if !ok {
		return
	}

	bills, total, err := s.store.ListWaterBills(r.Context(), filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"bills": bills,
		"total": total,
	})
}

// HandleCreateWaterBill creates a water bill
func (s *RESTServer) HandleCreateWaterBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	propertyID, ok := s.resolveBillProperty(w, r, req.PropertyID)
	if !ok {
		return
	}

	bill := &models.WaterBill{
		PropertyID:        propertyID,
		GroupID:           req.GroupID,
		Month:             req.Month,
		Year:              req.Year,
		TotalAmount:       req.TotalAmount,
		TotalLiters:       req.Usage,
		ReadingDate:       req.ReadingDate,
		DueDate:           req.DueDate,
		TenantAllocations: req.Allocations,
	}

	if err := s.store.CreateWaterBill(r.Context(), bill); err != nil {
		if err == storage.ErrDuplicateKey {
			s.respondError(w, http.StatusConflict, "water bill already exists for this period")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("water_bill", "created", bill)
	s.respondJSON(w, http.StatusCreated, bill)
}

// HandleGetWaterBill gets a water bill
func (s *RESTServer) HandleGetWaterBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	bill, err := s.store.GetWaterBill(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "water bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, bill)
}

// HandleUpdateWaterBill updates a water bill
func (s *RESTServer) HandleUpdateWaterBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bill, err := s.store.GetWaterBill(r.Context(), id)
	if err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "water bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bill.TotalAmount = req.TotalAmount
	bill.TotalLiters = req.Usage
	bill.ReadingDate = req.ReadingDate
	bill.DueDate = req.DueDate
	bill.TenantAllocations = req.Allocations

	if err := s.store.UpdateWaterBill(r.Context(), bill); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("water_bill", "updated", bill)
	s.respondJSON(w, http.StatusOK, bill)
}

// HandleDeleteWaterBill deletes a water bill
func (s *RESTServer) HandleDeleteWaterBill(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}

	if err := s.store.DeleteWaterBill(r.Context(), id); err != nil {
		if err == storage.ErrNotFound {
			s.respondError(w, http.StatusNotFound, "water bill not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.events.Publish("water_bill", "deleted", map[string]string{"id": id.String()})
	w.WriteHeader(http.StatusNoContent)
}
