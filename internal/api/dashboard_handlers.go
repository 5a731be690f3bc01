package api

import (
	"net/http"

	"github.com/sismobi/rental-server/internal/dashboard"
)

// HandleDashboardSummary computes and returns the dashboard snapshot
func (s *RESTServer) HandleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	calculator := dashboard.NewCalculator(s.store, nil)

	summary, err := calculator.Summarize(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, summary)
}
