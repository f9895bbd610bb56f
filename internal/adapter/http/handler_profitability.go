package http

import (
	"net/http"
	"strconv"

	"github.com/driveline/driveline/internal/usecase"

	"github.com/gorilla/mux"
)

// ProfitabilityHandler handles HTTP requests for profitability reporting
type ProfitabilityHandler struct {
	profitabilityUseCase *usecase.ProfitabilityUseCase
}

// NewProfitabilityHandler creates a new profitability handler
func NewProfitabilityHandler(profitabilityUseCase *usecase.ProfitabilityUseCase) *ProfitabilityHandler {
	return &ProfitabilityHandler{
		profitabilityUseCase: profitabilityUseCase,
	}
}

// RegisterRoutes registers profitability routes
func (h *ProfitabilityHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/admin/profitability/metrics", auth.Require(h.GetMetrics)).Methods("GET")
	router.HandleFunc("/api/admin/profitability/date-range", auth.Require(h.GetDateRangeMetrics)).Methods("GET")
	router.HandleFunc("/api/admin/profitability/audit-trail", auth.Require(h.GetAuditTrail)).Methods("GET")
}

// GetMetrics handles the profitability dashboard snapshot. Sparse or
// empty inventory returns zeroed metrics, never an error.
func (h *ProfitabilityHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := h.profitabilityUseCase.GetMetrics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"metrics":        report.Metrics,
		"profitByMake":   report.ProfitByMake,
		"recentActivity": report.RecentActivity,
	})
}

// GetDateRangeMetrics handles sales totals over an inclusive date window
func (h *ProfitabilityHandler) GetDateRangeMetrics(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	metrics, err := h.profitabilityUseCase.GetDateRangeMetrics(r.Context(), startDate, endDate)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"metrics": metrics,
	})
}

// GetAuditTrail handles paging through the inventory audit trail
func (h *ProfitabilityHandler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	query := usecase.AuditTrailQuery{
		CarID:   r.URL.Query().Get("carId"),
		Action:  r.URL.Query().Get("action"),
		AdminID: r.URL.Query().Get("adminId"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			query.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			query.Limit = limit
		}
	}

	page, err := h.profitabilityUseCase.GetAuditTrail(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"logs":       page.Logs,
		"pagination": page.Pagination,
	})
}
