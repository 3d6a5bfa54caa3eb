package handlers

import (
	"net/http"
	"strconv"

	"github.com/ecodrive/ecodrive-api/internal/analytics"
	"github.com/ecodrive/ecodrive-api/internal/dashboard"
	"github.com/ecodrive/ecodrive-api/internal/middleware"
	"github.com/ecodrive/ecodrive-api/internal/models"
	"github.com/ecodrive/ecodrive-api/internal/services"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

// DashboardHandler handles dashboard related HTTP requests
type DashboardHandler struct {
	aggregator       *dashboard.Aggregator
	analyticsService *services.AnalyticsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(agg *dashboard.Aggregator, as *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{
		aggregator:       agg,
		analyticsService: as,
	}
}

// GetAdminDashboard returns the admin overview. The cached view model is
// served unless it has been invalidated or reload=true is passed.
func (h *DashboardHandler) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	// The cached view is only served after the caller's own admin status is
	// re-verified; a cache fill by one admin must never open the view to
	// other users.
	reload := r.URL.Query().Get("reload") == "true"
	if !reload {
		if vm, ok := h.aggregator.CurrentFor(r.Context(), userID); ok {
			utils.RespondWithJSON(w, http.StatusOK, vm)
			return
		}
	}

	vm := h.aggregator.Load(r.Context(), userID)
	if vm.State == models.StateAccessDenied {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, vm)
}

// GetUserDashboard returns the caller's personal dashboard
func (h *DashboardHandler) GetUserDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vm := h.aggregator.LoadUser(r.Context(), userID)
	utils.RespondWithJSON(w, http.StatusOK, vm)
}

// GetTrends serves one trend series selected by the series query parameter
func (h *DashboardHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order := analytics.ParseOrder(q.Get("order"))
	daysBack := intQuery(q.Get("days_back"), 30)
	monthsBack := intQuery(q.Get("months_back"), 12)

	var (
		payload interface{}
		err     error
	)
	switch q.Get("series") {
	case "", "eco":
		payload, err = h.analyticsService.EcoTrends(r.Context(), daysBack, order, q.Get("formatted") == "true")
	case "revenue":
		payload, err = h.analyticsService.RevenueTrends(r.Context(), monthsBack, order)
	case "growth":
		payload, err = h.analyticsService.GrowthTrends(r.Context(), monthsBack, order)
	case "utilization":
		payload, err = h.analyticsService.UtilizationTrends(r.Context(), daysBack, order)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid series. Must be 'eco', 'revenue', 'growth', or 'utilization'.")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve trends")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GetLeaderboard returns the ranked eco score standings
func (h *DashboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := h.analyticsService.Leaderboard(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leaderboard)
}

func intQuery(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
