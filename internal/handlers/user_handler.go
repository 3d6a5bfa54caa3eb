package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/ecodrive/ecodrive-api/internal/middleware"
	"github.com/ecodrive/ecodrive-api/internal/models"
	"github.com/ecodrive/ecodrive-api/internal/services"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

// UserHandler handles per-user gamification and booking HTTP requests
type UserHandler struct {
	userService *services.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(us *services.UserService) *UserHandler {
	return &UserHandler{
		userService: us,
		validator:   validator.New(),
	}
}

// GetStats handles fetching the caller's eco stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	stats, ok, err := h.userService.Stats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No stats available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GetBookingSummary handles fetching the caller's booking summary
func (h *UserHandler) GetBookingSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	summary, ok, err := h.userService.BookingSummary(r.Context(), userID, intQuery(r.URL.Query().Get("days_back"), 30))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve booking summary")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No booking summary available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// GetBookingHistory handles fetching a page of the caller's booking history
func (h *UserHandler) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	q := r.URL.Query()
	history, err := h.userService.BookingHistory(r.Context(), userID,
		intQuery(q.Get("limit"), 10), offsetQuery(q.Get("offset")))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve booking history")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, history)
}

// GetNotifications handles fetching the caller's notifications
func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	notifications, err := h.userService.Notifications(r.Context(), userID, intQuery(r.URL.Query().Get("limit"), 20))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

// RedeemCredits handles spending credits from the caller's balance
func (h *UserHandler) RedeemCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.RedeemCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.RedeemCredits(r.Context(), userID, req.Credits); err != nil {
		if errors.Is(err, services.ErrInsufficientCredits) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Insufficient credits")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to redeem credits")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Credits redeemed successfully"})
}

// AwardCredits grants credits to a user for completed eco savings
func (h *UserHandler) AwardCredits(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req models.AwardCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.userService.AwardCredits(r.Context(), userID, req.EcoSavings, req.TierMultiplier)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to award credits")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{"credits": balance})
}

// UpdateEcoScore adds points to a user's eco score
func (h *UserHandler) UpdateEcoScore(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var req models.UpdateEcoScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.UpdateEcoScore(r.Context(), userID, req.AdditionalScore); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update eco score")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Eco score updated"})
}

// GetEcoSavings computes projected savings for a trip
func (h *UserHandler) GetEcoSavings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	emissionRate, errRate := strconv.ParseFloat(q.Get("emission_rate"), 64)
	distanceKm, errDist := strconv.ParseFloat(q.Get("distance_km"), 64)
	if errRate != nil || errDist != nil || emissionRate < 0 || distanceKm < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "emission_rate and distance_km are required")
		return
	}

	savings, err := h.userService.EcoSavings(r.Context(), emissionRate, distanceKm)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate eco savings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]float64{"eco_savings": savings})
}
