package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
	"github.com/ecodrive/ecodrive-api/internal/services"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

// FleetHandler handles car and service related HTTP requests
type FleetHandler struct {
	fleetService *services.FleetService
	validator    *validator.Validate
}

// NewFleetHandler creates a new FleetHandler
func NewFleetHandler(fs *services.FleetService) *FleetHandler {
	return &FleetHandler{
		fleetService: fs,
		validator:    validator.New(),
	}
}

// GetCars handles listing the whole fleet
func (h *FleetHandler) GetCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleetService.ListCars(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve cars")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cars)
}

// GetCar handles fetching a single car
func (h *FleetHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	car, err := h.fleetService.GetCar(r.Context(), id)
	if err != nil {
		if errors.Is(err, gateway.ErrCarNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve car")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, car)
}

// CreateCar handles adding a new car to the fleet
func (h *FleetHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := h.fleetService.CreateCar(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create car")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, car)
}

// UpdateCar handles editing an existing car
func (h *FleetHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := h.fleetService.UpdateCar(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, gateway.ErrCarNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update car")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, car)
}

// DeleteCar handles removing a car from the fleet
func (h *FleetHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.fleetService.DeleteCar(r.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrCarNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete car")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Car deleted successfully"})
}

// SearchCars handles the filtered car search
func (h *FleetHandler) SearchCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := models.CarSearchRequest{
		SearchTerm:    q.Get("q"),
		Location:      q.Get("location"),
		CarType:       q.Get("type"),
		AvailableOnly: q.Get("available_only") == "true",
		Limit:         intQuery(q.Get("limit"), 20),
		Offset:        offsetQuery(q.Get("offset")),
	}

	if v := q.Get("min_emission_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid min_emission_rate")
			return
		}
		req.MinEmissionRate = &rate
	}
	if v := q.Get("max_emission_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid max_emission_rate")
			return
		}
		req.MaxEmissionRate = &rate
	}

	results, err := h.fleetService.SearchCars(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search cars")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// SearchCarsNearby handles the geographic car search
func (h *FleetHandler) SearchCarsNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	radiusKm := 10.0
	if v := q.Get("radius_km"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid radius_km")
			return
		}
		radiusKm = parsed
	}

	results, err := h.fleetService.SearchCarsNearby(r.Context(), lat, lng, radiusKm,
		q.Get("type"), q.Get("available_only") == "true", intQuery(q.Get("limit"), 20))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search nearby cars")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// EcoMatch handles car recommendations for a planned trip
func (h *FleetHandler) EcoMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	distanceKm := 10.0
	if v := q.Get("distance_km"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid distance_km")
			return
		}
		distanceKm = parsed
	}

	matches, err := h.fleetService.EcoMatch(r.Context(), q.Get("location"), q.Get("type"), distanceKm)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute eco match")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// GetServiceHistory handles fetching a car's service history
func (h *FleetHandler) GetServiceHistory(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["id"]
	q := r.URL.Query()

	history, err := h.fleetService.ServiceHistory(r.Context(), carID,
		intQuery(q.Get("limit"), 20), offsetQuery(q.Get("offset")))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve service history")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, history)
}

// PredictServiceNeeds handles the service prediction for a car
func (h *FleetHandler) PredictServiceNeeds(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["id"]

	prediction, err := h.fleetService.PredictServiceNeeds(r.Context(), carID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to predict service needs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prediction)
}

// GetServices handles listing service appointments
func (h *FleetHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.fleetService.ListServices(r.Context(), intQuery(r.URL.Query().Get("limit"), 20))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, services)
}

// GetService handles fetching a single service appointment
func (h *FleetHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	service, err := h.fleetService.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, gateway.ErrServiceNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve service")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, service)
}

// CreateService handles scheduling a service appointment
func (h *FleetHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	service, err := h.fleetService.CreateService(r.Context(), req)
	if err != nil {
		if errors.Is(err, gateway.ErrCarNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, service)
}

// UpdateService handles editing a service appointment
func (h *FleetHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	service, err := h.fleetService.UpdateService(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, gateway.ErrServiceNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, service)
}

// DeleteService handles removing a service appointment
func (h *FleetHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.fleetService.DeleteService(r.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrServiceNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}

func offsetQuery(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
