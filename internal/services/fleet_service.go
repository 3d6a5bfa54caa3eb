package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/internal/dashboard"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// FleetService owns car and service appointment CRUD plus the customer-facing
// search surface. Every successful mutation invalidates the dashboard so the
// next read runs a fresh aggregation; nothing is patched in place.
type FleetService struct {
	gw  *gateway.Gateway
	agg *dashboard.Aggregator
	log *logrus.Logger
}

// NewFleetService creates a new FleetService
func NewFleetService(gw *gateway.Gateway, agg *dashboard.Aggregator, log *logrus.Logger) *FleetService {
	return &FleetService{gw: gw, agg: agg, log: log}
}

// ListCars returns the whole fleet
func (s *FleetService) ListCars(ctx context.Context) ([]models.Car, error) {
	return s.gw.ListCars(ctx)
}

// GetCar returns one car by ID
func (s *FleetService) GetCar(ctx context.Context, id string) (*models.Car, error) {
	return s.gw.GetCar(ctx, id)
}

// CreateCar adds a car to the fleet
func (s *FleetService) CreateCar(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	car := models.Car{
		Name:         req.Name,
		Type:         models.CarType(req.Type),
		EmissionRate: req.EmissionRate,
		Location:     req.Location,
		Available:    req.Available,
		ImageURL:     req.ImageURL,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	created, err := s.gw.InsertCar(ctx, car)
	if err != nil {
		return nil, err
	}

	s.agg.Invalidate()
	s.log.WithField("car_id", created.ID).Info("car created")
	return created, nil
}

// UpdateCar applies a partial update to a car. The current row is read first
// and absent request fields keep their stored values.
func (s *FleetService) UpdateCar(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	car, err := s.gw.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		car.Name = *req.Name
	}
	if req.Type != nil {
		car.Type = models.CarType(*req.Type)
	}
	if req.EmissionRate != nil {
		car.EmissionRate = *req.EmissionRate
	}
	if req.Location != nil {
		car.Location = *req.Location
	}
	if req.Available != nil {
		car.Available = *req.Available
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}
	if req.Latitude != nil {
		car.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		car.Longitude = req.Longitude
	}

	if err := s.gw.UpdateCar(ctx, id, *car); err != nil {
		return nil, err
	}

	s.agg.Invalidate()
	s.log.WithField("car_id", id).Info("car updated")
	return car, nil
}

// DeleteCar removes a car from the fleet
func (s *FleetService) DeleteCar(ctx context.Context, id string) error {
	if err := s.gw.DeleteCar(ctx, id); err != nil {
		return err
	}
	s.agg.Invalidate()
	s.log.WithField("car_id", id).Info("car deleted")
	return nil
}

// ListServices returns the most recent service appointments
func (s *FleetService) ListServices(ctx context.Context, limit int) ([]models.Service, error) {
	return s.gw.ListServices(ctx, limit)
}

// GetService returns one service appointment by ID
func (s *FleetService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.gw.GetService(ctx, id)
}

// CreateService schedules a service appointment. The referenced car must
// exist.
func (s *FleetService) CreateService(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error) {
	if _, err := s.gw.GetCar(ctx, req.CarID); err != nil {
		return nil, err
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_date: %w", err)
	}

	status := models.ServiceStatus(req.Status)
	if status == "" {
		status = models.ServiceScheduled
	}

	service := models.Service{
		CarID:           req.CarID,
		Type:            req.Type,
		ScheduledDate:   scheduled,
		Status:          status,
		DiscountApplied: req.DiscountApplied,
	}

	created, err := s.gw.InsertService(ctx, service)
	if err != nil {
		return nil, err
	}

	s.agg.Invalidate()
	s.log.WithFields(logrus.Fields{"service_id": created.ID, "car_id": created.CarID}).Info("service scheduled")
	return created, nil
}

// UpdateService applies a partial update to a service appointment
func (s *FleetService) UpdateService(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	service, err := s.gw.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		service.Type = *req.Type
	}
	if req.ScheduledDate != nil {
		scheduled, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_date: %w", err)
		}
		service.ScheduledDate = scheduled
	}
	if req.Status != nil {
		service.Status = models.ServiceStatus(*req.Status)
	}
	if req.DiscountApplied != nil {
		service.DiscountApplied = *req.DiscountApplied
	}

	if err := s.gw.UpdateService(ctx, id, *service); err != nil {
		return nil, err
	}

	s.agg.Invalidate()
	s.log.WithField("service_id", id).Info("service updated")
	return service, nil
}

// DeleteService cancels and removes a service appointment
func (s *FleetService) DeleteService(ctx context.Context, id string) error {
	if err := s.gw.DeleteService(ctx, id); err != nil {
		return err
	}
	s.agg.Invalidate()
	s.log.WithField("service_id", id).Info("service deleted")
	return nil
}

// SearchCars runs the filtered car search
func (s *FleetService) SearchCars(ctx context.Context, req models.CarSearchRequest) ([]models.CarSearchResult, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	rows, err := s.gw.SearchCars(ctx, optStr(req.SearchTerm), optStr(req.Location), optStr(req.CarType),
		req.MinEmissionRate, req.MaxEmissionRate, req.AvailableOnly, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]models.CarSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, searchResult(row))
	}
	return results, nil
}

// SearchCarsNearby finds available cars around a coordinate
func (s *FleetService) SearchCarsNearby(ctx context.Context, lat, lng, radiusKm float64, carType string, availableOnly bool, limit int) ([]models.NearbyCarResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if radiusKm <= 0 {
		radiusKm = 10
	}

	rows, err := s.gw.SearchCarsByLocation(ctx, lat, lng, radiusKm, optStr(carType), availableOnly, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.NearbyCarResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.NearbyCarResult{
			CarSearchResult: searchResult(row.CarSearchRow),
			Latitude:        f64Val(row.Latitude),
			Longitude:       f64Val(row.Longitude),
			DistanceKm:      f64Val(row.DistanceKm),
		})
	}
	return results, nil
}

// EcoMatch recommends cars for a planned trip, scored by projected savings
func (s *FleetService) EcoMatch(ctx context.Context, location, carType string, distanceKm float64) ([]models.EcoMatch, error) {
	rows, err := s.gw.EcoMatch(ctx, optStr(location), optStr(carType), distanceKm)
	if err != nil {
		return nil, err
	}

	matches := make([]models.EcoMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, models.EcoMatch{
			CarID:            row.CarID,
			CarName:          strVal(row.CarName),
			CarType:          models.CarType(strVal(row.CarType)),
			EmissionRate:     f64Val(row.EmissionRate),
			Location:         strVal(row.Location),
			Available:        boolVal(row.Available),
			ImageURL:         strVal(row.ImageURL),
			EcoSavings:       f64Val(row.EcoSavings),
			CreditsPotential: intVal(row.CreditsPotential),
		})
	}
	return matches, nil
}

// ServiceHistory returns a car's past and upcoming service appointments
func (s *FleetService) ServiceHistory(ctx context.Context, carID string, limit, offset int) ([]models.ServiceHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.gw.ServiceHistory(ctx, carID, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ServiceHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.ServiceHistoryEntry{
			ServiceID:        row.ServiceID,
			ServiceType:      strVal(row.ServiceType),
			Status:           strVal(row.Status),
			DiscountApplied:  boolVal(row.DiscountApplied),
			DaysUntilService: intVal(row.DaysUntilService),
		}
		if row.ScheduledDate != nil {
			entry.ScheduledDate = *row.ScheduledDate
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PredictServiceNeeds estimates whether a car is due for service
func (s *FleetService) PredictServiceNeeds(ctx context.Context, carID string) (*models.ServicePrediction, error) {
	rows, err := s.gw.PredictServiceNeeds(ctx, carID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.ServicePrediction{}, nil
	}

	row := rows[0]
	prediction := &models.ServicePrediction{
		NeedsService:         boolVal(row.NeedsService),
		ServiceType:          strVal(row.ServiceType),
		UrgencyLevel:         strVal(row.UrgencyLevel),
		DistanceSinceService: f64Val(row.DistanceSinceService),
	}
	if row.LastServiceDate != nil {
		prediction.LastServiceDate = row.LastServiceDate.Format("2006-01-02")
	}
	return prediction, nil
}

// optStr maps an absent filter onto NULL rather than the empty string
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func searchResult(row gateway.CarSearchRow) models.CarSearchResult {
	return models.CarSearchResult{
		CarID:        row.CarID,
		CarName:      strVal(row.CarName),
		CarType:      models.CarType(strVal(row.CarType)),
		EmissionRate: f64Val(row.EmissionRate),
		Location:     strVal(row.Location),
		Available:    boolVal(row.Available),
		ImageURL:     strVal(row.ImageURL),
		EcoRating:    f64Val(row.EcoRating),
	}
}
