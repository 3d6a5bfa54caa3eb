package models

import "time"

// CarType classifies a car's drivetrain
type CarType string

const (
	CarTypeEV     CarType = "EV"
	CarTypeHybrid CarType = "Hybrid"
	CarTypeGas    CarType = "Gas"
)

// ServiceStatus represents the status of a scheduled service
type ServiceStatus string

const (
	ServiceScheduled ServiceStatus = "scheduled"
	ServiceCompleted ServiceStatus = "completed"
	ServiceCancelled ServiceStatus = "cancelled"
)

// Car represents a rentable car in the fleet inventory
type Car struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Type         CarType  `json:"type" db:"type"`
	EmissionRate float64  `json:"emission_rate" db:"emission_rate"` // g CO2/km
	Location     string   `json:"location" db:"location"`
	Available    bool     `json:"available" db:"available"`
	ImageURL     string   `json:"image_url" db:"image_url"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Service represents a maintenance appointment for a car
type Service struct {
	ID              string        `json:"id" db:"id"`
	CarID           string        `json:"car_id" db:"car_id"`
	Type            string        `json:"type" db:"type"`
	ScheduledDate   time.Time     `json:"scheduled_date" db:"scheduled_date"`
	Status          ServiceStatus `json:"status" db:"status"`
	DiscountApplied bool          `json:"discount_applied" db:"discount_applied"`
}

// CreateCarRequest is for adding a new car to the fleet
type CreateCarRequest struct {
	Name         string   `json:"name" validate:"required,min=2"`
	Type         string   `json:"type" validate:"required,oneof=EV Hybrid Gas"`
	EmissionRate float64  `json:"emission_rate" validate:"gte=0"`
	Location     string   `json:"location" validate:"required"`
	Available    bool     `json:"available"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateCarRequest is for editing an existing car
type UpdateCarRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Type         *string  `json:"type,omitempty" validate:"omitempty,oneof=EV Hybrid Gas"`
	EmissionRate *float64 `json:"emission_rate,omitempty" validate:"omitempty,gte=0"`
	Location     *string  `json:"location,omitempty"`
	Available    *bool    `json:"available,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// CreateServiceRequest schedules a service for a car
type CreateServiceRequest struct {
	CarID           string `json:"car_id" validate:"required"`
	Type            string `json:"type" validate:"required"`
	ScheduledDate   string `json:"scheduled_date" validate:"required"` // RFC 3339
	Status          string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	DiscountApplied bool   `json:"discount_applied"`
}

// UpdateServiceRequest edits an existing service appointment
type UpdateServiceRequest struct {
	Type            *string `json:"type,omitempty"`
	ScheduledDate   *string `json:"scheduled_date,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	DiscountApplied *bool   `json:"discount_applied,omitempty"`
}

// CarSearchRequest holds the search_cars filter surface
type CarSearchRequest struct {
	SearchTerm      string
	Location        string
	CarType         string
	MinEmissionRate *float64
	MaxEmissionRate *float64
	AvailableOnly   bool
	Limit           int
	Offset          int
}

// CarSearchResult is one row returned by search_cars
type CarSearchResult struct {
	CarID        string  `json:"car_id"`
	CarName      string  `json:"car_name"`
	CarType      CarType `json:"car_type"`
	EmissionRate float64 `json:"emission_rate"`
	Location     string  `json:"location"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"image_url"`
	EcoRating    float64 `json:"eco_rating"`
}

// NearbyCarResult is one row returned by search_cars_by_location
type NearbyCarResult struct {
	CarSearchResult
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// EcoMatch is a car recommendation scored for a planned trip
type EcoMatch struct {
	CarID            string  `json:"car_id"`
	CarName          string  `json:"car_name"`
	CarType          CarType `json:"car_type"`
	EmissionRate     float64 `json:"emission_rate"`
	Location         string  `json:"location"`
	Available        bool    `json:"available"`
	ImageURL         string  `json:"image_url"`
	EcoSavings       float64 `json:"eco_savings"`
	CreditsPotential int     `json:"credits_potential"`
}

// ServiceHistoryEntry is one row of a car's service history
type ServiceHistoryEntry struct {
	ServiceID        string    `json:"service_id"`
	ServiceType      string    `json:"service_type"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	Status           string    `json:"status"`
	DiscountApplied  bool      `json:"discount_applied"`
	DaysUntilService int       `json:"days_until_service"`
}

// ServicePrediction is the predict_service_needs result for a car
type ServicePrediction struct {
	NeedsService         bool    `json:"needs_service"`
	ServiceType          string  `json:"service_type"`
	UrgencyLevel         string  `json:"urgency_level"`
	DistanceSinceService float64 `json:"distance_since_service"`
	LastServiceDate      string  `json:"last_service_date"`
}
