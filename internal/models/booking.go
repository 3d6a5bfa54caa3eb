package models

import "time"

// UserStats is the get_user_stats snapshot for one user
type UserStats struct {
	CurrentEcoScore  int     `json:"current_eco_score"`
	CurrentCredits   int     `json:"current_credits"`
	CurrentTier      string  `json:"current_tier"`
	NextTier         string  `json:"next_tier"`
	PointsToNextTier int     `json:"points_to_next_tier"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalDistance    float64 `json:"total_distance"`
	TotalEcoSavings  float64 `json:"total_eco_savings"`
}

// BookingSummary aggregates a user's recent booking activity
type BookingSummary struct {
	TotalBookings     int64      `json:"total_bookings"`
	ActiveBookings    int64      `json:"active_bookings"`
	CompletedBookings int64      `json:"completed_bookings"`
	TotalDistance     float64    `json:"total_distance"`
	TotalEcoSavings   float64    `json:"total_eco_savings"`
	AverageTripLength float64    `json:"average_trip_length"`
	FavoriteCarType   string     `json:"favorite_car_type"`
	NextBookingDate   *time.Time `json:"next_booking_date,omitempty"`
}

// BookingHistoryEntry is one row of a user's booking history
type BookingHistoryEntry struct {
	BookingID     string    `json:"booking_id"`
	CarName       string    `json:"car_name"`
	CarType       CarType   `json:"car_type"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Distance      float64   `json:"distance"`
	EcoSavings    float64   `json:"eco_savings"`
	CreditsEarned int       `json:"credits_earned"`
	Status        string    `json:"status"`
}

// Notification is one user notification row
type Notification struct {
	Type      string    `json:"notification_type"`
	Message   string    `json:"message"`
	RelatedID string    `json:"related_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
