package models

// UnknownLocation is the sentinel used when the server has no popular
// location to report. It is deliberately not the empty string so consumers
// can tell "no value" apart from a blank field.
const UnknownLocation = "unknown"

// DashboardStats is the canonical one-row aggregate snapshot behind the
// admin overview. It is replaced wholesale on each refresh, never patched.
type DashboardStats struct {
	TotalUsers          int64   `json:"total_users"`
	TotalCars           int64   `json:"total_cars"`
	ActiveBookings      int64   `json:"active_bookings"`
	TotalBookings       int64   `json:"total_bookings"`
	RevenueThisMonth    float64 `json:"revenue_this_month"`
	TotalEcoSavings     float64 `json:"total_eco_savings"`
	EVPercentage        float64 `json:"ev_percentage"`
	MostPopularLocation string  `json:"most_popular_location"`
	AverageEcoScore     float64 `json:"average_eco_score"`
	TotalCreditsAwarded int64   `json:"total_credits_awarded"`
}

// CarAnalyticsEntry is per-car performance data, utilization clamped to 0-100
type CarAnalyticsEntry struct {
	CarID                  string  `json:"car_id"`
	CarName                string  `json:"car_name"`
	CarType                CarType `json:"car_type"`
	TotalBookings          int64   `json:"total_bookings"`
	TotalRevenue           float64 `json:"total_revenue"`
	UtilizationRate        float64 `json:"utilization_rate"`
	AverageBookingDistance float64 `json:"average_booking_distance"`
	TotalEcoSavings        float64 `json:"total_eco_savings"`
}

// LocationAnalytics is per-location fleet performance
type LocationAnalytics struct {
	Location            string  `json:"location"`
	TotalCars           int64   `json:"total_cars"`
	AvailableCars       int64   `json:"available_cars"`
	TotalBookings       int64   `json:"total_bookings"`
	AverageEmissionRate float64 `json:"average_emission_rate"`
	EcoScorePotential   float64 `json:"eco_score_potential"`
}

// LeaderboardEntry is one user's gamification standing. Rank is not part of
// the entry; it is assigned by position after ranking.
type LeaderboardEntry struct {
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	UserEmail       string  `json:"user_email"`
	EcoScore        int     `json:"eco_score"`
	GreenTier       string  `json:"green_tier"`
	Credits         int     `json:"credits"`
	TotalBookings   int64   `json:"total_bookings"`
	TotalEcoSavings float64 `json:"total_eco_savings"`
}

// RankedLeaderboardEntry pairs an entry with its 1-based rank
type RankedLeaderboardEntry struct {
	Rank int `json:"rank"`
	LeaderboardEntry
}
