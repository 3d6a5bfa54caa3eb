package gateway

import "time"

// Raw procedure result rows. Every field the server may return as NULL is a
// pointer; the analytics normalizers substitute defaults before any other
// component sees the data.

// DashboardStatsRow is the raw get_dashboard_stats row
type DashboardStatsRow struct {
	TotalUsers          *int64   `db:"total_users"`
	TotalCars           *int64   `db:"total_cars"`
	ActiveBookings      *int64   `db:"active_bookings"`
	TotalBookings       *int64   `db:"total_bookings"`
	RevenueThisMonth    *float64 `db:"revenue_this_month"`
	TotalEcoSavings     *float64 `db:"total_eco_savings"`
	EVPercentage        *float64 `db:"ev_percentage"`
	MostPopularLocation *string  `db:"most_popular_location"`
	AverageEcoScore     *float64 `db:"average_eco_score"`
	TotalCreditsAwarded *int64   `db:"total_credits_awarded"`
}

// CarAnalyticsRow is the raw get_car_analytics row
type CarAnalyticsRow struct {
	CarID                  string   `db:"car_id"`
	CarName                *string  `db:"car_name"`
	CarType                *string  `db:"car_type"`
	TotalBookings          *int64   `db:"total_bookings"`
	TotalRevenue           *float64 `db:"total_revenue"`
	UtilizationRate        *float64 `db:"utilization_rate"`
	AverageBookingDistance *float64 `db:"average_booking_distance"`
	TotalEcoSavings        *float64 `db:"total_eco_savings"`
}

// LeaderboardRow is the raw get_leaderboard row
type LeaderboardRow struct {
	UserID          string   `db:"user_id"`
	UserName        *string  `db:"user_name"`
	UserEmail       *string  `db:"user_email"`
	EcoScore        *int64   `db:"eco_score"`
	GreenTier       *string  `db:"green_tier"`
	Credits         *int64   `db:"credits"`
	TotalBookings   *int64   `db:"total_bookings"`
	TotalEcoSavings *float64 `db:"total_eco_savings"`
}

// LocationAnalyticsRow is the raw get_location_analytics row
type LocationAnalyticsRow struct {
	Location            *string  `db:"location"`
	TotalCars           *int64   `db:"total_cars"`
	AvailableCars       *int64   `db:"available_cars"`
	TotalBookings       *int64   `db:"total_bookings"`
	AverageEmissionRate *float64 `db:"average_emission_rate"`
	EcoScorePotential   *float64 `db:"eco_score_potential"`
}

// EcoTrendRow is the raw get_eco_trends row. The formatted variant adds the
// percentage columns, absent from the plain one.
type EcoTrendRow struct {
	DateBucket          time.Time `db:"date_bucket"`
	EVBookings          *int64    `db:"ev_bookings"`
	HybridBookings      *int64    `db:"hybrid_bookings"`
	GasBookings         *int64    `db:"gas_bookings"`
	TotalBookings       *int64    `db:"total_bookings"`
	TotalEcoSavings     *float64  `db:"total_eco_savings"`
	AverageEmissionRate *float64  `db:"average_emission_rate"`
	EVPercentage        *float64  `db:"ev_percentage"`
	HybridPercentage    *float64  `db:"hybrid_percentage"`
	GasPercentage       *float64  `db:"gas_percentage"`
}

// RevenueTrendRow is the raw get_revenue_trends row
type RevenueTrendRow struct {
	MonthBucket         *string  `db:"month_bucket"`
	TotalRevenue        *float64 `db:"total_revenue"`
	TotalBookings       *int64   `db:"total_bookings"`
	AverageBookingValue *float64 `db:"average_booking_value"`
	EcoSavingsBonus     *float64 `db:"eco_savings_bonus"`
}

// GrowthTrendRow is the raw get_user_growth_trends row
type GrowthTrendRow struct {
	MonthBucket *string `db:"month_bucket"`
	NewUsers    *int64  `db:"new_users"`
	ActiveUsers *int64  `db:"active_users"`
	TotalUsers  *int64  `db:"total_users"`
}

// UtilizationTrendRow is the raw get_car_utilization_trends row
type UtilizationTrendRow struct {
	DateBucket        time.Time `db:"date_bucket"`
	TotalCars         *int64    `db:"total_cars"`
	BookedCars        *int64    `db:"booked_cars"`
	AvailableCars     *int64    `db:"available_cars"`
	UtilizationRate   *float64  `db:"utilization_rate"`
	EVUtilization     *float64  `db:"ev_utilization"`
	HybridUtilization *float64  `db:"hybrid_utilization"`
	GasUtilization    *float64  `db:"gas_utilization"`
}

// AuthUserRow is the raw authenticate_user row
type AuthUserRow struct {
	UserID    string  `db:"user_id"`
	UserName  *string `db:"user_name"`
	UserEmail *string `db:"user_email"`
	EcoScore  *int64  `db:"eco_score"`
	GreenTier *string `db:"green_tier"`
	Credits   *int64  `db:"credits"`
}

// UserStatsRow is the raw get_user_stats row
type UserStatsRow struct {
	CurrentEcoScore  *int64   `db:"current_eco_score"`
	CurrentCredits   *int64   `db:"current_credits"`
	CurrentTier      *string  `db:"current_tier"`
	NextTier         *string  `db:"next_tier"`
	PointsToNextTier *int64   `db:"points_to_next_tier"`
	TotalBookings    *int64   `db:"total_bookings"`
	TotalDistance    *float64 `db:"total_distance"`
	TotalEcoSavings  *float64 `db:"total_eco_savings"`
}

// BookingSummaryRow is the raw get_booking_summary row
type BookingSummaryRow struct {
	TotalBookings     *int64     `db:"total_bookings"`
	ActiveBookings    *int64     `db:"active_bookings"`
	CompletedBookings *int64     `db:"completed_bookings"`
	TotalDistance     *float64   `db:"total_distance"`
	TotalEcoSavings   *float64   `db:"total_eco_savings"`
	AverageTripLength *float64   `db:"average_trip_length"`
	FavoriteCarType   *string    `db:"favorite_car_type"`
	NextBookingDate   *time.Time `db:"next_booking_date"`
}

// BookingHistoryRow is the raw get_booking_history row
type BookingHistoryRow struct {
	BookingID     string     `db:"booking_id"`
	CarName       *string    `db:"car_name"`
	CarType       *string    `db:"car_type"`
	StartDate     *time.Time `db:"start_date"`
	EndDate       *time.Time `db:"end_date"`
	Distance      *float64   `db:"distance"`
	EcoSavings    *float64   `db:"eco_savings"`
	CreditsEarned *int64     `db:"credits_earned"`
	Status        *string    `db:"status"`
}

// CarSearchRow is the raw search_cars row
type CarSearchRow struct {
	CarID        string   `db:"car_id"`
	CarName      *string  `db:"car_name"`
	CarType      *string  `db:"car_type"`
	EmissionRate *float64 `db:"emission_rate"`
	Location     *string  `db:"location"`
	Available    *bool    `db:"available"`
	ImageURL     *string  `db:"image_url"`
	EcoRating    *float64 `db:"eco_rating"`
}

// NearbyCarRow is the raw search_cars_by_location row
type NearbyCarRow struct {
	CarSearchRow
	Latitude   *float64 `db:"latitude"`
	Longitude  *float64 `db:"longitude"`
	DistanceKm *float64 `db:"distance_km"`
}

// EcoMatchRow is the raw eco_match row
type EcoMatchRow struct {
	CarID            string   `db:"car_id"`
	CarName          *string  `db:"car_name"`
	CarType          *string  `db:"car_type"`
	EmissionRate     *float64 `db:"emission_rate"`
	Location         *string  `db:"location"`
	Available        *bool    `db:"available"`
	ImageURL         *string  `db:"image_url"`
	EcoSavings       *float64 `db:"eco_savings"`
	CreditsPotential *int64   `db:"credits_potential"`
}

// ServiceHistoryRow is the raw get_service_history row
type ServiceHistoryRow struct {
	ServiceID        string     `db:"service_id"`
	ServiceType      *string    `db:"service_type"`
	ScheduledDate    *time.Time `db:"scheduled_date"`
	Status           *string    `db:"status"`
	DiscountApplied  *bool      `db:"discount_applied"`
	DaysUntilService *int64     `db:"days_until_service"`
}

// ServicePredictionRow is the raw predict_service_needs row
type ServicePredictionRow struct {
	NeedsService         *bool      `db:"needs_service"`
	ServiceType          *string    `db:"service_type"`
	UrgencyLevel         *string    `db:"urgency_level"`
	DistanceSinceService *float64   `db:"distance_since_service"`
	LastServiceDate      *time.Time `db:"last_service_date"`
}

// NotificationRow is the raw get_user_notifications row
type NotificationRow struct {
	NotificationType *string    `db:"notification_type"`
	Message          *string    `db:"message"`
	RelatedID        *string    `db:"related_id"`
	IsRead           *bool      `db:"is_read"`
	CreatedAt        *time.Time `db:"created_at"`
}
