package models

// EcoTrendPoint is one day bucket of booking mix and savings. The percentage
// fields are derived locally from the booking counts when the server omits
// them; a bucket with zero bookings has all percentages at 0.
type EcoTrendPoint struct {
	DateBucket          string  `json:"date_bucket"`
	EVBookings          int64   `json:"ev_bookings"`
	HybridBookings      int64   `json:"hybrid_bookings"`
	GasBookings         int64   `json:"gas_bookings"`
	TotalBookings       int64   `json:"total_bookings"`
	TotalEcoSavings     float64 `json:"total_eco_savings"`
	AverageEmissionRate float64 `json:"average_emission_rate"`
	EVPercentage        float64 `json:"ev_percentage"`
	HybridPercentage    float64 `json:"hybrid_percentage"`
	GasPercentage       float64 `json:"gas_percentage"`
}

// BucketKey returns the day bucket key
func (p EcoTrendPoint) BucketKey() string { return p.DateBucket }

// RevenueTrendPoint is one month bucket of revenue figures
type RevenueTrendPoint struct {
	MonthBucket         string  `json:"month_bucket"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalBookings       int64   `json:"total_bookings"`
	AverageBookingValue float64 `json:"average_booking_value"`
	EcoSavingsBonus     float64 `json:"eco_savings_bonus"`
}

// BucketKey returns the month bucket key
func (p RevenueTrendPoint) BucketKey() string { return p.MonthBucket }

// GrowthTrendPoint is one month bucket of user counts
type GrowthTrendPoint struct {
	MonthBucket string `json:"month_bucket"`
	NewUsers    int64  `json:"new_users"`
	ActiveUsers int64  `json:"active_users"`
	TotalUsers  int64  `json:"total_users"`
}

// BucketKey returns the month bucket key
func (p GrowthTrendPoint) BucketKey() string { return p.MonthBucket }

// UtilizationTrendPoint is one day bucket of fleet utilization
type UtilizationTrendPoint struct {
	DateBucket        string  `json:"date_bucket"`
	TotalCars         int64   `json:"total_cars"`
	BookedCars        int64   `json:"booked_cars"`
	AvailableCars     int64   `json:"available_cars"`
	UtilizationRate   float64 `json:"utilization_rate"`
	EVUtilization     float64 `json:"ev_utilization"`
	HybridUtilization float64 `json:"hybrid_utilization"`
	GasUtilization    float64 `json:"gas_utilization"`
}

// BucketKey returns the day bucket key
func (p UtilizationTrendPoint) BucketKey() string { return p.DateBucket }
