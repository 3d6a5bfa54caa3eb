package models

import "time"

// LoadState tracks a dashboard load cycle
type LoadState string

const (
	StateIdle            LoadState = "idle"
	StateLoading         LoadState = "loading"
	StateReady           LoadState = "ready"
	StatePartiallyFailed LoadState = "partially_failed"
	StateFullyFailed     LoadState = "fully_failed"
	StateAccessDenied    LoadState = "access_denied"
)

// Dashboard section names, used to report which sub-fetches failed
const (
	SectionStats        = "stats"
	SectionCarAnalytics = "car_analytics"
	SectionLeaderboard  = "leaderboard"
	SectionLocations    = "locations"
	SectionEcoTrends    = "eco_trends"
	SectionCars         = "cars"
	SectionServices     = "services"

	SectionUserStats      = "user_stats"
	SectionBookingSummary = "booking_summary"
	SectionBookingHistory = "booking_history"
)

// AdminDashboard is the merged admin view model. Each field is filled
// independently; a failed sub-fetch leaves its field empty and is listed in
// FailedSections instead of blanking out the rest.
type AdminDashboard struct {
	State          LoadState                `json:"state"`
	Generation     uint64                   `json:"generation"`
	LoadedAt       time.Time                `json:"loaded_at"`
	Stats          *DashboardStats          `json:"stats,omitempty"` // nil means the stats fetch failed or returned no data
	CarAnalytics   []CarAnalyticsEntry      `json:"car_analytics"`
	Leaderboard    []RankedLeaderboardEntry `json:"leaderboard"`
	Locations      []LocationAnalytics      `json:"locations"`
	EcoTrends      []EcoTrendPoint          `json:"eco_trends"`
	Cars           []Car                    `json:"cars"`
	Services       []Service                `json:"services"`
	FailedSections []string                 `json:"failed_sections,omitempty"`
}

// UserDashboard is the merged per-user view model
type UserDashboard struct {
	State          LoadState             `json:"state"`
	Generation     uint64                `json:"generation"`
	LoadedAt       time.Time             `json:"loaded_at"`
	Stats          *UserStats            `json:"stats,omitempty"`
	Summary        *BookingSummary       `json:"summary,omitempty"`
	History        []BookingHistoryEntry `json:"history"`
	EcoTrends      []EcoTrendPoint       `json:"eco_trends"`
	FailedSections []string              `json:"failed_sections,omitempty"`
}
