package analytics

import (
	"sort"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// Normalizers convert raw nullable procedure rows into the canonical model.
// They are pure functions: same input, same output, no hidden state.

func strOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func i64Or(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func f64Or(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func boolOr(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

// clampPercent bounds a percentage to [0, 100]
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// NormalizeDashboardStats converts the 0-or-1-row stats result into the
// canonical snapshot. The second return value is false when the server
// returned no rows, which callers must treat as "no data yet" rather than a
// zero-filled stats object.
func NormalizeDashboardStats(rows []gateway.DashboardStatsRow) (models.DashboardStats, bool) {
	if len(rows) == 0 {
		return models.DashboardStats{}, false
	}
	r := rows[0]
	return models.DashboardStats{
		TotalUsers:          i64Or(r.TotalUsers),
		TotalCars:           i64Or(r.TotalCars),
		ActiveBookings:      i64Or(r.ActiveBookings),
		TotalBookings:       i64Or(r.TotalBookings),
		RevenueThisMonth:    f64Or(r.RevenueThisMonth),
		TotalEcoSavings:     f64Or(r.TotalEcoSavings),
		EVPercentage:        clampPercent(f64Or(r.EVPercentage)),
		MostPopularLocation: strOr(r.MostPopularLocation, models.UnknownLocation),
		AverageEcoScore:     f64Or(r.AverageEcoScore),
		TotalCreditsAwarded: i64Or(r.TotalCreditsAwarded),
	}, true
}

// NormalizeCarAnalytics converts raw car analytics rows, preserving server
// order. Utilization rates outside 0-100 are clamped so no consumer ever
// sees an out-of-range percentage.
func NormalizeCarAnalytics(rows []gateway.CarAnalyticsRow) []models.CarAnalyticsEntry {
	entries := make([]models.CarAnalyticsEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.CarAnalyticsEntry{
			CarID:                  r.CarID,
			CarName:                strOr(r.CarName, ""),
			CarType:                models.CarType(strOr(r.CarType, "")),
			TotalBookings:          i64Or(r.TotalBookings),
			TotalRevenue:           f64Or(r.TotalRevenue),
			UtilizationRate:        clampPercent(f64Or(r.UtilizationRate)),
			AverageBookingDistance: f64Or(r.AverageBookingDistance),
			TotalEcoSavings:        f64Or(r.TotalEcoSavings),
		})
	}
	return entries
}

// TopByRevenue returns the n highest-revenue entries as a new slice. The
// input order is a view concern and is left untouched.
func TopByRevenue(entries []models.CarAnalyticsEntry, n int) []models.CarAnalyticsEntry {
	sorted := make([]models.CarAnalyticsEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalRevenue > sorted[j].TotalRevenue
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// NormalizeLocationAnalytics converts raw location rows, preserving order
func NormalizeLocationAnalytics(rows []gateway.LocationAnalyticsRow) []models.LocationAnalytics {
	out := make([]models.LocationAnalytics, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LocationAnalytics{
			Location:            strOr(r.Location, models.UnknownLocation),
			TotalCars:           i64Or(r.TotalCars),
			AvailableCars:       i64Or(r.AvailableCars),
			TotalBookings:       i64Or(r.TotalBookings),
			AverageEmissionRate: f64Or(r.AverageEmissionRate),
			EcoScorePotential:   f64Or(r.EcoScorePotential),
		})
	}
	return out
}

// NormalizeLeaderboard converts raw leaderboard rows, preserving server
// order so that ranking stability is decided by the backend's ordering.
func NormalizeLeaderboard(rows []gateway.LeaderboardRow) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LeaderboardEntry{
			UserID:          r.UserID,
			UserName:        strOr(r.UserName, ""),
			UserEmail:       strOr(r.UserEmail, ""),
			EcoScore:        int(i64Or(r.EcoScore)),
			GreenTier:       strOr(r.GreenTier, ""),
			Credits:         int(i64Or(r.Credits)),
			TotalBookings:   i64Or(r.TotalBookings),
			TotalEcoSavings: f64Or(r.TotalEcoSavings),
		})
	}
	return out
}

// NormalizeUserStats converts the 0-or-1-row user stats result
func NormalizeUserStats(rows []gateway.UserStatsRow) (models.UserStats, bool) {
	if len(rows) == 0 {
		return models.UserStats{}, false
	}
	r := rows[0]
	return models.UserStats{
		CurrentEcoScore:  int(i64Or(r.CurrentEcoScore)),
		CurrentCredits:   int(i64Or(r.CurrentCredits)),
		CurrentTier:      strOr(r.CurrentTier, ""),
		NextTier:         strOr(r.NextTier, ""),
		PointsToNextTier: int(i64Or(r.PointsToNextTier)),
		TotalBookings:    i64Or(r.TotalBookings),
		TotalDistance:    f64Or(r.TotalDistance),
		TotalEcoSavings:  f64Or(r.TotalEcoSavings),
	}, true
}

// NormalizeBookingSummary converts the 0-or-1-row booking summary result
func NormalizeBookingSummary(rows []gateway.BookingSummaryRow) (models.BookingSummary, bool) {
	if len(rows) == 0 {
		return models.BookingSummary{}, false
	}
	r := rows[0]
	return models.BookingSummary{
		TotalBookings:     i64Or(r.TotalBookings),
		ActiveBookings:    i64Or(r.ActiveBookings),
		CompletedBookings: i64Or(r.CompletedBookings),
		TotalDistance:     f64Or(r.TotalDistance),
		TotalEcoSavings:   f64Or(r.TotalEcoSavings),
		AverageTripLength: f64Or(r.AverageTripLength),
		FavoriteCarType:   strOr(r.FavoriteCarType, ""),
		NextBookingDate:   r.NextBookingDate,
	}, true
}

// NormalizeBookingHistory converts raw booking history rows in server order
func NormalizeBookingHistory(rows []gateway.BookingHistoryRow) []models.BookingHistoryEntry {
	out := make([]models.BookingHistoryEntry, 0, len(rows))
	for _, r := range rows {
		e := models.BookingHistoryEntry{
			BookingID:     r.BookingID,
			CarName:       strOr(r.CarName, ""),
			CarType:       models.CarType(strOr(r.CarType, "")),
			Distance:      f64Or(r.Distance),
			EcoSavings:    f64Or(r.EcoSavings),
			CreditsEarned: int(i64Or(r.CreditsEarned)),
			Status:        strOr(r.Status, ""),
		}
		if r.StartDate != nil {
			e.StartDate = *r.StartDate
		}
		if r.EndDate != nil {
			e.EndDate = *r.EndDate
		}
		out = append(out, e)
	}
	return out
}
