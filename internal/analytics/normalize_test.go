package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeDashboardStats_ZeroRowsIsNoData(t *testing.T) {
	stats, ok := NormalizeDashboardStats(nil)
	assert.False(t, ok, "zero rows must be a no-data marker, not a zero-filled object")
	assert.Equal(t, models.DashboardStats{}, stats)
}

func TestNormalizeDashboardStats_NullFieldsDefault(t *testing.T) {
	stats, ok := NormalizeDashboardStats([]gateway.DashboardStatsRow{{
		TotalUsers: ptr(int64(12)),
		// every other field null
	}})
	require.True(t, ok)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.TotalCars)
	assert.Equal(t, float64(0), stats.RevenueThisMonth)
	assert.Equal(t, models.UnknownLocation, stats.MostPopularLocation)
}

func TestNormalizeDashboardStats_EmptyLocationGetsSentinel(t *testing.T) {
	stats, ok := NormalizeDashboardStats([]gateway.DashboardStatsRow{{
		MostPopularLocation: ptr(""),
	}})
	require.True(t, ok)
	assert.Equal(t, models.UnknownLocation, stats.MostPopularLocation)
}

func TestNormalizeDashboardStats_Idempotent(t *testing.T) {
	row := gateway.DashboardStatsRow{
		TotalUsers:          ptr(int64(5)),
		TotalCars:           ptr(int64(7)),
		ActiveBookings:      ptr(int64(2)),
		TotalBookings:       ptr(int64(40)),
		RevenueThisMonth:    ptr(1234.5),
		TotalEcoSavings:     ptr(87.2),
		EVPercentage:        ptr(42.0),
		MostPopularLocation: ptr("San Francisco"),
		AverageEcoScore:     ptr(110.0),
		TotalCreditsAwarded: ptr(int64(900)),
	}

	first, ok := NormalizeDashboardStats([]gateway.DashboardStatsRow{row})
	require.True(t, ok)

	// Re-normalizing the normalized output treated as a raw row must be a
	// fixed point.
	again := gateway.DashboardStatsRow{
		TotalUsers:          &first.TotalUsers,
		TotalCars:           &first.TotalCars,
		ActiveBookings:      &first.ActiveBookings,
		TotalBookings:       &first.TotalBookings,
		RevenueThisMonth:    &first.RevenueThisMonth,
		TotalEcoSavings:     &first.TotalEcoSavings,
		EVPercentage:        &first.EVPercentage,
		MostPopularLocation: &first.MostPopularLocation,
		AverageEcoScore:     &first.AverageEcoScore,
		TotalCreditsAwarded: &first.TotalCreditsAwarded,
	}
	second, ok := NormalizeDashboardStats([]gateway.DashboardStatsRow{again})
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestNormalizeCarAnalytics_ClampsUtilization(t *testing.T) {
	entries := NormalizeCarAnalytics([]gateway.CarAnalyticsRow{
		{CarID: "a", UtilizationRate: ptr(150.0)},
		{CarID: "b", UtilizationRate: ptr(-10.0)},
		{CarID: "c", UtilizationRate: ptr(73.5)},
		{CarID: "d"}, // null rate
	})
	require.Len(t, entries, 4)
	assert.Equal(t, 100.0, entries[0].UtilizationRate)
	assert.Equal(t, 0.0, entries[1].UtilizationRate)
	assert.Equal(t, 73.5, entries[2].UtilizationRate)
	assert.Equal(t, 0.0, entries[3].UtilizationRate)
}

func TestNormalizeCarAnalytics_PreservesServerOrder(t *testing.T) {
	entries := NormalizeCarAnalytics([]gateway.CarAnalyticsRow{
		{CarID: "z"}, {CarID: "a"}, {CarID: "m"},
	})
	ids := []string{entries[0].CarID, entries[1].CarID, entries[2].CarID}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
}

func TestTopByRevenue(t *testing.T) {
	entries := []models.CarAnalyticsEntry{
		{CarID: "low", TotalRevenue: 10},
		{CarID: "high", TotalRevenue: 500},
		{CarID: "mid", TotalRevenue: 99},
	}
	top := TopByRevenue(entries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].CarID)
	assert.Equal(t, "mid", top[1].CarID)

	// input untouched
	assert.Equal(t, "low", entries[0].CarID)
}

func TestNormalizeUserStats_NoData(t *testing.T) {
	_, ok := NormalizeUserStats(nil)
	assert.False(t, ok)
}

func TestNormalizeBookingSummary_Defaults(t *testing.T) {
	summary, ok := NormalizeBookingSummary([]gateway.BookingSummaryRow{{
		TotalBookings: ptr(int64(3)),
	}})
	require.True(t, ok)
	assert.Equal(t, int64(3), summary.TotalBookings)
	assert.Equal(t, "", summary.FavoriteCarType)
	assert.Nil(t, summary.NextBookingDate)
}
