package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecodrive/ecodrive-api/internal/dashboard"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/middleware"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

// adminOnlyFetcher serves one fixed stats row and grants admin to a single
// user.
type adminOnlyFetcher struct {
	adminID string
}

func (f *adminOnlyFetcher) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return userID == f.adminID, nil
}

func (f *adminOnlyFetcher) DashboardStats(ctx context.Context) ([]gateway.DashboardStatsRow, error) {
	return []gateway.DashboardStatsRow{{RevenueThisMonth: ptr(9999.0), TotalCars: ptr(int64(3))}}, nil
}

func (f *adminOnlyFetcher) CarAnalytics(ctx context.Context) ([]gateway.CarAnalyticsRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) Leaderboard(ctx context.Context) ([]gateway.LeaderboardRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) LocationAnalytics(ctx context.Context) ([]gateway.LocationAnalyticsRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) EcoTrends(ctx context.Context, daysBack int) ([]gateway.EcoTrendRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) ListCars(ctx context.Context) ([]models.Car, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) ListServices(ctx context.Context, limit int) ([]models.Service, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) UserStats(ctx context.Context, userID string) ([]gateway.UserStatsRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) BookingSummary(ctx context.Context, userID string, daysBack int) ([]gateway.BookingSummaryRow, error) {
	return nil, nil
}

func (f *adminOnlyFetcher) BookingHistory(ctx context.Context, userID string, limit, offset int) ([]gateway.BookingHistoryRow, error) {
	return nil, nil
}

func dashboardRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, userID)
	return req.WithContext(ctx)
}

func TestGetAdminDashboardCachedViewStaysAdminOnly(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	agg := dashboard.New(&adminOnlyFetcher{adminID: "alice"}, log, dashboard.Options{})
	h := NewDashboardHandler(agg, nil)

	// the admin loads the dashboard, which fills the cache
	rec := httptest.NewRecorder()
	h.GetAdminDashboard(rec, dashboardRequest("alice"))
	require.Equal(t, http.StatusOK, rec.Code)

	var vm models.AdminDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.NotNil(t, vm.Stats)
	assert.Equal(t, 9999.0, vm.Stats.RevenueThisMonth)

	// a non-admin hitting the same route must get denied, not the cache
	rec = httptest.NewRecorder()
	h.GetAdminDashboard(rec, dashboardRequest("mallory"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "9999")

	// the admin still gets the cached view afterwards
	rec = httptest.NewRecorder()
	h.GetAdminDashboard(rec, dashboardRequest("alice"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
