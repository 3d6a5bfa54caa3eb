package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

type fakeFetcher struct {
	admin       bool
	adminByUser map[string]bool // takes precedence over admin when set
	adminErr    error

	statsErr    error
	carErr      error
	lbErr       error
	locErr      error
	trendErr    error
	carsErr     error
	svcErr      error
	userErr     error
	summaryErr  error
	historyErr  error
	statsCalled chan struct{} // closed when DashboardStats is entered, if set
	statsGate   chan struct{} // DashboardStats blocks on this, if set
}

func (f *fakeFetcher) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if f.adminByUser != nil {
		return f.adminByUser[userID], f.adminErr
	}
	return f.admin, f.adminErr
}

func (f *fakeFetcher) DashboardStats(ctx context.Context) ([]gateway.DashboardStatsRow, error) {
	if f.statsCalled != nil {
		close(f.statsCalled)
	}
	if f.statsGate != nil {
		<-f.statsGate
	}
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return []gateway.DashboardStatsRow{{
		TotalUsers:       ptr(int64(40)),
		TotalCars:        ptr(int64(12)),
		ActiveBookings:   ptr(int64(3)),
		RevenueThisMonth: ptr(245.5),
		TotalEcoSavings:  ptr(88.0),
	}}, nil
}

func (f *fakeFetcher) CarAnalytics(ctx context.Context) ([]gateway.CarAnalyticsRow, error) {
	if f.carErr != nil {
		return nil, f.carErr
	}
	return []gateway.CarAnalyticsRow{{CarID: "c1", CarName: ptr("Leaf"), TotalRevenue: ptr(100.0)}}, nil
}

func (f *fakeFetcher) Leaderboard(ctx context.Context) ([]gateway.LeaderboardRow, error) {
	if f.lbErr != nil {
		return nil, f.lbErr
	}
	return []gateway.LeaderboardRow{
		{UserID: "a", UserName: ptr("A"), EcoScore: ptr(int64(100))},
		{UserID: "b", UserName: ptr("B"), EcoScore: ptr(int64(90))},
	}, nil
}

func (f *fakeFetcher) LocationAnalytics(ctx context.Context) ([]gateway.LocationAnalyticsRow, error) {
	if f.locErr != nil {
		return nil, f.locErr
	}
	return []gateway.LocationAnalyticsRow{{Location: ptr("Lagos"), TotalCars: ptr(int64(4))}}, nil
}

func (f *fakeFetcher) EcoTrends(ctx context.Context, daysBack int) ([]gateway.EcoTrendRow, error) {
	if f.trendErr != nil {
		return nil, f.trendErr
	}
	return []gateway.EcoTrendRow{
		{DateBucket: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), TotalBookings: ptr(int64(4)), EVBookings: ptr(int64(2))},
	}, nil
}

func (f *fakeFetcher) ListCars(ctx context.Context) ([]models.Car, error) {
	if f.carsErr != nil {
		return nil, f.carsErr
	}
	return []models.Car{{ID: "c1", Name: "Leaf"}}, nil
}

func (f *fakeFetcher) ListServices(ctx context.Context, limit int) ([]models.Service, error) {
	if f.svcErr != nil {
		return nil, f.svcErr
	}
	return []models.Service{{ID: "s1", CarID: "c1"}}, nil
}

func (f *fakeFetcher) UserStats(ctx context.Context, userID string) ([]gateway.UserStatsRow, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return []gateway.UserStatsRow{{TotalBookings: ptr(int64(5)), CurrentEcoScore: ptr(int64(72))}}, nil
}

func (f *fakeFetcher) BookingSummary(ctx context.Context, userID string, daysBack int) ([]gateway.BookingSummaryRow, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return []gateway.BookingSummaryRow{{ActiveBookings: ptr(int64(1))}}, nil
}

func (f *fakeFetcher) BookingHistory(ctx context.Context, userID string, limit, offset int) ([]gateway.BookingHistoryRow, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return []gateway.BookingHistoryRow{{BookingID: "b1", CarName: ptr("Leaf")}}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAggregator(f *fakeFetcher) *Aggregator {
	return New(f, quietLogger(), Options{EcoTrendDays: 30, ServiceLimit: 20})
}

func TestLoadAllSectionsSucceed(t *testing.T) {
	agg := newTestAggregator(&fakeFetcher{admin: true})

	vm := agg.Load(context.Background(), "admin-1")
	require.Equal(t, models.StateReady, vm.State)
	assert.Empty(t, vm.FailedSections)
	require.NotNil(t, vm.Stats)
	assert.Equal(t, int64(12), vm.Stats.TotalCars)
	assert.Len(t, vm.CarAnalytics, 1)
	require.Len(t, vm.Leaderboard, 2)
	assert.Equal(t, 1, vm.Leaderboard[0].Rank)
	assert.Len(t, vm.Locations, 1)
	assert.Len(t, vm.EcoTrends, 1)
	assert.Len(t, vm.Cars, 1)
	assert.Len(t, vm.Services, 1)
	assert.False(t, vm.LoadedAt.IsZero())

	require.NotNil(t, agg.Current())
	assert.Equal(t, vm.Generation, agg.Current().Generation)
}

func TestLoadOneSectionFailsOthersSurvive(t *testing.T) {
	f := &fakeFetcher{admin: true, lbErr: errors.New("leaderboard proc timed out")}
	agg := newTestAggregator(f)

	vm := agg.Load(context.Background(), "admin-1")
	assert.Equal(t, models.StatePartiallyFailed, vm.State)
	assert.Equal(t, []string{models.SectionLeaderboard}, vm.FailedSections)
	assert.Empty(t, vm.Leaderboard)

	// the other sections still carry data
	require.NotNil(t, vm.Stats)
	assert.Len(t, vm.CarAnalytics, 1)
	assert.Len(t, vm.Locations, 1)
	assert.Len(t, vm.EcoTrends, 1)
	assert.Len(t, vm.Cars, 1)
	assert.Len(t, vm.Services, 1)
}

func TestLoadAllSectionsFail(t *testing.T) {
	boom := errors.New("db down")
	f := &fakeFetcher{
		admin: true, statsErr: boom, carErr: boom, lbErr: boom,
		locErr: boom, trendErr: boom, carsErr: boom, svcErr: boom,
	}
	agg := newTestAggregator(f)

	vm := agg.Load(context.Background(), "admin-1")
	assert.Equal(t, models.StateFullyFailed, vm.State)
	assert.Len(t, vm.FailedSections, 7)
	assert.Nil(t, vm.Stats)
}

func TestLoadNonAdminDenied(t *testing.T) {
	agg := newTestAggregator(&fakeFetcher{admin: false})

	vm := agg.Load(context.Background(), "user-1")
	assert.Equal(t, models.StateAccessDenied, vm.State)
	assert.Empty(t, vm.FailedSections)
	assert.Nil(t, vm.Stats)
	assert.Nil(t, agg.Current(), "denied load must not become the current view")
}

func TestLoadAdminCheckAuthorizationError(t *testing.T) {
	f := &fakeFetcher{adminErr: &gateway.Error{Kind: gateway.KindAuthorization, Proc: "is_admin", Err: errors.New("permission denied")}}
	agg := newTestAggregator(f)

	vm := agg.Load(context.Background(), "user-1")
	assert.Equal(t, models.StateAccessDenied, vm.State)
}

func TestLoadAdminCheckTransientError(t *testing.T) {
	f := &fakeFetcher{adminErr: &gateway.Error{Kind: gateway.KindTransient, Proc: "is_admin", Err: errors.New("timeout")}}
	agg := newTestAggregator(f)

	vm := agg.Load(context.Background(), "user-1")
	assert.Equal(t, models.StateFullyFailed, vm.State)
	assert.Len(t, vm.FailedSections, 7)
}

func TestInvalidateRetiresInFlightLoad(t *testing.T) {
	f := &fakeFetcher{
		admin:       true,
		statsCalled: make(chan struct{}),
		statsGate:   make(chan struct{}),
	}
	agg := newTestAggregator(f)

	done := make(chan *models.AdminDashboard, 1)
	go func() { done <- agg.Load(context.Background(), "admin-1") }()

	<-f.statsCalled
	agg.Invalidate()
	close(f.statsGate)

	vm := <-done
	assert.Equal(t, models.StateReady, vm.State, "the load itself still settles")
	assert.Nil(t, agg.Current(), "a retired load must not commit")
}

func TestCurrentForDeniesNonAdmin(t *testing.T) {
	agg := newTestAggregator(&fakeFetcher{adminByUser: map[string]bool{"alice": true}})

	vm := agg.Load(context.Background(), "alice")
	require.Equal(t, models.StateReady, vm.State)
	require.NotNil(t, agg.Current())

	// another admin-confirmed caller gets the committed view
	got, ok := agg.CurrentFor(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, vm.Generation, got.Generation)

	// a non-admin must not see the cached view one admin filled
	got, ok = agg.CurrentFor(context.Background(), "mallory")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCurrentForAdminCheckError(t *testing.T) {
	f := &fakeFetcher{admin: true}
	agg := newTestAggregator(f)
	agg.Load(context.Background(), "alice")
	require.NotNil(t, agg.Current())

	f.adminErr = errors.New("timeout")
	_, ok := agg.CurrentFor(context.Background(), "alice")
	assert.False(t, ok, "an inconclusive admin check must not serve the view")
}

func TestLoadUserDoesNotRetireAdminLoad(t *testing.T) {
	f := &fakeFetcher{
		admin:       true,
		statsCalled: make(chan struct{}),
		statsGate:   make(chan struct{}),
	}
	agg := newTestAggregator(f)

	done := make(chan *models.AdminDashboard, 1)
	go func() { done <- agg.Load(context.Background(), "alice") }()

	<-f.statsCalled
	userVM := agg.LoadUser(context.Background(), "user-1")
	assert.Equal(t, models.StateReady, userVM.State)
	close(f.statsGate)

	vm := <-done
	assert.Equal(t, models.StateReady, vm.State)
	require.NotNil(t, agg.Current(), "a user dashboard load must not retire the admin commit")
	assert.Equal(t, vm.Generation, agg.Current().Generation)
}

func TestInvalidateClearsCurrent(t *testing.T) {
	agg := newTestAggregator(&fakeFetcher{admin: true})
	agg.Load(context.Background(), "admin-1")
	require.NotNil(t, agg.Current())

	agg.Invalidate()
	assert.Nil(t, agg.Current())
}

func TestLoadUserPartialFailure(t *testing.T) {
	f := &fakeFetcher{summaryErr: errors.New("summary proc failed")}
	agg := newTestAggregator(f)

	vm := agg.LoadUser(context.Background(), "user-1")
	assert.Equal(t, models.StatePartiallyFailed, vm.State)
	assert.Equal(t, []string{models.SectionBookingSummary}, vm.FailedSections)
	assert.Nil(t, vm.Summary)
	require.NotNil(t, vm.Stats)
	assert.Equal(t, int64(5), vm.Stats.TotalBookings)
	assert.Len(t, vm.History, 1)
	assert.Len(t, vm.EcoTrends, 1)
}

func TestLoadUserReady(t *testing.T) {
	agg := newTestAggregator(&fakeFetcher{})

	vm := agg.LoadUser(context.Background(), "user-1")
	assert.Equal(t, models.StateReady, vm.State)
	require.NotNil(t, vm.Summary)
	assert.Equal(t, int64(1), vm.Summary.ActiveBookings)
}
