package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/ecodrive/ecodrive-api/internal/analytics"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// Fetcher is the gateway surface the aggregator depends on
type Fetcher interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	DashboardStats(ctx context.Context) ([]gateway.DashboardStatsRow, error)
	CarAnalytics(ctx context.Context) ([]gateway.CarAnalyticsRow, error)
	Leaderboard(ctx context.Context) ([]gateway.LeaderboardRow, error)
	LocationAnalytics(ctx context.Context) ([]gateway.LocationAnalyticsRow, error)
	EcoTrends(ctx context.Context, daysBack int) ([]gateway.EcoTrendRow, error)
	ListCars(ctx context.Context) ([]models.Car, error)
	ListServices(ctx context.Context, limit int) ([]models.Service, error)
	UserStats(ctx context.Context, userID string) ([]gateway.UserStatsRow, error)
	BookingSummary(ctx context.Context, userID string, daysBack int) ([]gateway.BookingSummaryRow, error)
	BookingHistory(ctx context.Context, userID string, limit, offset int) ([]gateway.BookingHistoryRow, error)
}

// Options tunes the aggregation windows and the trend gap policy
type Options struct {
	EcoTrendDays  int
	ServiceLimit  int
	FillTrendGaps bool
}

// Aggregator orchestrates the dashboard sub-fetches and owns the current
// admin view model. Sub-fetches run concurrently and the join waits for all
// of them regardless of individual failure; a failed section is recorded by
// name instead of blanking out the rest.
type Aggregator struct {
	gw   Fetcher
	log  *logrus.Logger
	opts Options

	// generation is the stale-load guard for the admin view: a load that is
	// no longer the newest must not replace the current view model. User
	// dashboard loads never commit, so they count on their own generation
	// and cannot retire an in-flight admin load.
	generation     atomic.Uint64
	userGeneration atomic.Uint64
	group          singleflight.Group

	mu      sync.Mutex
	current *models.AdminDashboard
}

// New creates an Aggregator
func New(gw Fetcher, log *logrus.Logger, opts Options) *Aggregator {
	if opts.EcoTrendDays <= 0 {
		opts.EcoTrendDays = 30
	}
	if opts.ServiceLimit <= 0 {
		opts.ServiceLimit = 20
	}
	return &Aggregator{gw: gw, log: log, opts: opts}
}

// Current returns the latest committed admin view model, or nil when no load
// has settled since the last invalidation.
func (a *Aggregator) Current() *models.AdminDashboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// CurrentFor returns the committed admin view model only after re-verifying
// the caller's admin status. The view is shared across admins, so the gate
// must hold on every read, not just on the load that produced it. ok is
// false when there is no committed view or the check did not positively
// confirm admin access.
func (a *Aggregator) CurrentFor(ctx context.Context, userID string) (*models.AdminDashboard, bool) {
	vm := a.Current()
	if vm == nil {
		return nil, false
	}

	admin, err := a.gw.IsAdmin(ctx, userID)
	if err != nil || !admin {
		return nil, false
	}
	return vm, true
}

// Invalidate discards the current view model and retires in-flight loads.
// Mutations call this so the next read runs a fresh full aggregation.
func (a *Aggregator) Invalidate() {
	a.generation.Add(1)
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
}

// Load runs a full admin dashboard aggregation for the given user.
// Concurrent loads for the same user are collapsed into one. Fetch errors
// never escape: they are folded into the view model's state and failed
// section list.
func (a *Aggregator) Load(ctx context.Context, userID string) *models.AdminDashboard {
	v, _, _ := a.group.Do("admin:"+userID, func() (interface{}, error) {
		return a.load(ctx, userID), nil
	})
	return v.(*models.AdminDashboard)
}

var adminSections = []string{
	models.SectionStats,
	models.SectionCarAnalytics,
	models.SectionLeaderboard,
	models.SectionLocations,
	models.SectionEcoTrends,
	models.SectionCars,
	models.SectionServices,
}

func (a *Aggregator) load(ctx context.Context, userID string) *models.AdminDashboard {
	gen := a.generation.Add(1)
	vm := &models.AdminDashboard{State: models.StateLoading, Generation: gen}

	admin, err := a.gw.IsAdmin(ctx, userID)
	if err != nil {
		if gateway.IsAuthorization(err) {
			vm.State = models.StateAccessDenied
		} else {
			a.log.WithError(err).Warn("admin check failed")
			vm.State = models.StateFullyFailed
			vm.FailedSections = append([]string(nil), adminSections...)
		}
		vm.LoadedAt = time.Now()
		return vm
	}
	if !admin {
		vm.State = models.StateAccessDenied
		vm.LoadedAt = time.Now()
		return vm
	}

	var (
		statsRows []gateway.DashboardStatsRow
		carRows   []gateway.CarAnalyticsRow
		lbRows    []gateway.LeaderboardRow
		locRows   []gateway.LocationAnalyticsRow
		trendRows []gateway.EcoTrendRow
		cars      []models.Car
		services  []models.Service

		statsErr, carErr, lbErr, locErr, trendErr, carsErr, svcErr error
	)

	// All sub-fetches are read-only and independent; fire them together and
	// wait for every one to settle, never failing fast.
	var wg sync.WaitGroup
	wg.Add(7)
	go func() { defer wg.Done(); statsRows, statsErr = a.gw.DashboardStats(ctx) }()
	go func() { defer wg.Done(); carRows, carErr = a.gw.CarAnalytics(ctx) }()
	go func() { defer wg.Done(); lbRows, lbErr = a.gw.Leaderboard(ctx) }()
	go func() { defer wg.Done(); locRows, locErr = a.gw.LocationAnalytics(ctx) }()
	go func() { defer wg.Done(); trendRows, trendErr = a.gw.EcoTrends(ctx, a.opts.EcoTrendDays) }()
	go func() { defer wg.Done(); cars, carsErr = a.gw.ListCars(ctx) }()
	go func() { defer wg.Done(); services, svcErr = a.gw.ListServices(ctx, a.opts.ServiceLimit) }()
	wg.Wait()

	trendOpts := analytics.BucketOptions{Order: analytics.OrderAsc, FillGaps: a.opts.FillTrendGaps}

	fail := func(section string, err error) {
		a.log.WithError(err).WithField("section", section).Warn("dashboard sub-fetch failed")
		vm.FailedSections = append(vm.FailedSections, section)
	}

	if statsErr != nil {
		fail(models.SectionStats, statsErr)
	} else if stats, ok := analytics.NormalizeDashboardStats(statsRows); ok {
		vm.Stats = &stats
	}
	if carErr != nil {
		fail(models.SectionCarAnalytics, carErr)
	} else {
		vm.CarAnalytics = analytics.NormalizeCarAnalytics(carRows)
	}
	if lbErr != nil {
		fail(models.SectionLeaderboard, lbErr)
	} else {
		vm.Leaderboard = analytics.RankLeaderboard(analytics.NormalizeLeaderboard(lbRows))
	}
	if locErr != nil {
		fail(models.SectionLocations, locErr)
	} else {
		vm.Locations = analytics.NormalizeLocationAnalytics(locRows)
	}
	if trendErr != nil {
		fail(models.SectionEcoTrends, trendErr)
	} else {
		vm.EcoTrends = analytics.BucketEcoTrends(trendRows, trendOpts)
	}
	if carsErr != nil {
		fail(models.SectionCars, carsErr)
	} else {
		vm.Cars = cars
	}
	if svcErr != nil {
		fail(models.SectionServices, svcErr)
	} else {
		vm.Services = services
	}

	switch len(vm.FailedSections) {
	case 0:
		vm.State = models.StateReady
	case len(adminSections):
		vm.State = models.StateFullyFailed
	default:
		vm.State = models.StatePartiallyFailed
	}
	vm.LoadedAt = time.Now()

	// Commit only if no newer load or invalidation has started since;
	// a stale result must not overwrite the current view model.
	a.mu.Lock()
	if gen == a.generation.Load() {
		a.current = vm
	}
	a.mu.Unlock()

	return vm
}

var userSections = []string{
	models.SectionUserStats,
	models.SectionBookingSummary,
	models.SectionBookingHistory,
	models.SectionEcoTrends,
}

// LoadUser aggregates the per-user dashboard. It shares the admin load's
// partial-failure policy but is not gated on admin status and is not cached.
func (a *Aggregator) LoadUser(ctx context.Context, userID string) *models.UserDashboard {
	v, _, _ := a.group.Do("user:"+userID, func() (interface{}, error) {
		return a.loadUser(ctx, userID), nil
	})
	return v.(*models.UserDashboard)
}

func (a *Aggregator) loadUser(ctx context.Context, userID string) *models.UserDashboard {
	vm := &models.UserDashboard{State: models.StateLoading, Generation: a.userGeneration.Add(1)}

	var (
		statsRows   []gateway.UserStatsRow
		summaryRows []gateway.BookingSummaryRow
		historyRows []gateway.BookingHistoryRow
		trendRows   []gateway.EcoTrendRow

		statsErr, summaryErr, historyErr, trendErr error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); statsRows, statsErr = a.gw.UserStats(ctx, userID) }()
	go func() {
		defer wg.Done()
		summaryRows, summaryErr = a.gw.BookingSummary(ctx, userID, a.opts.EcoTrendDays)
	}()
	go func() { defer wg.Done(); historyRows, historyErr = a.gw.BookingHistory(ctx, userID, 10, 0) }()
	go func() { defer wg.Done(); trendRows, trendErr = a.gw.EcoTrends(ctx, a.opts.EcoTrendDays) }()
	wg.Wait()

	fail := func(section string, err error) {
		a.log.WithError(err).WithField("section", section).Warn("user dashboard sub-fetch failed")
		vm.FailedSections = append(vm.FailedSections, section)
	}

	if statsErr != nil {
		fail(models.SectionUserStats, statsErr)
	} else if stats, ok := analytics.NormalizeUserStats(statsRows); ok {
		vm.Stats = &stats
	}
	if summaryErr != nil {
		fail(models.SectionBookingSummary, summaryErr)
	} else if summary, ok := analytics.NormalizeBookingSummary(summaryRows); ok {
		vm.Summary = &summary
	}
	if historyErr != nil {
		fail(models.SectionBookingHistory, historyErr)
	} else {
		vm.History = analytics.NormalizeBookingHistory(historyRows)
	}
	if trendErr != nil {
		fail(models.SectionEcoTrends, trendErr)
	} else {
		vm.EcoTrends = analytics.BucketEcoTrends(trendRows, analytics.BucketOptions{Order: analytics.OrderAsc, FillGaps: a.opts.FillTrendGaps})
	}

	switch len(vm.FailedSections) {
	case 0:
		vm.State = models.StateReady
	case len(userSections):
		vm.State = models.StateFullyFailed
	default:
		vm.State = models.StatePartiallyFailed
	}
	vm.LoadedAt = time.Now()
	return vm
}
