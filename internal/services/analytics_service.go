package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/internal/analytics"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// AnalyticsService serves the individual trend series and the leaderboard
// outside of a full dashboard aggregation
type AnalyticsService struct {
	gw       *gateway.Gateway
	fillGaps bool
	log      *logrus.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(gw *gateway.Gateway, fillGaps bool, log *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{gw: gw, fillGaps: fillGaps, log: log}
}

func (s *AnalyticsService) opts(order analytics.Order) analytics.BucketOptions {
	return analytics.BucketOptions{Order: order, FillGaps: s.fillGaps}
}

// EcoTrends returns the daily eco adoption series. When formatted is true
// the backend computes the percentage split; otherwise it is derived from
// the raw counts.
func (s *AnalyticsService) EcoTrends(ctx context.Context, daysBack int, order analytics.Order, formatted bool) ([]models.EcoTrendPoint, error) {
	if daysBack <= 0 {
		daysBack = 30
	}

	var (
		rows []gateway.EcoTrendRow
		err  error
	)
	if formatted {
		rows, err = s.gw.EcoTrendsFormatted(ctx, daysBack)
	} else {
		rows, err = s.gw.EcoTrends(ctx, daysBack)
	}
	if err != nil {
		return nil, err
	}
	return analytics.BucketEcoTrends(rows, s.opts(order)), nil
}

// RevenueTrends returns the monthly revenue series
func (s *AnalyticsService) RevenueTrends(ctx context.Context, monthsBack int, order analytics.Order) ([]models.RevenueTrendPoint, error) {
	if monthsBack <= 0 {
		monthsBack = 12
	}
	rows, err := s.gw.RevenueTrends(ctx, monthsBack)
	if err != nil {
		return nil, err
	}
	return analytics.BucketRevenueTrends(rows, s.opts(order)), nil
}

// GrowthTrends returns the monthly user growth series
func (s *AnalyticsService) GrowthTrends(ctx context.Context, monthsBack int, order analytics.Order) ([]models.GrowthTrendPoint, error) {
	if monthsBack <= 0 {
		monthsBack = 12
	}
	rows, err := s.gw.UserGrowthTrends(ctx, monthsBack)
	if err != nil {
		return nil, err
	}
	return analytics.BucketGrowthTrends(rows, s.opts(order)), nil
}

// UtilizationTrends returns the daily fleet utilization series
func (s *AnalyticsService) UtilizationTrends(ctx context.Context, daysBack int, order analytics.Order) ([]models.UtilizationTrendPoint, error) {
	if daysBack <= 0 {
		daysBack = 30
	}
	rows, err := s.gw.CarUtilizationTrends(ctx, daysBack)
	if err != nil {
		return nil, err
	}
	return analytics.BucketUtilizationTrends(rows, s.opts(order)), nil
}

// Leaderboard returns the ranked eco score standings
func (s *AnalyticsService) Leaderboard(ctx context.Context) ([]models.RankedLeaderboardEntry, error) {
	rows, err := s.gw.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.RankLeaderboard(analytics.NormalizeLeaderboard(rows)), nil
}
