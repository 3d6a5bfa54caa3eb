package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/internal/analytics"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// ErrInsufficientCredits is returned when a redeem request exceeds the
// caller's balance
var ErrInsufficientCredits = errors.New("insufficient credits")

// UserService exposes the per-user gamification and booking surface
type UserService struct {
	gw  *gateway.Gateway
	log *logrus.Logger
}

// NewUserService creates a new UserService
func NewUserService(gw *gateway.Gateway, log *logrus.Logger) *UserService {
	return &UserService{gw: gw, log: log}
}

// Stats returns the user's eco score, tier and lifetime totals. The second
// return value is false when the backend has no data for this user.
func (s *UserService) Stats(ctx context.Context, userID string) (models.UserStats, bool, error) {
	rows, err := s.gw.UserStats(ctx, userID)
	if err != nil {
		return models.UserStats{}, false, err
	}
	stats, ok := analytics.NormalizeUserStats(rows)
	return stats, ok, nil
}

// BookingSummary returns the user's recent booking aggregate
func (s *UserService) BookingSummary(ctx context.Context, userID string, daysBack int) (models.BookingSummary, bool, error) {
	if daysBack <= 0 {
		daysBack = 30
	}
	rows, err := s.gw.BookingSummary(ctx, userID, daysBack)
	if err != nil {
		return models.BookingSummary{}, false, err
	}
	summary, ok := analytics.NormalizeBookingSummary(rows)
	return summary, ok, nil
}

// BookingHistory returns a page of the user's past bookings
func (s *UserService) BookingHistory(ctx context.Context, userID string, limit, offset int) ([]models.BookingHistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.gw.BookingHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return analytics.NormalizeBookingHistory(rows), nil
}

// Notifications returns the user's most recent notifications
func (s *UserService) Notifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.gw.UserNotifications(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(rows))
	for _, row := range rows {
		n := models.Notification{
			Type:      strVal(row.NotificationType),
			Message:   strVal(row.Message),
			RelatedID: strVal(row.RelatedID),
			IsRead:    boolVal(row.IsRead),
		}
		if row.CreatedAt != nil {
			n.CreatedAt = *row.CreatedAt
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// RedeemCredits spends credits from the user's balance. The procedure
// returns false when the balance cannot cover the request.
func (s *UserService) RedeemCredits(ctx context.Context, userID string, credits int) error {
	ok, err := s.gw.RedeemCredits(ctx, userID, credits)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientCredits
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "credits": credits}).Info("credits redeemed")
	return nil
}

// AwardCredits grants credits for completed eco savings and returns the new
// balance
func (s *UserService) AwardCredits(ctx context.Context, userID string, ecoSavings, tierMultiplier float64) (int64, error) {
	if tierMultiplier <= 0 {
		tierMultiplier = 1
	}
	balance, err := s.gw.AwardCredits(ctx, userID, ecoSavings, tierMultiplier)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "balance": balance}).Info("credits awarded")
	return balance, nil
}

// EcoSavings computes projected CO2 savings for a trip against the gas
// baseline
func (s *UserService) EcoSavings(ctx context.Context, emissionRate, distanceKm float64) (float64, error) {
	return s.gw.CalculateEcoSavings(ctx, emissionRate, distanceKm)
}

// UpdateEcoScore adds points to the user's eco score
func (s *UserService) UpdateEcoScore(ctx context.Context, userID string, additionalScore int) error {
	return s.gw.UpdateEcoScore(ctx, userID, additionalScore)
}
