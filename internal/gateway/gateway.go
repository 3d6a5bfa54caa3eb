package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// procedures is the allow-list of callable backend functions mapped to their
// named parameters, in call order. A name outside this list never reaches
// the wire.
var procedures = map[string][]string{
	"is_admin":                   {"user_id"},
	"get_dashboard_stats":        {},
	"get_car_analytics":          {},
	"get_leaderboard":            {},
	"get_location_analytics":     {},
	"get_eco_trends":             {"days_back"},
	"get_eco_trends_formatted":   {"days_back"},
	"get_revenue_trends":         {"months_back"},
	"get_user_growth_trends":     {"months_back"},
	"get_car_utilization_trends": {"days_back"},
	"get_booking_history":        {"user_id_param", "limit_count", "offset_count"},
	"get_booking_summary":        {"user_id_param", "days_back"},
	"get_user_stats":             {"user_id_param"},
	"get_user_notifications":     {"user_id_param", "limit_count"},
	"get_service_history":        {"car_id_param", "limit_count", "offset_count"},
	"predict_service_needs":      {"car_id_param"},
	"search_cars":                {"search_term", "location_param", "car_type_param", "min_emission_rate", "max_emission_rate", "available_only", "limit_count", "offset_count"},
	"search_cars_by_location":    {"lat_param", "lng_param", "radius_km", "car_type_param", "available_only", "limit_count"},
	"eco_match":                  {"location_param", "car_type_param", "distance_param"},
	"authenticate_user":          {"email_param", "password_param"},
	"create_user_with_auth":      {"user_email", "user_name", "user_password"},
	"award_credits":              {"eco_savings", "tier_multiplier", "user_id_param"},
	"redeem_credits":             {"credits_to_redeem", "user_id_param"},
	"calculate_eco_savings":      {"car_emission_rate", "distance_km"},
	"update_eco_score":           {"additional_score", "user_id_param"},
}

// Gateway is the typed client for the hosted database's stored procedures
// and the cars/services tables. It performs no caching and no retries.
type Gateway struct {
	db DB
}

// New creates a Gateway over a database handle
func New(db DB) *Gateway {
	return &Gateway{db: db}
}

// buildCall renders the SELECT statement for an allow-listed procedure using
// named-argument notation, so call order never depends on the function's
// declared parameter order.
func buildCall(proc string, params []string) string {
	if len(params) == 0 {
		return "SELECT * FROM " + proc + "()"
	}
	args := make([]string, len(params))
	for i, name := range params {
		args[i] = fmt.Sprintf("%s => $%d", name, i+1)
	}
	return "SELECT * FROM " + proc + "(" + strings.Join(args, ", ") + ")"
}

// checkProc validates the procedure name and argument count before dialing out
func checkProc(proc string, argc int) ([]string, *Error) {
	params, ok := procedures[proc]
	if !ok {
		return nil, &Error{Kind: KindBadParams, Proc: proc, Err: fmt.Errorf("unknown procedure %q", proc)}
	}
	if argc != len(params) {
		return nil, &Error{Kind: KindBadParams, Proc: proc, Err: fmt.Errorf("procedure %q takes %d arguments, got %d", proc, len(params), argc)}
	}
	return params, nil
}

// callRows invokes a set-returning procedure and scans every row into T
func callRows[T any](ctx context.Context, g *Gateway, proc string, args ...any) ([]T, error) {
	params, perr := checkProc(proc, len(args))
	if perr != nil {
		return nil, perr
	}
	rows, err := g.db.Query(ctx, buildCall(proc, params), args...)
	if err != nil {
		return nil, wrapErr(proc, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, wrapErr(proc, err)
	}
	return out, nil
}

// callScalar invokes a procedure returning a single scalar value
func callScalar[T any](ctx context.Context, g *Gateway, proc string, args ...any) (T, error) {
	var zero T
	params, perr := checkProc(proc, len(args))
	if perr != nil {
		return zero, perr
	}
	rows, err := g.db.Query(ctx, buildCall(proc, params), args...)
	if err != nil {
		return zero, wrapErr(proc, err)
	}
	out, err := pgx.CollectOneRow(rows, pgx.RowTo[T])
	if err != nil {
		return zero, wrapErr(proc, err)
	}
	return out, nil
}

// IsAdmin asks the backend whether the user has admin privileges
func (g *Gateway) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return callScalar[bool](ctx, g, "is_admin", userID)
}

// DashboardStats fetches the one-row aggregate stats table (0 or 1 row)
func (g *Gateway) DashboardStats(ctx context.Context) ([]DashboardStatsRow, error) {
	return callRows[DashboardStatsRow](ctx, g, "get_dashboard_stats")
}

// CarAnalytics fetches per-car performance rows
func (g *Gateway) CarAnalytics(ctx context.Context) ([]CarAnalyticsRow, error) {
	return callRows[CarAnalyticsRow](ctx, g, "get_car_analytics")
}

// Leaderboard fetches per-user gamification rows in server order
func (g *Gateway) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	return callRows[LeaderboardRow](ctx, g, "get_leaderboard")
}

// LocationAnalytics fetches per-location fleet rows
func (g *Gateway) LocationAnalytics(ctx context.Context) ([]LocationAnalyticsRow, error) {
	return callRows[LocationAnalyticsRow](ctx, g, "get_location_analytics")
}

// EcoTrends fetches day-bucketed booking mix rows, one per active day
func (g *Gateway) EcoTrends(ctx context.Context, daysBack int) ([]EcoTrendRow, error) {
	return callRows[EcoTrendRow](ctx, g, "get_eco_trends", daysBack)
}

// EcoTrendsFormatted is the server-side variant that includes percentages
func (g *Gateway) EcoTrendsFormatted(ctx context.Context, daysBack int) ([]EcoTrendRow, error) {
	return callRows[EcoTrendRow](ctx, g, "get_eco_trends_formatted", daysBack)
}

// RevenueTrends fetches month-bucketed revenue rows
func (g *Gateway) RevenueTrends(ctx context.Context, monthsBack int) ([]RevenueTrendRow, error) {
	return callRows[RevenueTrendRow](ctx, g, "get_revenue_trends", monthsBack)
}

// UserGrowthTrends fetches month-bucketed user count rows
func (g *Gateway) UserGrowthTrends(ctx context.Context, monthsBack int) ([]GrowthTrendRow, error) {
	return callRows[GrowthTrendRow](ctx, g, "get_user_growth_trends", monthsBack)
}

// CarUtilizationTrends fetches day-bucketed utilization rows
func (g *Gateway) CarUtilizationTrends(ctx context.Context, daysBack int) ([]UtilizationTrendRow, error) {
	return callRows[UtilizationTrendRow](ctx, g, "get_car_utilization_trends", daysBack)
}

// UserStats fetches a user's gamification snapshot (0 or 1 row)
func (g *Gateway) UserStats(ctx context.Context, userID string) ([]UserStatsRow, error) {
	return callRows[UserStatsRow](ctx, g, "get_user_stats", userID)
}

// BookingSummary fetches a user's recent booking aggregate (0 or 1 row)
func (g *Gateway) BookingSummary(ctx context.Context, userID string, daysBack int) ([]BookingSummaryRow, error) {
	return callRows[BookingSummaryRow](ctx, g, "get_booking_summary", userID, daysBack)
}

// BookingHistory fetches a page of a user's booking rows
func (g *Gateway) BookingHistory(ctx context.Context, userID string, limit, offset int) ([]BookingHistoryRow, error) {
	return callRows[BookingHistoryRow](ctx, g, "get_booking_history", userID, limit, offset)
}

// UserNotifications fetches a user's most recent notifications
func (g *Gateway) UserNotifications(ctx context.Context, userID string, limit int) ([]NotificationRow, error) {
	return callRows[NotificationRow](ctx, g, "get_user_notifications", userID, limit)
}

// ServiceHistory fetches a page of a car's service history
func (g *Gateway) ServiceHistory(ctx context.Context, carID string, limit, offset int) ([]ServiceHistoryRow, error) {
	return callRows[ServiceHistoryRow](ctx, g, "get_service_history", carID, limit, offset)
}

// PredictServiceNeeds fetches the service prediction for a car
func (g *Gateway) PredictServiceNeeds(ctx context.Context, carID string) ([]ServicePredictionRow, error) {
	return callRows[ServicePredictionRow](ctx, g, "predict_service_needs", carID)
}

// SearchCars fetches cars matching the filter surface. Absent filters are
// nil pointers and reach the backend as NULL; the procedures treat NULL as
// "no filter", not as a match against the empty string.
func (g *Gateway) SearchCars(ctx context.Context, searchTerm, location, carType *string, minEmission, maxEmission *float64, availableOnly bool, limit, offset int) ([]CarSearchRow, error) {
	return callRows[CarSearchRow](ctx, g, "search_cars", searchTerm, location, carType, minEmission, maxEmission, availableOnly, limit, offset)
}

// SearchCarsByLocation fetches cars within a radius of a coordinate
func (g *Gateway) SearchCarsByLocation(ctx context.Context, lat, lng, radiusKm float64, carType *string, availableOnly bool, limit int) ([]NearbyCarRow, error) {
	return callRows[NearbyCarRow](ctx, g, "search_cars_by_location", lat, lng, radiusKm, carType, availableOnly, limit)
}

// EcoMatch fetches car recommendations for a planned trip
func (g *Gateway) EcoMatch(ctx context.Context, location, carType *string, distanceKm float64) ([]EcoMatchRow, error) {
	return callRows[EcoMatchRow](ctx, g, "eco_match", location, carType, distanceKm)
}

// AuthenticateUser verifies credentials against the backend (0 or 1 row).
// Password verification happens inside the database.
func (g *Gateway) AuthenticateUser(ctx context.Context, email, password string) ([]AuthUserRow, error) {
	return callRows[AuthUserRow](ctx, g, "authenticate_user", email, password)
}

// CreateUserWithAuth registers a user and returns the new user id
func (g *Gateway) CreateUserWithAuth(ctx context.Context, email, name, password string) (string, error) {
	return callScalar[string](ctx, g, "create_user_with_auth", email, name, password)
}

// AwardCredits credits a user for eco savings and returns the new balance
func (g *Gateway) AwardCredits(ctx context.Context, userID string, ecoSavings, tierMultiplier float64) (int64, error) {
	return callScalar[int64](ctx, g, "award_credits", ecoSavings, tierMultiplier, userID)
}

// RedeemCredits spends credits from a user's balance
func (g *Gateway) RedeemCredits(ctx context.Context, userID string, credits int) (bool, error) {
	return callScalar[bool](ctx, g, "redeem_credits", credits, userID)
}

// CalculateEcoSavings computes the CO2 avoided for a trip
func (g *Gateway) CalculateEcoSavings(ctx context.Context, emissionRate, distanceKm float64) (float64, error) {
	return callScalar[float64](ctx, g, "calculate_eco_savings", emissionRate, distanceKm)
}

// UpdateEcoScore adds points to a user's eco score
func (g *Gateway) UpdateEcoScore(ctx context.Context, userID string, additionalScore int) error {
	_, err := callScalar[any](ctx, g, "update_eco_score", additionalScore, userID)
	return err
}
