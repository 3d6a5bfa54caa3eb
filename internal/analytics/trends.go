package analytics

import (
	"sort"
	"time"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/models"
)

// Order is the requested chronological direction of a trend series
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const dayLayout = "2006-01-02"

// BucketOptions controls trend bucketing. FillGaps inserts zero-metric
// points for absent day buckets between the first and last observed dates;
// it is off by default because a day with no bookings is simply absent from
// the server's result, and charts are expected to show the sparse series.
type BucketOptions struct {
	Order    Order
	FillGaps bool
}

// TrendPoint is any point keyed by an ISO date or month bucket. Lexicographic
// order of keys equals chronological order for both layouts.
type TrendPoint interface {
	BucketKey() string
}

// sortTrends stable-sorts points ascending by bucket key, in place
func sortTrends[T TrendPoint](points []T) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].BucketKey() < points[j].BucketKey()
	})
}

// dedupeTrends collapses duplicate bucket keys, keeping the first occurrence.
// A well-formed series has none; this keeps the no-duplicates invariant for
// downstream consumers regardless.
func dedupeTrends[T TrendPoint](points []T) []T {
	seen := make(map[string]struct{}, len(points))
	out := points[:0]
	for _, p := range points {
		if _, dup := seen[p.BucketKey()]; dup {
			continue
		}
		seen[p.BucketKey()] = struct{}{}
		out = append(out, p)
	}
	return out
}

func reverse[T any](points []T) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// fillDailyGaps inserts zero points for missing day buckets between the
// first and last observed dates. Points must be sorted ascending.
func fillDailyGaps[T TrendPoint](points []T, zero func(key string) T) []T {
	if len(points) < 2 {
		return points
	}
	first, err := time.Parse(dayLayout, points[0].BucketKey())
	if err != nil {
		return points
	}
	last, err := time.Parse(dayLayout, points[len(points)-1].BucketKey())
	if err != nil {
		return points
	}

	present := make(map[string]struct{}, len(points))
	for _, p := range points {
		present[p.BucketKey()] = struct{}{}
	}

	filled := points
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		if _, ok := present[key]; !ok {
			filled = append(filled, zero(key))
		}
	}
	sortTrends(filled)
	return filled
}

// finish applies the shared bucketing pipeline: dedupe, sort ascending,
// optionally fill day gaps, then flip for descending order.
func finish[T TrendPoint](points []T, opts BucketOptions, zero func(key string) T) []T {
	points = dedupeTrends(points)
	sortTrends(points)
	if opts.FillGaps && zero != nil {
		points = fillDailyGaps(points, zero)
	}
	if opts.Order == OrderDesc {
		reverse(points)
	}
	return points
}

// percentOf derives a share of total as a percentage; a zero total yields 0,
// never NaN or Inf.
func percentOf(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// BucketEcoTrends orders day-bucketed eco trend rows in the requested
// direction and derives the booking-mix percentages when the server omits
// them. Output depends only on the row set and options, not on input order.
func BucketEcoTrends(rows []gateway.EcoTrendRow, opts BucketOptions) []models.EcoTrendPoint {
	points := make([]models.EcoTrendPoint, 0, len(rows))
	for _, r := range rows {
		p := models.EcoTrendPoint{
			DateBucket:          r.DateBucket.Format(dayLayout),
			EVBookings:          i64Or(r.EVBookings),
			HybridBookings:      i64Or(r.HybridBookings),
			GasBookings:         i64Or(r.GasBookings),
			TotalBookings:       i64Or(r.TotalBookings),
			TotalEcoSavings:     f64Or(r.TotalEcoSavings),
			AverageEmissionRate: f64Or(r.AverageEmissionRate),
		}
		p.EVPercentage = derivedPercent(r.EVPercentage, p.EVBookings, p.TotalBookings)
		p.HybridPercentage = derivedPercent(r.HybridPercentage, p.HybridBookings, p.TotalBookings)
		p.GasPercentage = derivedPercent(r.GasPercentage, p.GasBookings, p.TotalBookings)
		points = append(points, p)
	}
	return finish(points, opts, func(key string) models.EcoTrendPoint {
		return models.EcoTrendPoint{DateBucket: key}
	})
}

// derivedPercent uses the server-provided percentage when present, clamped;
// otherwise it is computed locally from the counts.
func derivedPercent(server *float64, count, total int64) float64 {
	if server != nil {
		return clampPercent(*server)
	}
	return percentOf(count, total)
}

// BucketRevenueTrends orders month-bucketed revenue rows
func BucketRevenueTrends(rows []gateway.RevenueTrendRow, opts BucketOptions) []models.RevenueTrendPoint {
	points := make([]models.RevenueTrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.RevenueTrendPoint{
			MonthBucket:         strOr(r.MonthBucket, ""),
			TotalRevenue:        f64Or(r.TotalRevenue),
			TotalBookings:       i64Or(r.TotalBookings),
			AverageBookingValue: f64Or(r.AverageBookingValue),
			EcoSavingsBonus:     f64Or(r.EcoSavingsBonus),
		})
	}
	// month buckets are never gap-filled
	return finish(points, BucketOptions{Order: opts.Order}, nil)
}

// BucketGrowthTrends orders month-bucketed user growth rows
func BucketGrowthTrends(rows []gateway.GrowthTrendRow, opts BucketOptions) []models.GrowthTrendPoint {
	points := make([]models.GrowthTrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.GrowthTrendPoint{
			MonthBucket: strOr(r.MonthBucket, ""),
			NewUsers:    i64Or(r.NewUsers),
			ActiveUsers: i64Or(r.ActiveUsers),
			TotalUsers:  i64Or(r.TotalUsers),
		})
	}
	return finish(points, BucketOptions{Order: opts.Order}, nil)
}

// BucketUtilizationTrends orders day-bucketed utilization rows, clamping
// every rate to a 0-100 percentage.
func BucketUtilizationTrends(rows []gateway.UtilizationTrendRow, opts BucketOptions) []models.UtilizationTrendPoint {
	points := make([]models.UtilizationTrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.UtilizationTrendPoint{
			DateBucket:        r.DateBucket.Format(dayLayout),
			TotalCars:         i64Or(r.TotalCars),
			BookedCars:        i64Or(r.BookedCars),
			AvailableCars:     i64Or(r.AvailableCars),
			UtilizationRate:   clampPercent(f64Or(r.UtilizationRate)),
			EVUtilization:     clampPercent(f64Or(r.EVUtilization)),
			HybridUtilization: clampPercent(f64Or(r.HybridUtilization)),
			GasUtilization:    clampPercent(f64Or(r.GasUtilization)),
		})
	}
	return finish(points, opts, func(key string) models.UtilizationTrendPoint {
		return models.UtilizationTrendPoint{DateBucket: key}
	})
}

// ParseOrder maps a query value onto an Order, defaulting to ascending
func ParseOrder(s string) Order {
	if s == string(OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}
