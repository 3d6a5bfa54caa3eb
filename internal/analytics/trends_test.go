package analytics

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
)

func day(s string) time.Time {
	d, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func ecoRow(bucket string, ev, hybrid, gas, total int64) gateway.EcoTrendRow {
	return gateway.EcoTrendRow{
		DateBucket:     day(bucket),
		EVBookings:     &ev,
		HybridBookings: &hybrid,
		GasBookings:    &gas,
		TotalBookings:  &total,
	}
}

func TestBucketEcoTrends_SortsAscending(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-03", 1, 0, 0, 1),
		ecoRow("2025-03-01", 2, 0, 0, 2),
		ecoRow("2025-03-02", 3, 0, 0, 3),
	}
	points := BucketEcoTrends(rows, BucketOptions{Order: OrderAsc})
	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].DateBucket, points[i].DateBucket)
	}
}

func TestBucketEcoTrends_SortsDescending(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-01", 1, 0, 0, 1),
		ecoRow("2025-03-03", 1, 0, 0, 1),
		ecoRow("2025-03-02", 1, 0, 0, 1),
	}
	points := BucketEcoTrends(rows, BucketOptions{Order: OrderDesc})
	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].DateBucket, points[i].DateBucket)
	}
}

func TestBucketEcoTrends_PermutationIndependent(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-05", 4, 1, 2, 7),
		ecoRow("2025-03-01", 2, 2, 0, 4),
		ecoRow("2025-03-03", 0, 0, 5, 5),
		ecoRow("2025-03-02", 1, 1, 1, 3),
	}
	want := BucketEcoTrends(rows, BucketOptions{Order: OrderAsc})

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]gateway.EcoTrendRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := BucketEcoTrends(shuffled, BucketOptions{Order: OrderAsc})
		assert.Equal(t, want, got)
	}
}

func TestBucketEcoTrends_DerivesPercentages(t *testing.T) {
	points := BucketEcoTrends([]gateway.EcoTrendRow{
		ecoRow("2025-03-01", 3, 1, 0, 4),
	}, BucketOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, 75.0, points[0].EVPercentage)
	assert.Equal(t, 25.0, points[0].HybridPercentage)
	assert.Equal(t, 0.0, points[0].GasPercentage)
}

func TestBucketEcoTrends_ZeroTotalYieldsZeroPercent(t *testing.T) {
	points := BucketEcoTrends([]gateway.EcoTrendRow{
		ecoRow("2025-03-01", 0, 0, 0, 0),
	}, BucketOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, 0.0, points[0].EVPercentage)
	assert.Equal(t, 0.0, points[0].HybridPercentage)
	assert.Equal(t, 0.0, points[0].GasPercentage)
	assert.False(t, math.IsNaN(points[0].EVPercentage))
	assert.False(t, math.IsInf(points[0].EVPercentage, 0))
}

func TestBucketEcoTrends_ServerPercentagesWin(t *testing.T) {
	row := ecoRow("2025-03-01", 1, 1, 0, 2)
	row.EVPercentage = ptr(60.0) // formatted variant already computed it
	points := BucketEcoTrends([]gateway.EcoTrendRow{row}, BucketOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, 60.0, points[0].EVPercentage)
	assert.Equal(t, 50.0, points[0].HybridPercentage) // still derived locally
}

func TestBucketEcoTrends_NoGapFillByDefault(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-01", 1, 0, 0, 1),
		ecoRow("2025-03-04", 1, 0, 0, 1),
	}
	points := BucketEcoTrends(rows, BucketOptions{Order: OrderAsc})
	assert.Len(t, points, 2, "absent day buckets stay absent")
}

func TestBucketEcoTrends_FillGaps(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-01", 1, 0, 0, 1),
		ecoRow("2025-03-04", 1, 0, 0, 1),
	}
	points := BucketEcoTrends(rows, BucketOptions{Order: OrderAsc, FillGaps: true})
	require.Len(t, points, 4)
	assert.Equal(t, "2025-03-02", points[1].DateBucket)
	assert.Equal(t, "2025-03-03", points[2].DateBucket)
	assert.Zero(t, points[1].TotalBookings)
	assert.Zero(t, points[1].EVPercentage)
}

func TestBucketEcoTrends_CollapsesDuplicateBuckets(t *testing.T) {
	rows := []gateway.EcoTrendRow{
		ecoRow("2025-03-01", 5, 0, 0, 5),
		ecoRow("2025-03-01", 9, 0, 0, 9),
	}
	points := BucketEcoTrends(rows, BucketOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, int64(5), points[0].EVBookings)
}

func TestBucketRevenueTrends_MonthOrdering(t *testing.T) {
	rev := func(bucket string, total float64) gateway.RevenueTrendRow {
		return gateway.RevenueTrendRow{MonthBucket: &bucket, TotalRevenue: &total}
	}
	points := BucketRevenueTrends([]gateway.RevenueTrendRow{
		rev("2025-03", 300),
		rev("2025-01", 100),
		rev("2025-02", 200),
	}, BucketOptions{Order: OrderDesc})
	require.Len(t, points, 3)
	assert.Equal(t, "2025-03", points[0].MonthBucket)
	assert.Equal(t, "2025-01", points[2].MonthBucket)
}

func TestBucketUtilizationTrends_ClampsRates(t *testing.T) {
	rate := 132.0
	points := BucketUtilizationTrends([]gateway.UtilizationTrendRow{
		{DateBucket: day("2025-03-01"), UtilizationRate: &rate},
	}, BucketOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, 100.0, points[0].UtilizationRate)
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, OrderDesc, ParseOrder("desc"))
	assert.Equal(t, OrderAsc, ParseOrder("asc"))
	assert.Equal(t, OrderAsc, ParseOrder(""))
	assert.Equal(t, OrderAsc, ParseOrder("sideways"))
}
