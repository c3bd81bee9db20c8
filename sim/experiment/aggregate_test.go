package experiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithCosts(costs ...float64) []Record {
	out := make([]Record, len(costs))
	for i, c := range costs {
		out[i] = Record{Seed: int64(i), Metrics: Metrics{TotalCost: c, ServiceLevel: 0.9, TotalDemand: 100 + i}}
	}
	return out
}

func TestAggregate_Statistics(t *testing.T) {
	// GIVEN five seeds with costs 1..5 (unsorted)
	s := Aggregate(recordsWithCosts(3, 1, 5, 2, 4))

	// THEN the cost summary uses the sample std and empirical quantiles
	require.Equal(t, 5, s.Seeds)
	cost := s.Metrics["total_cost"]
	assert.InDelta(t, 3.0, cost.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), cost.StdDev, 1e-12)
	assert.Equal(t, 1.0, cost.Min)
	assert.Equal(t, 5.0, cost.Max)
	assert.Equal(t, 3.0, cost.P50)
	assert.Equal(t, 5.0, cost.P95)

	sl := s.Metrics["service_level"]
	assert.InDelta(t, 0.9, sl.Mean, 1e-12)
	assert.InDelta(t, 0.0, sl.StdDev, 1e-12)
}

func TestAggregate_SingleRecord_ZeroStdDev(t *testing.T) {
	s := Aggregate(recordsWithCosts(7))
	cost := s.Metrics["total_cost"]
	assert.Equal(t, 7.0, cost.Mean)
	assert.Equal(t, 0.0, cost.StdDev)
	assert.Equal(t, 7.0, cost.P50)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.Seeds)
	assert.Empty(t, s.Metrics)
}

func TestAggregate_CoversEveryMetric(t *testing.T) {
	s := Aggregate(recordsWithCosts(1, 2))
	for _, name := range MetricNames() {
		assert.Contains(t, s.Metrics, name)
	}
	assert.Len(t, s.Metrics, 8)
}
