package experiment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MetricSummary describes one metric across seeds.
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
}

// Summary aggregates a batch of records. Metrics is keyed by the metric's
// output name (service_level, waste_rate, ...).
type Summary struct {
	Seeds   int                      `json:"seeds"`
	Metrics map[string]MetricSummary `json:"metrics"`
}

// metricExtractors lists the aggregated metrics by output name.
var metricExtractors = map[string]func(Metrics) float64{
	"total_demand":   func(m Metrics) float64 { return float64(m.TotalDemand) },
	"total_sold":     func(m Metrics) float64 { return float64(m.TotalSold) },
	"total_stockout": func(m Metrics) float64 { return float64(m.TotalStockout) },
	"total_wasted":   func(m Metrics) float64 { return float64(m.TotalWasted) },
	"total_received": func(m Metrics) float64 { return float64(m.TotalReceived) },
	"service_level":  func(m Metrics) float64 { return m.ServiceLevel },
	"waste_rate":     func(m Metrics) float64 { return m.WasteRate },
	"total_cost":     func(m Metrics) float64 { return m.TotalCost },
}

// Aggregate summarizes records across seeds. The standard deviation is the
// sample (n-1) estimate and is 0 for a single record. An empty batch yields
// an empty Metrics map.
func Aggregate(records []Record) Summary {
	s := Summary{Seeds: len(records), Metrics: make(map[string]MetricSummary, len(metricExtractors))}
	if len(records) == 0 {
		return s
	}
	values := make([]float64, len(records))
	for name, extract := range metricExtractors {
		for i, rec := range records {
			values[i] = extract(rec.Metrics)
		}
		s.Metrics[name] = summarizeValues(values)
	}
	return s
}

// summarizeValues sorts values in place.
func summarizeValues(values []float64) MetricSummary {
	sort.Float64s(values)
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 || math.IsNaN(std) {
		std = 0
	}
	return MetricSummary{
		Mean:   mean,
		StdDev: std,
		Min:    values[0],
		Max:    values[len(values)-1],
		P50:    stat.Quantile(0.5, stat.Empirical, values, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, values, nil),
	}
}

// MetricNames returns the aggregated metric names in sorted order.
func MetricNames() []string {
	names := make([]string, 0, len(metricExtractors))
	for name := range metricExtractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
