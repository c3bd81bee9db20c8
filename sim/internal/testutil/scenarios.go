// Package testutil provides shared test infrastructure for the inventory
// engine. It holds the hand-computed scenario dataset types and assertion
// helpers used by the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ScenarioDataset represents the structure of testdata/scenarios.json.
type ScenarioDataset struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario is one deterministic episode: a fixed demand sequence and a fixed
// order script, with totals computed by hand.
type Scenario struct {
	Name          string `json:"name"`
	HorizonDays   int    `json:"horizon_days"`
	WarmupDays    int    `json:"warmup_days"`
	ShelfLifeDays int    `json:"shelf_life_days"`
	LeadTimeDays  int    `json:"lead_time_days"`
	// Demand[t] is day t's demand; days past the end have zero demand.
	Demand []int `json:"demand"`
	// Orders[t] is day t's order; days past the end order nothing.
	Orders   []int           `json:"orders"`
	Expected ScenarioMetrics `json:"expected"`
}

// ScenarioMetrics are the expected episode totals under default unit costs.
type ScenarioMetrics struct {
	TotalDemand   int     `json:"total_demand"`
	TotalSold     int     `json:"total_sold"`
	TotalStockout int     `json:"total_stockout"`
	TotalWasted   int     `json:"total_wasted"`
	TotalReceived int     `json:"total_received"`
	TotalCost     float64 `json:"total_cost"`
}

// LoadScenarios loads the scenario dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadScenarios(t *testing.T) *ScenarioDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenario dataset: %v", err)
	}

	var dataset ScenarioDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse scenario dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("scenario dataset is empty")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
