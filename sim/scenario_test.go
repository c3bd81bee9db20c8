package sim

import (
	"testing"

	"github.com/freshstock/freshsim/sim/internal/testutil"
)

// TestRunEpisode_Scenarios replays every hand-computed scenario in
// testdata/scenarios.json and checks the totals exactly and the cost to a
// tight relative tolerance.
func TestRunEpisode_Scenarios(t *testing.T) {
	dataset := testutil.LoadScenarios(t)

	for _, sc := range dataset.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			cfg := testSimConfig(sc.HorizonDays, sc.WarmupDays, sc.ShelfLifeDays, sc.LeadTimeDays)
			res, err := RunEpisode(cfg, seqDemand(sc.Demand), &scriptedPolicy{script: sc.Orders})
			if err != nil {
				t.Fatalf("RunEpisode: %v", err)
			}

			want := sc.Expected
			if res.TotalDemand != want.TotalDemand {
				t.Errorf("total_demand: got %d, want %d", res.TotalDemand, want.TotalDemand)
			}
			if res.TotalSold != want.TotalSold {
				t.Errorf("total_sold: got %d, want %d", res.TotalSold, want.TotalSold)
			}
			if res.TotalStockout != want.TotalStockout {
				t.Errorf("total_stockout: got %d, want %d", res.TotalStockout, want.TotalStockout)
			}
			if res.TotalWasted != want.TotalWasted {
				t.Errorf("total_wasted: got %d, want %d", res.TotalWasted, want.TotalWasted)
			}
			if res.TotalReceived != want.TotalReceived {
				t.Errorf("total_received: got %d, want %d", res.TotalReceived, want.TotalReceived)
			}
			if res.MeasuredDays != sc.HorizonDays-sc.WarmupDays {
				t.Errorf("measured days: got %d, want %d", res.MeasuredDays, sc.HorizonDays-sc.WarmupDays)
			}
			testutil.AssertFloat64Equal(t, "total_cost", want.TotalCost, res.TotalCost, 1e-9)

			// Conservation: every unit demanded is either sold or lost.
			if res.TotalSold+res.TotalStockout != res.TotalDemand {
				t.Errorf("sold %d + stockout %d != demand %d", res.TotalSold, res.TotalStockout, res.TotalDemand)
			}
		})
	}
}
