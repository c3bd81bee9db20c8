package policy

import (
	"math"
	"sort"

	"github.com/freshstock/freshsim/sim"
)

// Minimum windows enforced regardless of configuration.
const (
	minEWMAWindow      = 2
	minCQHistoryWindow = 5
	minResidualWindow  = 10
)

// Residual quantile bounds for ConformalQuantile.
const (
	minResidualLevel = 0.001
	maxResidualLevel = 0.999
)

// orderUpTo is the shared base-stock rule: bring inventory position up to target.
func orderUpTo(state sim.InventoryState, target int) int {
	return max(0, target-state.InventoryPosition())
}

// lastN returns the trailing n elements of xs (all of xs when shorter).
func lastN(xs []int, n int) []int {
	if n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}

// MovingAverage orders up to the service-level quantile of a Poisson whose
// mean is the simple average of the last HistoryWindow demands.
type MovingAverage struct {
	cfg Config
}

func (p *MovingAverage) Name() string { return NameMovingAverage }

func (p *MovingAverage) Decide(state sim.InventoryState) int {
	mu := sim.Mean(lastN(state.DemandHistory, max(1, p.cfg.HistoryWindow)))
	return orderUpTo(state, sim.ApproxPoissonQuantile(mu, p.cfg.ServiceLevelTarget))
}

// EWMA is MovingAverage with the mean replaced by an exponentially-weighted
// average over the last max(2, HistoryWindow) demands.
type EWMA struct {
	cfg Config
}

func (p *EWMA) Name() string { return NameEWMA }

func (p *EWMA) Decide(state sim.InventoryState) int {
	mu := sim.EWMA(lastN(state.DemandHistory, max(minEWMAWindow, p.cfg.HistoryWindow)), p.cfg.EWMAAlpha)
	return orderUpTo(state, sim.ApproxPoissonQuantile(mu, p.cfg.ServiceLevelTarget))
}

// ConformalQuantile corrects the EWMA point forecast by an empirical quantile
// of its own one-step-ahead residuals before converting to a stock target.
//
// For each day i in the trailing residual window, the prediction is the EWMA
// of the (up to) window days preceding i, and the residual is actual minus
// prediction. The residual at rank ceil(q*n)-1 is added to the current
// forecast. With no residuals it behaves exactly like EWMA.
type ConformalQuantile struct {
	cfg Config
}

func (p *ConformalQuantile) Name() string { return NameConformalQuantile }

func (p *ConformalQuantile) Decide(state sim.InventoryState) int {
	hist := state.DemandHistory
	window := max(minCQHistoryWindow, p.cfg.HistoryWindow)
	mu := sim.EWMA(lastN(hist, window), p.cfg.EWMAAlpha)

	residuals := p.residuals(hist, window)
	if len(residuals) == 0 {
		return orderUpTo(state, sim.ApproxPoissonQuantile(mu, p.cfg.ServiceLevelTarget))
	}

	q := math.Min(maxResidualLevel, math.Max(minResidualLevel, p.cfg.ServiceLevelTarget))
	sort.Float64s(residuals)
	idx := int(math.Ceil(q*float64(len(residuals)))) - 1
	idx = max(0, min(len(residuals)-1, idx))

	calibrated := math.Max(0, mu+residuals[idx])
	return orderUpTo(state, sim.ApproxPoissonQuantile(calibrated, p.cfg.ServiceLevelTarget))
}

// residuals returns the unsorted one-step-ahead errors over the trailing
// residual window. Days with no preceding history are skipped.
func (p *ConformalQuantile) residuals(hist []int, window int) []float64 {
	start := max(0, len(hist)-max(minResidualWindow, p.cfg.ResidualWindow))
	out := make([]float64, 0, len(hist)-start)
	for i := start; i < len(hist); i++ {
		past := hist[max(0, i-window):i]
		if len(past) == 0 {
			continue
		}
		out = append(out, float64(hist[i])-sim.EWMA(past, p.cfg.EWMAAlpha))
	}
	return out
}
