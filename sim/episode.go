package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/freshstock/freshsim/sim/trace"
)

// EpisodeResult holds totals accumulated over the measured (post warm-up)
// days of one episode. Immutable once returned by RunEpisode.
type EpisodeResult struct {
	TotalDemand   int
	TotalSold     int
	TotalStockout int
	TotalWasted   int
	TotalReceived int
	TotalCost     float64
	MeasuredDays  int
}

// ServiceLevel is 1 - stockout/demand, and exactly 1.0 when there was no demand.
func (r EpisodeResult) ServiceLevel() float64 {
	if r.TotalDemand <= 0 {
		return 1.0
	}
	return 1.0 - float64(r.TotalStockout)/float64(r.TotalDemand)
}

// WasteRate is wasted/received, and exactly 0.0 when nothing was received.
func (r EpisodeResult) WasteRate() float64 {
	if r.TotalReceived <= 0 {
		return 0.0
	}
	return float64(r.TotalWasted) / float64(r.TotalReceived)
}

type episodeOptions struct {
	trace  *trace.EpisodeTrace
	logger *logrus.Entry
}

// EpisodeOption customizes RunEpisode.
type EpisodeOption func(*episodeOptions)

// WithTrace records every simulated day, warm-up included, into et.
func WithTrace(et *trace.EpisodeTrace) EpisodeOption {
	return func(o *episodeOptions) { o.trace = et }
}

// WithLogger routes per-day debug logging through entry.
func WithLogger(entry *logrus.Entry) EpisodeOption {
	return func(o *episodeOptions) { o.logger = entry }
}

// RunEpisode drives cfg.HorizonDays days. Each day the policy decides on the
// pre-transition state (it never sees that day's demand or receipt), then
// Step applies demand and the order. Days before cfg.WarmupDays run normally
// but are excluded from the totals.
//
// TotalCost is summed in a decimal ledger and converted once at the end.
//
// Any error aborts the episode and no partial result is returned.
func RunEpisode(cfg SimConfig, demand DemandGenerator, pol Policy, opts ...EpisodeOption) (EpisodeResult, error) {
	if err := cfg.Validate(); err != nil {
		return EpisodeResult{}, err
	}
	if demand == nil {
		return EpisodeResult{}, NewConfigError("demand_model", "generator is nil")
	}
	if pol == nil {
		return EpisodeResult{}, NewConfigError("policy", "policy is nil")
	}
	o := episodeOptions{logger: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(&o)
	}

	state := NewInventoryState(cfg.ShelfLifeDays, cfg.LeadTimeDays)
	var result EpisodeResult
	ledger := decimal.Zero

	for t := 0; t < cfg.HorizonDays; t++ {
		d := demand.Demand(t)
		order := pol.Decide(state)

		// Receipt is read off the pre-transition state so the total reflects
		// goods that entered stock, independent of aging inside Step.
		received := state.PipelineHead()
		if cfg.LeadTimeDays == 0 {
			received = max(0, order)
		}

		next, m, err := Step(state, d, order, cfg.ShelfLifeDays, cfg.LeadTimeDays, cfg.Costs)
		if err != nil {
			return EpisodeResult{}, fmt.Errorf("day %d: %w", t, err)
		}
		state = next

		warmup := t < cfg.WarmupDays
		if o.trace != nil {
			o.trace.RecordDay(trace.DayRecord{
				Day:       t,
				Order:     max(0, order),
				Demand:    m.Demand,
				Received:  received,
				Sold:      m.Sold,
				Stockout:  m.Stockout,
				Wasted:    m.Wasted,
				OnHandEnd: m.OnHandEnd,
				Cost:      m.TotalCost(),
				Warmup:    warmup,
			})
		}
		if o.logger.Logger.IsLevelEnabled(logrus.TraceLevel) {
			o.logger.Tracef("day=%d order=%d demand=%d sold=%d stockout=%d wasted=%d on_hand=%d",
				t, order, m.Demand, m.Sold, m.Stockout, m.Wasted, m.OnHandEnd)
		}
		if warmup {
			continue
		}

		result.TotalDemand += m.Demand
		result.TotalSold += m.Sold
		result.TotalStockout += m.Stockout
		result.TotalWasted += m.Wasted
		result.TotalReceived += received
		result.MeasuredDays++
		ledger = ledger.
			Add(decimal.NewFromFloat(m.HoldingCost)).
			Add(decimal.NewFromFloat(m.WasteCost)).
			Add(decimal.NewFromFloat(m.StockoutCost))
	}

	result.TotalCost = ledger.InexactFloat64()
	o.logger.Debugf("episode done: policy=%s demand=%d stockout=%d wasted=%d cost=%.2f",
		pol.Name(), result.TotalDemand, result.TotalStockout, result.TotalWasted, result.TotalCost)
	return result, nil
}
