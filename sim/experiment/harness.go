package experiment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/freshstock/freshsim/sim"
	"github.com/freshstock/freshsim/sim/demand"
	"github.com/freshstock/freshsim/sim/policy"
	"github.com/freshstock/freshsim/sim/trace"
)

// Metrics is the per-seed summary written to the output record.
type Metrics struct {
	TotalDemand   int     `json:"total_demand"`
	TotalSold     int     `json:"total_sold"`
	TotalStockout int     `json:"total_stockout"`
	TotalWasted   int     `json:"total_wasted"`
	TotalReceived int     `json:"total_received"`
	ServiceLevel  float64 `json:"service_level"`
	WasteRate     float64 `json:"waste_rate"`
	TotalCost     float64 `json:"total_cost"`
}

// NewMetrics flattens an EpisodeResult into its output form.
func NewMetrics(r sim.EpisodeResult) Metrics {
	return Metrics{
		TotalDemand:   r.TotalDemand,
		TotalSold:     r.TotalSold,
		TotalStockout: r.TotalStockout,
		TotalWasted:   r.TotalWasted,
		TotalReceived: r.TotalReceived,
		ServiceLevel:  r.ServiceLevel(),
		WasteRate:     r.WasteRate(),
		TotalCost:     r.TotalCost,
	}
}

// Record is one output line: the seed, the echoed config, the resolved
// engine config and the episode metrics.
type Record struct {
	Seed    int64         `json:"seed"`
	Config  Config        `json:"config"`
	SimCfg  sim.SimConfig `json:"sim_cfg"`
	Metrics Metrics       `json:"metrics"`
}

// Harness runs one configured experiment over many seeds. It holds only
// read-only state, so RunSeed may be called from several goroutines.
type Harness struct {
	cfg         Config
	simCfg      sim.SimConfig
	policy      sim.Policy
	parallelism int
	traceDir    string
	logger      *logrus.Entry
}

// HarnessOption customizes a Harness.
type HarnessOption func(*Harness)

// WithParallelism runs up to n seeds concurrently. n < 1 is treated as 1.
func WithParallelism(n int) HarnessOption {
	return func(h *Harness) { h.parallelism = max(1, n) }
}

// WithTraceDir writes a per-day CSV trace for every seed into dir.
func WithTraceDir(dir string) HarnessOption {
	return func(h *Harness) { h.traceDir = dir }
}

// WithLogger overrides the default logrus entry.
func WithLogger(entry *logrus.Entry) HarnessOption {
	return func(h *Harness) { h.logger = entry }
}

// NewHarness validates cfg and resolves the policy once. Configuration
// problems surface here, before any episode runs.
func NewHarness(cfg Config, opts ...HarnessOption) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		return nil, err
	}
	pol, err := policy.New(cfg.Policy.Name, cfg.Policy.PolicyConfig())
	if err != nil {
		return nil, err
	}
	h := &Harness{
		cfg:         cfg,
		simCfg:      simCfg,
		policy:      pol,
		parallelism: 1,
		logger:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.warnSuspicious()
	return h, nil
}

func (h *Harness) warnSuspicious() {
	if h.cfg.Policy.ServiceLevelTarget >= 0.999 {
		h.logger.Warnf("service_level_target %.4f is extreme; stock targets will be very high", h.cfg.Policy.ServiceLevelTarget)
	}
	if h.cfg.Policy.HistoryWindow > h.cfg.HorizonDays {
		h.logger.Warnf("history_window %d exceeds horizon_days %d; the window is never filled",
			h.cfg.Policy.HistoryWindow, h.cfg.HorizonDays)
	}
}

// SimConfig returns the resolved engine configuration.
func (h *Harness) SimConfig() sim.SimConfig { return h.simCfg }

// Policy returns the resolved policy.
func (h *Harness) Policy() sim.Policy { return h.policy }

// RunSeed runs one episode with its own RNG, demand generator and state.
func (h *Harness) RunSeed(seed int64) (Record, error) {
	return h.runSeed(seed, h.logger)
}

func (h *Harness) runSeed(seed int64, logger *logrus.Entry) (Record, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	gen, err := demand.New(h.cfg.DemandModel, h.simCfg.HorizonDays, rng.ForSubsystem(sim.SubsystemDemand))
	if err != nil {
		return Record{}, err
	}

	opts := []sim.EpisodeOption{sim.WithLogger(logger.WithField("seed", seed))}
	var et *trace.EpisodeTrace
	if h.traceDir != "" {
		et = trace.NewEpisodeTrace(seed)
		opts = append(opts, sim.WithTrace(et))
	}

	res, err := sim.RunEpisode(h.simCfg, gen, h.policy, opts...)
	if err != nil {
		return Record{}, err
	}
	if et != nil {
		if err := writeTrace(filepath.Join(h.traceDir, fmt.Sprintf("seed_%d.csv", seed)), et); err != nil {
			return Record{}, err
		}
	}
	return Record{
		Seed:    seed,
		Config:  h.cfg,
		SimCfg:  h.simCfg,
		Metrics: NewMetrics(res),
	}, nil
}

// Run executes one episode per seed and returns records in seed order,
// regardless of parallelism. The first failing seed cancels the rest and its
// error is returned; no partial batch is returned.
//
// Every log line of one Run carries the same run_id field.
func (h *Harness) Run(ctx context.Context, seeds []int64) ([]Record, error) {
	start := time.Now()
	logger := h.logger.WithField("run_id", uuid.NewString()[:8])
	logger.Infof("running %d seeds: policy=%s demand=%s horizon=%d parallelism=%d",
		len(seeds), h.policy.Name(), h.cfg.DemandModel.Type, h.simCfg.HorizonDays, h.parallelism)

	records := make([]Record, len(seeds))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(h.parallelism)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rec, err := h.runSeed(seed, logger)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Infof("completed %d seeds in %s", len(seeds), time.Since(start).Round(time.Millisecond))
	return records, nil
}

func writeTrace(path string, et *trace.EpisodeTrace) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating trace dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := et.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
