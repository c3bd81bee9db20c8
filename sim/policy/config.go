package policy

import (
	"math"

	"github.com/freshstock/freshsim/sim"
)

// Config parameterizes every base-stock policy. Immutable; one value is
// shared read-only by all seeds of an experiment.
type Config struct {
	ServiceLevelTarget float64 `json:"service_level_target" yaml:"service_level_target"` // target fill probability in (0,1)
	HistoryWindow      int     `json:"history_window" yaml:"history_window"`             // demand days used for the point forecast
	EWMAAlpha          float64 `json:"ewma_alpha" yaml:"ewma_alpha"`                     // smoothing factor in [0,1]
	ResidualWindow     int     `json:"residual_window" yaml:"residual_window"`           // trailing days used for residual calibration
}

// DefaultConfig returns the parameters used when a config omits them.
func DefaultConfig() Config {
	return Config{
		ServiceLevelTarget: 0.95,
		HistoryWindow:      28,
		EWMAAlpha:          0.2,
		ResidualWindow:     60,
	}
}

// Validate rejects parameters no policy can run with.
// Returns a *sim.ConfigError for the first violated field.
func (c Config) Validate() error {
	if math.IsNaN(c.ServiceLevelTarget) || c.ServiceLevelTarget <= 0 || c.ServiceLevelTarget >= 1 {
		return sim.NewConfigError("policy.service_level_target", "must be in (0,1), got %v", c.ServiceLevelTarget)
	}
	if c.HistoryWindow <= 0 {
		return sim.NewConfigError("policy.history_window", "must be positive, got %d", c.HistoryWindow)
	}
	if math.IsNaN(c.EWMAAlpha) || c.EWMAAlpha < 0 || c.EWMAAlpha > 1 {
		return sim.NewConfigError("policy.ewma_alpha", "must be in [0,1], got %v", c.EWMAAlpha)
	}
	if c.ResidualWindow <= 0 {
		return sim.NewConfigError("policy.residual_window", "must be positive, got %d", c.ResidualWindow)
	}
	return nil
}
