// Package policy implements the base-stock replenishment policies.
//
// Every policy orders max(0, target - inventory position); they differ only
// in how the stock target is forecast from demand history. Policies are
// resolved by name once, at experiment construction, via New.
package policy

import (
	"sort"

	"github.com/freshstock/freshsim/sim"
)

// Registry names, as they appear in experiment configs.
const (
	NameMovingAverage     = "baseline_ma_base_stock"
	NameEWMA              = "baseline_ewma_base_stock"
	NameConformalQuantile = "cq_base_stock"
)

// DefaultName is used when a config leaves policy.name empty.
const DefaultName = NameMovingAverage

var constructors = map[string]func(Config) sim.Policy{
	NameMovingAverage:     func(c Config) sim.Policy { return &MovingAverage{cfg: c} },
	NameEWMA:              func(c Config) sim.Policy { return &EWMA{cfg: c} },
	NameConformalQuantile: func(c Config) sim.Policy { return &ConformalQuantile{cfg: c} },
}

// Names returns the registered policy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidName reports whether name is a registered policy.
func IsValidName(name string) bool {
	_, ok := constructors[name]
	return ok
}

// New validates cfg and returns the named policy.
// Unknown names yield a *sim.VariantError; invalid parameters a *sim.ConfigError.
func New(name string, cfg Config) (sim.Policy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, &sim.VariantError{Kind: "policy.name", Value: name, Valid: Names()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return ctor(cfg), nil
}
