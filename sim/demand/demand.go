// Package demand provides the stochastic daily demand generators.
//
// A generator is built once per episode from a Spec and owns the random
// stream it is given; it draws from that stream once per simulated day.
package demand

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/freshstock/freshsim/sim"
)

// Model type names accepted in demand_model.type.
const (
	TypePoissonDrift = "poisson_drift"
	TypePoisson      = "poisson"
)

// DefaultWeeklyAmplitude is the day-of-week seasonality applied by poisson_drift.
const DefaultWeeklyAmplitude = 0.15

// Spec is the declarative demand_model section of an experiment config.
// Pointer fields distinguish "not set" from an explicit zero.
type Spec struct {
	Type            string   `json:"type" yaml:"type"`
	LambdaStart     *float64 `json:"lambda_start,omitempty" yaml:"lambda_start,omitempty"`
	LambdaEnd       *float64 `json:"lambda_end,omitempty" yaml:"lambda_end,omitempty"`
	Lambda          *float64 `json:"lambda,omitempty" yaml:"lambda,omitempty"`
	WeeklyAmplitude *float64 `json:"weekly_amplitude,omitempty" yaml:"weekly_amplitude,omitempty"`
}

var validTypes = map[string]bool{TypePoissonDrift: true, TypePoisson: true}

// Types returns the accepted demand model types in sorted order.
func Types() []string {
	out := make([]string, 0, len(validTypes))
	for k := range validTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks the type and parameter ranges without building a generator.
func (s Spec) Validate() error {
	if !validTypes[s.Type] {
		return &sim.VariantError{Kind: "demand_model.type", Value: s.Type, Valid: Types()}
	}
	check := func(field string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return sim.NewConfigError("demand_model."+field, "must be a finite non-negative number, got %v", v)
		}
		return nil
	}
	switch s.Type {
	case TypePoissonDrift:
		if err := check("lambda_start", valueOr(s.LambdaStart, 20)); err != nil {
			return err
		}
		if err := check("lambda_end", valueOr(s.LambdaEnd, 25)); err != nil {
			return err
		}
	case TypePoisson:
		if err := check("lambda", valueOr(s.Lambda, 20)); err != nil {
			return err
		}
	}
	amp := valueOr(s.WeeklyAmplitude, 0)
	if math.IsNaN(amp) || amp < 0 || amp > 1 {
		return sim.NewConfigError("demand_model.weekly_amplitude", "must be in [0,1], got %v", amp)
	}
	return nil
}

// New builds the generator described by spec for an episode of horizon days,
// drawing from rng. Unknown types yield a *sim.VariantError.
func New(spec Spec, horizon int, rng *rand.Rand) (sim.DemandGenerator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Type {
	case TypePoissonDrift:
		return &PoissonDrift{
			lambdaStart: valueOr(spec.LambdaStart, 20),
			lambdaEnd:   valueOr(spec.LambdaEnd, 25),
			amplitude:   valueOr(spec.WeeklyAmplitude, DefaultWeeklyAmplitude),
			horizon:     horizon,
			rng:         rng,
		}, nil
	case TypePoisson:
		lambda := valueOr(spec.Lambda, 20)
		if lambda >= sim.PoissonNormalApproxThreshold {
			logrus.Debugf("demand rate %.1f uses the normal approximation", lambda)
		}
		return &PoissonDrift{
			lambdaStart: lambda,
			lambdaEnd:   lambda,
			amplitude:   valueOr(spec.WeeklyAmplitude, 0),
			horizon:     horizon,
			rng:         rng,
		}, nil
	default:
		// unreachable after Validate
		return nil, &sim.VariantError{Kind: "demand_model.type", Value: spec.Type, Valid: Types()}
	}
}

// PoissonDrift draws Poisson demand whose rate moves linearly from
// lambdaStart on day 0 to lambdaEnd on the last day, modulated by a weekly
// sine: rate *= 1 + amplitude*sin(2π·(t mod 7)/7).
type PoissonDrift struct {
	lambdaStart, lambdaEnd float64
	amplitude              float64
	horizon                int
	rng                    *rand.Rand
}

// Rate returns the expected demand for day t.
func (g *PoissonDrift) Rate(t int) float64 {
	frac := 0.0
	if g.horizon > 1 {
		frac = math.Min(1, math.Max(0, float64(t)/float64(g.horizon-1)))
	}
	rate := g.lambdaStart + (g.lambdaEnd-g.lambdaStart)*frac
	return rate * (1 + g.amplitude*math.Sin(2*math.Pi*float64(t%7)/7))
}

func (g *PoissonDrift) Demand(t int) int {
	return sim.SamplePoisson(g.Rate(t), g.rng)
}
