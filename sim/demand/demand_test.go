package demand

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshstock/freshsim/sim"
)

func f64(v float64) *float64 { return &v }

func TestPoissonDrift_Rate_LinearDriftWithWeeklySeasonality(t *testing.T) {
	// GIVEN a drift from 20 to 34 over 8 days
	g := &PoissonDrift{lambdaStart: 20, lambdaEnd: 34, amplitude: 0.15, horizon: 8}

	// THEN day 0 and day 7 sit on sin(0) and carry the pure trend
	assert.InDelta(t, 20.0, g.Rate(0), 1e-12)
	assert.InDelta(t, 34.0, g.Rate(7), 1e-12)

	// AND day 2 carries the seasonal bump
	want := (20 + 14*2.0/7.0) * (1 + 0.15*math.Sin(2*math.Pi*2/7))
	assert.InDelta(t, want, g.Rate(2), 1e-12)
}

func TestPoissonDrift_Rate_SingleDayHorizon_UsesStart(t *testing.T) {
	g := &PoissonDrift{lambdaStart: 12, lambdaEnd: 99, amplitude: 0, horizon: 1}
	assert.Equal(t, 12.0, g.Rate(0))
}

func TestPoissonDrift_Rate_PastHorizon_Clamped(t *testing.T) {
	g := &PoissonDrift{lambdaStart: 10, lambdaEnd: 20, amplitude: 0, horizon: 5}
	assert.Equal(t, 20.0, g.Rate(50))
}

func TestNew_DefaultsApplied(t *testing.T) {
	gen, err := New(Spec{Type: TypePoissonDrift}, 180, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	pd := gen.(*PoissonDrift)
	assert.Equal(t, 20.0, pd.lambdaStart)
	assert.Equal(t, 25.0, pd.lambdaEnd)
	assert.Equal(t, DefaultWeeklyAmplitude, pd.amplitude)
}

func TestNew_SameSeed_IdenticalSequence(t *testing.T) {
	spec := Spec{Type: TypePoissonDrift, LambdaStart: f64(15), LambdaEnd: f64(30)}
	g1, err := New(spec, 90, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	g2, err := New(spec, 90, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	for d := 0; d < 90; d++ {
		if a, b := g1.Demand(d), g2.Demand(d); a != b {
			t.Fatalf("day %d: %d vs %d", d, a, b)
		}
	}
}

func TestNew_ConstantPoisson_SampleMeanNearLambda(t *testing.T) {
	gen, err := New(Spec{Type: TypePoisson, Lambda: f64(10)}, 1, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	const n = 20000
	sum := 0
	for d := 0; d < n; d++ {
		sum += gen.Demand(d)
	}
	assert.InDelta(t, 10.0, float64(sum)/n, 0.15)
}

func TestNew_UnknownType_ReturnsVariantError(t *testing.T) {
	_, err := New(Spec{Type: "negative_binomial"}, 10, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrUnknownVariant))
	assert.Contains(t, err.Error(), "negative_binomial")
}

func TestSpec_Validate_RejectsBadParameters(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"negative start", Spec{Type: TypePoissonDrift, LambdaStart: f64(-1)}},
		{"NaN end", Spec{Type: TypePoissonDrift, LambdaEnd: f64(math.NaN())}},
		{"negative lambda", Spec{Type: TypePoisson, Lambda: f64(-0.5)}},
		{"amplitude above one", Spec{Type: TypePoisson, WeeklyAmplitude: f64(1.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidConfig))
		})
	}
}

func TestTypes_Sorted(t *testing.T) {
	assert.Equal(t, []string{TypePoisson, TypePoissonDrift}, Types())
}
