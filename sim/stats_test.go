package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseNormalCDF_Median_IsZero(t *testing.T) {
	z, err := InverseNormalCDF(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, z, 1e-12)
}

func TestInverseNormalCDF_KnownQuantiles(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.975, 1.959963984540054},
		{0.95, 1.6448536269514722},
		{0.05, -1.6448536269514722},
		{0.01, -2.3263478740408408}, // low tail region
		{0.999, 3.090232306167813},  // high tail region
		{0.84134474606854293, 1.0},
	}
	for _, tt := range tests {
		z, err := InverseNormalCDF(tt.p)
		require.NoError(t, err)
		// Acklam's relative error is below 1.15e-9.
		assert.InDelta(t, tt.want, z, 1e-8, "p=%v", tt.p)
	}
}

func TestInverseNormalCDF_Symmetric(t *testing.T) {
	for _, p := range []float64{0.001, 0.02, 0.1, 0.3, 0.45} {
		lo, err := InverseNormalCDF(p)
		require.NoError(t, err)
		hi, err := InverseNormalCDF(1 - p)
		require.NoError(t, err)
		assert.InDelta(t, -lo, hi, 1e-8, "p=%v", p)
	}
}

func TestInverseNormalCDF_OutsideOpenInterval_InvalidArgument(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.2, math.NaN(), math.Inf(1)} {
		_, err := InverseNormalCDF(p)
		require.Error(t, err, "p=%v", p)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "p=%v", p)

		var ae *ArgumentError
		assert.True(t, errors.As(err, &ae))
	}
}

func TestApproxPoissonQuantile_ZeroMean_IsZero(t *testing.T) {
	assert.Equal(t, 0, ApproxPoissonQuantile(0, 0.99))
	assert.Equal(t, 0, ApproxPoissonQuantile(-3, 0.99))
}

func TestApproxPoissonQuantile_MedianIsRoundedMean(t *testing.T) {
	assert.Equal(t, 20, ApproxPoissonQuantile(20, 0.5))
	assert.Equal(t, 8, ApproxPoissonQuantile(7.6, 0.5))
}

func TestApproxPoissonQuantile_KnownValue(t *testing.T) {
	// 25 + 1.6449*5 = 33.22 → 33
	assert.Equal(t, 33, ApproxPoissonQuantile(25, 0.95))
}

func TestApproxPoissonQuantile_ExtremeLevels_Clamped(t *testing.T) {
	// Service levels of exactly 0 or 1 must not fail.
	assert.Equal(t, 0, ApproxPoissonQuantile(4, 0))
	assert.Greater(t, ApproxPoissonQuantile(4, 1), 4)
	assert.Equal(t, ApproxPoissonQuantile(4, 1), ApproxPoissonQuantile(4, 0.999999))
}

func TestApproxPoissonQuantile_MonotoneInServiceLevel(t *testing.T) {
	for _, mean := range []float64{0.5, 3, 12.5, 40, 200} {
		prev := math.MinInt
		for sl := 0.01; sl < 1; sl += 0.01 {
			q := ApproxPoissonQuantile(mean, sl)
			if q < prev {
				t.Fatalf("mean=%v: quantile dropped from %d to %d at sl=%v", mean, prev, q, sl)
			}
			prev = q
		}
	}
}

func TestApproxPoissonQuantile_MonotoneInMean(t *testing.T) {
	for _, sl := range []float64{0.05, 0.5, 0.9, 0.99} {
		prev := math.MinInt
		for mean := 0.0; mean < 100; mean += 0.25 {
			q := ApproxPoissonQuantile(mean, sl)
			if q < prev {
				t.Fatalf("sl=%v: quantile dropped from %d to %d at mean=%v", sl, prev, q, mean)
			}
			prev = q
		}
	}
}

func TestSamplePoisson_ZeroRate_NoDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ref := rand.New(rand.NewSource(1))
	assert.Equal(t, 0, SamplePoisson(0, rng))
	assert.Equal(t, 0, SamplePoisson(-2, rng))
	// The stream is untouched.
	assert.Equal(t, ref.Float64(), rng.Float64())
}

func TestSamplePoisson_SmallRate_MeanAndVariance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 20000
	const rate = 4.0
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		x := float64(SamplePoisson(rate, rng))
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	assert.InDelta(t, rate, mean, 0.1)
	assert.InDelta(t, rate, variance, 0.3)
}

func TestSamplePoisson_LargeRate_NormalApproximation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 20000
	const rate = 400.0
	sum := 0.0
	for i := 0; i < n; i++ {
		x := SamplePoisson(rate, rng)
		require.GreaterOrEqual(t, x, 0)
		sum += float64(x)
	}
	assert.InDelta(t, rate, sum/n, 1.0)
}

func TestSamplePoisson_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		rate := float64(i % 80)
		if x, y := SamplePoisson(rate, a), SamplePoisson(rate, b); x != y {
			t.Fatalf("draw %d: %d vs %d", i, x, y)
		}
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.5, Mean([]int{1, 2, 3, 4}))
}

func TestEWMA(t *testing.T) {
	assert.Equal(t, 0.0, EWMA(nil, 0.3))
	assert.Equal(t, 7.0, EWMA([]int{7}, 0.3))
	assert.InDelta(t, 0.5*10+0.5*(0.5*4+0.5*2), EWMA([]int{2, 4, 10}, 0.5), 1e-12)
	// alpha is clamped: 0 keeps the seed, 1 tracks the last value.
	assert.Equal(t, 2.0, EWMA([]int{2, 4, 10}, -1))
	assert.Equal(t, 10.0, EWMA([]int{2, 4, 10}, 7))
}
