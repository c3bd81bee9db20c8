package sim

import (
	"math"
	"math/rand"
)

// PoissonNormalApproxThreshold is the rate at and above which SamplePoisson
// switches from the exact Knuth method to a normal approximation.
const PoissonNormalApproxThreshold = 50.0

// Clamp bounds applied to the service level before it reaches InverseNormalCDF.
const (
	minQuantileLevel = 1e-6
	maxQuantileLevel = 0.999999
)

// SamplePoisson draws one Poisson(rate) count from rng.
//
// rate <= 0 returns 0 without consuming randomness. For rate below
// PoissonNormalApproxThreshold the exact multiplicative (Knuth) algorithm is
// used. At or above it, the result is max(0, round(Normal(rate, sqrt(rate)))),
// which is not an exact Poisson draw.
func SamplePoisson(rate float64, rng *rand.Rand) int {
	if rate <= 0 || math.IsNaN(rate) {
		return 0
	}
	if rate < PoissonNormalApproxThreshold {
		limit := math.Exp(-rate)
		k := 0
		p := 1.0
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}
	x := rng.NormFloat64()*math.Sqrt(rate) + rate
	return max(0, int(math.Round(x)))
}

// Coefficients for Acklam's rational approximation of the normal quantile.
var (
	acklamA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	acklamB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	acklamC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	acklamD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00,
		3.754408661907416e+00,
	}
)

const acklamLow = 0.02425

// InverseNormalCDF returns the standard normal quantile for p using Acklam's
// algorithm. p must lie strictly inside (0, 1); otherwise an *ArgumentError
// wrapping ErrInvalidArgument is returned.
func InverseNormalCDF(p float64) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, &ArgumentError{Func: "InverseNormalCDF", Value: p, Want: "in (0,1)"}
	}
	c, d := acklamC, acklamD
	switch {
	case p < acklamLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1), nil
	case p > 1-acklamLow:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1), nil
	}
	a, b := acklamA, acklamB
	q := p - 0.5
	r := q * q
	return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
		(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1), nil
}

// ApproxPoissonQuantile converts a Poisson mean and a target service level
// into a stock quantile using mean + z*sqrt(mean), floored at zero and
// rounded to the nearest integer. The service level is clamped to
// [1e-6, 0.999999] first, so this never fails.
func ApproxPoissonQuantile(mean, serviceLevel float64) int {
	if mean <= 0 || math.IsNaN(mean) {
		return 0
	}
	level := serviceLevel
	if math.IsNaN(level) {
		level = 0.5
	}
	level = math.Min(maxQuantileLevel, math.Max(minQuantileLevel, level))
	z, err := InverseNormalCDF(level)
	if err != nil {
		// unreachable after clamping
		panic(err)
	}
	return max(0, int(math.Round(mean+z*math.Sqrt(mean))))
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

// EWMA returns the exponentially-weighted moving average of xs, seeded at the
// first element: m = alpha*x + (1-alpha)*m. alpha is clamped to [0, 1].
// An empty slice yields 0.
func EWMA(xs []int, alpha float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	alpha = math.Min(1, math.Max(0, alpha))
	m := float64(xs[0])
	for _, x := range xs[1:] {
		m = alpha*float64(x) + (1-alpha)*m
	}
	return m
}
