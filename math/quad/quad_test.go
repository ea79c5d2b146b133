package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussKronrodPolynomial(t *testing.T) {
	// The 7 point Gauss rule is exact for degree 13, so a cubic is free.
	cubic := func(x float64) float64 { return x*x*x - 2*x + 1 }
	got := GaussKronrod(cubic, 0, 2, 1e-12)
	assert.InDelta(t, 2, got, 1e-12)
}

func TestGaussKronrodSin(t *testing.T) {
	got := GaussKronrod(math.Sin, 0, math.Pi, 1e-12)
	assert.InDelta(t, 2, got, 1e-10)
}

func TestGaussKronrodExp(t *testing.T) {
	got := GaussKronrod(math.Exp, 0, 1, 1e-12)
	assert.InDelta(t, math.E-1, got, 1e-10)
}

// Steep integrands force the adaptive bisection to earn its keep.
func TestGaussKronrodAdapts(t *testing.T) {
	steep := func(x float64) float64 { return math.Exp(-100 * x * x) }
	want := math.Sqrt(math.Pi) / 10 // erf(100) ~ 1 over [-10, 10]
	got := GaussKronrod(steep, -10, 10, 1e-12)
	assert.InDelta(t, want, got, 1e-9)
}

func TestGaussKronrodOrientation(t *testing.T) {
	assert.Equal(t, 0.0, GaussKronrod(math.Exp, 1, 1, 1e-12))
	fwd := GaussKronrod(math.Exp, 0, 1, 1e-12)
	rev := GaussKronrod(math.Exp, 1, 0, 1e-12)
	assert.Equal(t, fwd, -rev)
}

// The arc length density used by the transfer functions: strictly inside
// (0, 1], smooth, and its integral never exceeds the domain width.
func TestGaussKronrodArcLengthDensity(t *testing.T) {
	w := func(x float64) float64 {
		fp := 3 * math.Exp(3*x)
		return 1 / math.Sqrt(1+fp*fp)
	}
	got := GaussKronrod(w, 0, 1, 1e-10)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}
