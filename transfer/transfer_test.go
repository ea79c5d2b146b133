package transfer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func expPrime(x float64) float64 { return 3 * math.Exp(3*x) }

func TestSinhEndpoints(t *testing.T) {
	tf, err := NewSinh(expPrime, 0, 1, 0.1)
	assert.NoError(t, err)

	assert.InDelta(t, 0, tf.G(0), tol)
	assert.InDelta(t, 1, tf.G(1), tol)
	assert.NotEmpty(t, tf.Method())
}

func TestSinhMonotone(t *testing.T) {
	tf, err := NewSinh(expPrime, 0, 1, 0.1)
	assert.NoError(t, err)

	const n = 200
	prev := tf.G(0)
	for i := 1; i <= n; i++ {
		x := float64(i) / n
		cur := tf.G(x)
		assert.GreaterOrEqual(t, cur, prev, "g must not decrease at x=%g", x)
		prev = cur
	}
}

// g must warp the grid toward the steep end: exp(3x) is steepest at the
// right, so images of a uniform grid cluster there.
func TestSinhConcentratesGridPoints(t *testing.T) {
	tf, err := NewSinh(expPrime, 0, 1, 0.1)
	assert.NoError(t, err)

	left := tf.G(0.1) - tf.G(0)
	right := tf.G(1) - tf.G(0.9)
	assert.Greater(t, left, right,
		"subintervals must shrink where the function is steep")
}

// The fused coefficients are the raw approximation shifted and rescaled
// so that one Horner evaluation yields index plus local coordinate.
func TestFusedBaking(t *testing.T) {
	const a, b, h = 0.5, 2.5, 0.25
	tf, err := NewSinh(func(x float64) float64 { return math.Cos(x) }, a, b, h)
	assert.NoError(t, err)

	// At the left edge the fused hash must sit at index 0, at the right
	// edge at index (b-a)/h, within the acceptance tolerance.
	assert.InDelta(t, 0, tf.InverseFused(a), tol/h)
	assert.InDelta(t, (b-a)/h, tf.InverseFused(b), tol/h)

	// The fused hash must be consistent with G: feeding an image back in
	// recovers the pre-image index.
	for k := 0; k <= 8; k++ {
		u := a + h*float64(k)
		x := tf.G(u)
		assert.InDelta(t, float64(k), tf.InverseFused(x), 1e-2)
	}
}

func TestFromCoefsRoundTrip(t *testing.T) {
	tf, err := NewSinh(expPrime, 0, 1, 0.1)
	assert.NoError(t, err)

	re := FromCoefs(tf.Coefs(), 0, 1, 0.1)
	assert.Equal(t, tf.Coefs(), re.Coefs())

	for i := 0; i <= 50; i++ {
		x := float64(i) / 50
		assert.Equal(t, tf.InverseFused(x), re.InverseFused(x), "x = %g", x)
		assert.InDelta(t, tf.G(x), re.G(x), tol)
	}
}

// A constant-slope function leaves nothing to warp: g must collapse to
// the identity within tolerance.
func TestSinhIdentityForConstantSlope(t *testing.T) {
	tf, err := NewSinh(func(x float64) float64 { return 2 }, 0, 1, 0.1)
	assert.NoError(t, err)

	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		assert.InDelta(t, x, tf.G(x), 1e-6)
	}
}
