package mat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveVector(t *testing.T) {
	m := NewMatrix([]float64{
		1, 3, 5,
		2, 4, 7,
		1, 1, 0,
	}, 3, 3)

	xs := m.SolveVector([]float64{2, 3, 1})
	// Residual check: M x must reproduce b.
	b := m.MultVector(xs)
	assert.InDelta(t, 2, b[0], 1e-12)
	assert.InDelta(t, 3, b[1], 1e-12)
	assert.InDelta(t, 1, b[2], 1e-12)
}

func TestDeterminant(t *testing.T) {
	m := NewMatrix([]float64{
		1, 3, 5,
		2, 4, 7,
		1, 1, 0,
	}, 3, 3)
	assert.InDelta(t, 4, m.Determinant(), 1e-12)

	id := NewMatrix([]float64{
		1, 0,
		0, 1,
	}, 2, 2)
	assert.InDelta(t, 1, id.Determinant(), 1e-15)
}

func TestMult(t *testing.T) {
	a := NewMatrix([]float64{
		1, 2,
		3, 4,
	}, 2, 2)
	b := NewMatrix([]float64{
		0, 1,
		1, 0,
	}, 2, 2)
	c := a.Mult(b)
	assert.Equal(t, []float64{2, 1, 4, 3}, c.Vals)
}

func TestVandermonde(t *testing.T) {
	v := Vandermonde([]float64{0, 0.5, 1})
	assert.Equal(t, []float64{
		1, 0, 0,
		1, 0.5, 0.25,
		1, 1, 1,
	}, v.Vals)

	// Interpolating x^2 through three points recovers the monomial
	// coefficients exactly.
	coefs := v.SolveVector([]float64{0, 0.25, 1})
	assert.InDelta(t, 0, coefs[0], 1e-14)
	assert.InDelta(t, 0, coefs[1], 1e-14)
	assert.InDelta(t, 1, coefs[2], 1e-14)
}

// Refinement must not be worse than a plain LU solve on an ill
// conditioned Vandermonde system.
func TestSolveRefined(t *testing.T) {
	n := 8
	nodes := make([]float64, n)
	for i := range nodes {
		nodes[i] = float64(i) / float64(n-1)
	}
	v := Vandermonde(nodes)

	// b = V * ones, so the exact solution is all ones.
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	b := v.MultVector(ones)

	plain := v.SolveVector(b)
	refined := v.SolveRefined(b)

	errPlain, errRefined := 0.0, 0.0
	for i := 0; i < n; i++ {
		errPlain += math.Abs(plain[i] - 1)
		errRefined += math.Abs(refined[i] - 1)
	}
	assert.Less(t, errRefined, 1e-8)
	assert.LessOrEqual(t, errRefined, errPlain*1.000001+1e-12)
}

func TestPanicsOnBadShapes(t *testing.T) {
	assert.Panics(t, func() { NewMatrix([]float64{1, 2, 3}, 2, 2) })
	assert.Panics(t, func() {
		NewMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2).LU()
	})
	m := NewMatrix([]float64{1, 0, 0, 1}, 2, 2)
	assert.Panics(t, func() { m.SolveVector([]float64{1}) })
}
