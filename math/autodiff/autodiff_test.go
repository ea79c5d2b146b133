package autodiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDualArithmetic(t *testing.T) {
	x := NewDualVar(2)

	// d/dx (x*x + 3x) = 2x + 3
	y := x.Mul(x).Add(x.Scale(3))
	assert.InDelta(t, 10, y.Real, 1e-15)
	assert.InDelta(t, 7, y.Emag, 1e-15)

	// d/dx (1/x) = -1/x^2
	inv := DualConst(1).Div(x)
	assert.InDelta(t, 0.5, inv.Real, 1e-15)
	assert.InDelta(t, -0.25, inv.Emag, 1e-15)
}

func TestDualElementary(t *testing.T) {
	x := NewDualVar(0.7)

	s := DualSin(x)
	assert.InDelta(t, math.Sin(0.7), s.Real, 1e-15)
	assert.InDelta(t, math.Cos(0.7), s.Emag, 1e-15)

	e := DualExp(x)
	assert.InDelta(t, math.Exp(0.7), e.Real, 1e-15)
	assert.InDelta(t, math.Exp(0.7), e.Emag, 1e-15)

	l := DualLog(x)
	assert.InDelta(t, math.Log(0.7), l.Real, 1e-15)
	assert.InDelta(t, 1/0.7, l.Emag, 1e-15)

	q := DualSqrt(x)
	assert.InDelta(t, math.Sqrt(0.7), q.Real, 1e-15)
	assert.InDelta(t, 0.5/math.Sqrt(0.7), q.Emag, 1e-15)

	tn := DualTan(x)
	c := math.Cos(0.7)
	assert.InDelta(t, math.Tan(0.7), tn.Real, 1e-15)
	assert.InDelta(t, 1/(c*c), tn.Emag, 1e-14)

	p := DualPowReal(x, 2.5)
	assert.InDelta(t, math.Pow(0.7, 2.5), p.Real, 1e-15)
	assert.InDelta(t, 2.5*math.Pow(0.7, 1.5), p.Emag, 1e-14)
}

func TestJetMatchesDual(t *testing.T) {
	x := 0.37
	d := DualExp(NewDualVar(x).Mul(NewDualVar(x)))
	j := JetExp(NewJetVar(x, 1).Mul(NewJetVar(x, 1)))
	assert.InDelta(t, d.Real, j.Value(), 1e-15)
	assert.InDelta(t, d.Emag, j.Derivative(1), 1e-14)
}

// sin derivatives cycle with period four, which pins every jet order.
func TestJetSinDerivatives(t *testing.T) {
	x := 0.9
	j := JetSin(NewJetVar(x, 6))

	want := []float64{
		math.Sin(x), math.Cos(x), -math.Sin(x), -math.Cos(x),
		math.Sin(x), math.Cos(x), -math.Sin(x),
	}
	for k, w := range want {
		assert.InDelta(t, w, j.Derivative(k), 1e-12, "order %d", k)
	}
}

func TestJetExpDerivatives(t *testing.T) {
	x := 0.4
	j := JetExp(NewJetVar(x, 5))
	for k := 0; k <= 5; k++ {
		assert.InDelta(t, math.Exp(x), j.Derivative(k), 1e-12, "order %d", k)
	}
}

func TestJetQuotientRule(t *testing.T) {
	// f = 1/(1+x^2): f'(x) = -2x/(1+x^2)^2.
	x := 0.6
	v := NewJetVar(x, 2)
	f := NewJetConst(1, 2).Div(v.Mul(v).AddConst(1))

	d := 1 + x*x
	assert.InDelta(t, 1/d, f.Value(), 1e-15)
	assert.InDelta(t, -2*x/(d*d), f.Derivative(1), 1e-14)
	assert.InDelta(t, (6*x*x-2)/(d*d*d), f.Derivative(2), 1e-13)
}

func TestJetLogSqrtPow(t *testing.T) {
	x := 1.7
	l := JetLog(NewJetVar(x, 3))
	assert.InDelta(t, math.Log(x), l.Value(), 1e-15)
	assert.InDelta(t, 1/x, l.Derivative(1), 1e-14)
	assert.InDelta(t, -1/(x*x), l.Derivative(2), 1e-13)
	assert.InDelta(t, 2/(x*x*x), l.Derivative(3), 1e-13)

	s := JetSqrt(NewJetVar(x, 2))
	assert.InDelta(t, math.Sqrt(x), s.Value(), 1e-15)
	assert.InDelta(t, 0.5/math.Sqrt(x), s.Derivative(1), 1e-14)

	p := JetPowReal(NewJetVar(x, 2), 3.5)
	assert.InDelta(t, math.Pow(x, 3.5), p.Value(), 1e-12)
	assert.InDelta(t, 3.5*math.Pow(x, 2.5), p.Derivative(1), 1e-11)

	n := PowInt(NewJetVar(x, 2), 3)
	assert.InDelta(t, x*x*x, n.Value(), 1e-13)
	assert.InDelta(t, 3*x*x, n.Derivative(1), 1e-13)
	assert.InDelta(t, 6*x, n.Derivative(2), 1e-13)
}

func TestJetTan(t *testing.T) {
	x := 0.8
	j := JetTan(NewJetVar(x, 3))
	c := math.Cos(x)
	assert.InDelta(t, math.Tan(x), j.Value(), 1e-14)
	assert.InDelta(t, 1/(c*c), j.Derivative(1), 1e-12)
	assert.InDelta(t, 2*math.Tan(x)/(c*c), j.Derivative(2), 1e-11)
}

func TestJetOrderBounds(t *testing.T) {
	assert.Panics(t, func() { NewJetConst(1, MaxJetOrder+1) })
	assert.Panics(t, func() { NewJetConst(1, -1) })
	assert.NotPanics(t, func() { NewJetVar(0, MaxJetOrder) })
}
