package functab

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shawn-mcadam/functab/math/autodiff"
)

func tanSpec() *FunctionSpec {
	return NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetTan(x)
	}, autodiff.MaxJetOrder)
}

// Pade [2/1] on tan over [0, 1.4]: the denominators must not vanish
// inside any piece, and evaluation away from the nodes must track tan.
func TestPadeOnTan(t *testing.T) {
	tab, err := NewTable("UniformPadeTable<2,1>", tanSpec(),
		Params{MinArg: 0, MaxArg: 1.4, StepSize: 0.05})
	assert.NoError(t, err)

	// Grid nodes carry the expansion point, so they are exact; 0.7 is a
	// node here.
	assert.InDelta(t, math.Tan(0.7), tab.Eval(0.7), 1e-8)

	// No denominator root reachable inside any piece: Q must stay
	// positive over the half-step each piece covers.
	h := tab.StepSize()
	m, n := 2, 1
	for i := 0; i < tab.NumTableEntries(); i++ {
		lo, hi := -h/2, h/2
		if i == 0 {
			lo = 0
		}
		if i == tab.NumIntervals() {
			hi = 0
		}
		for s := 0; s <= 16; s++ {
			dx := lo + (hi-lo)*float64(s)/16
			q := 1.0
			for k := 1; k <= n; k++ {
				q += tab.Entry(i, m+k) * math.Pow(dx, float64(k))
			}
			assert.Greater(t, q, 0.0, "piece %d at dx=%g", i, dx)
		}
	}

	// tan steepens brutally toward 1.4; the rational pieces must still
	// track it.
	worst := maxAbsError(math.Tan, tab.Eval, 0, 1.4, 2000)
	assert.Less(t, worst, 1e-2)
	nearZero := maxAbsError(math.Tan, tab.Eval, 0, 1, 1000)
	assert.Less(t, nearZero, 1e-5)
}

// A rational [1/1] approximant reproduces 1/(1+x) exactly, fallback-free.
func TestPadeExactOnRational(t *testing.T) {
	spec := NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		one := autodiff.NewJetConst(1, x.Order())
		return one.Div(x.AddConst(1))
	}, autodiff.MaxJetOrder)

	tab, err := NewTable("UniformPadeTable<1,1>", spec,
		Params{MinArg: 0, MaxArg: 1, StepSize: 0.25})
	assert.NoError(t, err)

	f := func(x float64) float64 { return 1 / (1 + x) }
	for _, x := range []float64{0, 0.1, 0.37, 0.5, 0.88, 1} {
		assert.InDelta(t, f(x), tab.Eval(x), 1e-13, "x = %g", x)
	}
}

// An odd function degenerates the [1/1] denominator at the origin; the
// table must handle it and stay at Taylor accuracy.
func TestPadeDegenerateDenominator(t *testing.T) {
	spec := NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetSin(x)
	}, autodiff.MaxJetOrder)

	tab, err := NewTable("UniformPadeTable<1,1>", spec,
		Params{MinArg: -0.5, MaxArg: 0.5, StepSize: 0.125})
	assert.NoError(t, err)
	worst := maxAbsError(math.Sin, tab.Eval, -0.5, 0.5, 1000)
	assert.Less(t, worst, 1e-4)
}
