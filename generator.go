package functab

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/shawn-mcadam/functab/math/root"
)

// Generator builds lookup tables over a fixed domain when the caller
// knows a tolerance or a memory budget instead of a step size.
type Generator struct {
	spec           *FunctionSpec
	minArg, maxArg float64
}

const (
	// Brent iterations per subinterval when measuring worst-case error.
	maxBrentIterations = 20
	// Log-space Newton steps in the tolerance solver. Zero: the
	// bracketing phase carries the load.
	maxNewtonIterations = 0
	// TOMS-748 iterations in the bracketing phase.
	maxBracketIterations = 50

	newtonRelTol = 1e-5
	newtonAbsTol = 1e-10
)

// NewGenerator creates a generator for the given function spec on
// [minArg, maxArg].
func NewGenerator(spec *FunctionSpec, minArg, maxArg float64) *Generator {
	return &Generator{spec: spec, minArg: minArg, maxArg: maxArg}
}

// ByStep builds a table of the named family with the given step size.
func (g *Generator) ByStep(name string, stepSize float64) (*Table, error) {
	return NewTable(name, g.spec, Params{
		MinArg: g.minArg, MaxArg: g.maxArg, StepSize: stepSize,
	})
}

// ErrorAtStep returns the worst-case relative error of the named family
// at the given step size, measured against the spec's function.
func (g *Generator) ErrorAtStep(name string, stepSize float64) (float64, error) {
	return g.errorAtStep(name, stepSize)
}

// errorAtStep builds a probe table and minimises the negated relative
// error over each subinterval with Brent's method, one ULP inside the
// endpoints so grid nodes don't report their interpolation residual as
// interval error. The top interval may reach past maxArg, so it is
// clipped there rather than searched to the table max.
func (g *Generator) errorAtStep(name string, stepSize float64) (float64, error) {
	t, err := g.ByStep(name, stepSize)
	if err != nil {
		return 0, err
	}
	f := g.spec.Function()
	errAt := negRelativeError(f, t)

	maxErr := 0.0
	for ii := 0; ii < t.NumIntervals(); ii++ {
		lo, hi := t.BoundsOfSubinterval(ii)
		if hi > g.maxArg {
			hi = g.maxArg
		}
		x := math.Nextafter(lo, math.Inf(1))
		xtop := math.Nextafter(hi, math.Inf(-1))
		if xtop <= x {
			break
		}
		_, e := root.BrentMinimize(errAt, x, xtop, maxBrentIterations)
		if -e > maxErr {
			maxErr = -e
		}
	}
	return maxErr, nil
}

// negRelativeError returns the functor
//  e(x) = -2 |f(x) - t(x)| / (|f(x)| + |t(x)|),
// always non-positive so that minimising it finds the worst error. The
// combination is carried out with 64 bit mantissas to keep the small
// difference of two close float64 values from losing further bits.
func negRelativeError(f Func, t *Table) root.Func {
	two := big.NewFloat(2)
	return func(x float64) float64 {
		fv := new(big.Float).SetPrec(64).SetFloat64(f(x))
		tv := new(big.Float).SetPrec(64).SetFloat64(t.Eval(x))

		num := new(big.Float).SetPrec(64).Sub(fv, tv)
		num.Abs(num)
		den := new(big.Float).SetPrec(64).Add(fv.Abs(fv), tv.Abs(tv))
		if den.Sign() == 0 {
			return 0
		}
		num.Quo(num, den)
		num.Mul(num, two)
		e, _ := num.Float64()
		return -e
	}
}

// ByTolerance builds the coarsest table of the named family whose
// worst-case relative error stays below tol. The log-space Newton phase,
// which steps along the known error order E(h) ~ h^order, is capped at
// maxNewtonIterations (zero) and its step is not passed on; a TOMS-748
// bracket over (0, maxArg-minArg] pins the answer. The lower bracket end
// is taken so the returned table is guaranteed below tolerance.
func (g *Generator) ByTolerance(name string, tol float64) (*Table, error) {
	const op = "Generator.ByTolerance"
	width := g.maxArg - g.minArg

	coarse, err := g.ByStep(name, width)
	if err != nil {
		return nil, err
	}
	coarseErr, err := g.errorAtStep(name, width)
	if err != nil {
		return nil, err
	}
	// Hot path: one interval per table already suffices. Common for high
	// order families on small domains, where a bracket over (0, width]
	// could not improve on the coarsest step anyway.
	gmax := coarseErr - tol
	if gmax <= 0 {
		return coarse, nil
	}

	stepSize := width / 1000
	order := coarse.Order()
	logTol := math.Log(tol)
	for iNewton := 0; iNewton < maxNewtonIterations; iNewton++ {
		e, err := g.errorAtStep(name, stepSize)
		if err != nil {
			return nil, err
		}
		if math.Abs(e-tol) < tol*newtonRelTol+newtonAbsTol {
			break
		}
		stepSize = math.Exp(math.Log(stepSize) + (logTol-math.Log(e))/float64(order))
	}

	var stepErr error
	shifted := func(h float64) float64 {
		e, err := g.errorAtStep(name, h)
		if err != nil && stepErr == nil {
			stepErr = err
		}
		return e - tol
	}
	lo, hi, bracketErr := root.Toms748(
		shifted, 0, width, -tol, gmax, math.Pow(2, -23), maxBracketIterations)
	if stepErr != nil {
		return nil, stepErr
	}
	if bracketErr != nil {
		return nil, wrapError(ErrSolver, op, bracketErr,
			"no step size bracketing tolerance %g was found", tol)
	}
	if lo <= 0 {
		if e, err := g.errorAtStep(name, hi); err == nil && e <= tol {
			lo = hi
		} else {
			return nil, newError(ErrSolver, op,
				"bracketing failed to leave the h=0 endpoint for tolerance %g; "+
					"the tolerance may be below machine precision", tol)
		}
	}
	if lo >= width {
		return coarse, nil
	}
	return g.ByStep(name, lo)
}

// BySize builds a table of the named family whose coefficient array takes
// roughly sizeBudget bytes. Two probe tables linearise size as a function
// of interval count; the inversion is a first-order estimate and is not
// refined.
func (g *Generator) BySize(name string, sizeBudget int) (*Table, error) {
	const op = "Generator.BySize"
	const n1, n2 = 2, 10
	width := g.maxArg - g.minArg

	probe1, err := g.ByStep(name, width/n1)
	if err != nil {
		return nil, err
	}
	probe2, err := g.ByStep(name, width/n2)
	if err != nil {
		return nil, err
	}

	size1, size2 := probe1.DataSize(), probe2.DataSize()
	if size1 == size2 {
		return nil, newError(ErrBadArgument, op,
			"probe tables have the same size (%d bytes); cannot invert "+
				"the size budget %d", size1, sizeBudget)
	}

	intervals := n1 + float64(sizeBudget-size1)*(n2-n1)/float64(size2-size1)
	if intervals < 1 {
		intervals = 1
	}
	return g.ByStep(name, width/intervals)
}

// WriteComparison writes "# x func impl" columns comparing the named
// family at the given step size against the exact function, ten samples
// per subinterval.
func (g *Generator) WriteComparison(w io.Writer, name string, stepSize float64) error {
	t, err := g.ByStep(name, stepSize)
	if err != nil {
		return err
	}
	f := g.spec.Function()

	if _, err := fmt.Fprintln(w, "# x func impl"); err != nil {
		return err
	}
	for x := t.MinArg(); x < t.MaxArg(); x += t.StepSize() / 10 {
		_, err := fmt.Fprintf(w, "%g %g %g\n", x, f(x), t.Eval(x))
		if err != nil {
			return err
		}
	}
	return nil
}
