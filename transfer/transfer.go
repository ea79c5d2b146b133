/*Package transfer builds the monotone bijections that warp a uniform grid
into a nonuniform one. Given f' on [a, b], the canonical "sinh" transfer

	g(x) = a + (b-a) * int_a^x (1+f'(t)^2)^(-1/2) dt
	             / int_a^b (1+f'(t)^2)^(-1/2) dt

concentrates grid points where f varies rapidly. The true inverse of g is
too slow for a table hash, so g^{-1} is approximated by a cubic polynomial
q whose coefficients are finally rescaled ("fused") so that one Horner
evaluation of q at x yields piece index plus local coordinate directly.

To keep the runtime and the offline grid generator consistent, g itself is
redefined as the Newton-with-bisection inverse of q: the grid is built
from the polynomial actually used by the hash, not from the integral.
*/
package transfer

import (
	"fmt"
	"math"

	"github.com/shawn-mcadam/functab/math/mat"
	"github.com/shawn-mcadam/functab/math/quad"
	"github.com/shawn-mcadam/functab/math/root"
)

// NumCoefs is the number of coefficients of the polynomial approximating
// g^{-1}, i.e. its degree plus one.
const NumCoefs = 4

// Acceptance tolerance on |q(a)-a| and |q(b)-b|, and the convergence
// tolerance of the Newton inversions.
const tol = 1e-4

// Number of equispaced probes used to verify q is monotone.
const monotoneProbes = 50

// Func is a transfer function pair: g computed on demand by inverting the
// stored polynomial, and the fused polynomial the table hash evaluates.
type Func struct {
	minArg, tableMaxArg float64
	stepSize            float64

	// fused coefficients: raw coefficients shifted by -minArg and scaled
	// by 1/stepSize so that the integer part of the Horner evaluation is
	// the piece index.
	coefs [NumCoefs]float64
	// unbaked approximation of g^{-1} and its derivative.
	raw   [NumCoefs]float64
	prime [NumCoefs - 1]float64

	method string
}

type approxMethod struct {
	name  string
	build func(g, gp root.Func, a, b float64) [NumCoefs]float64
}

// NewSinh builds the transfer function pair for a function with the given
// first derivative over [minArg, tableMaxArg]. Candidate approximations
// of g^{-1} are tried in order of decreasing accuracy; a candidate is
// accepted iff it reproduces both endpoints within tolerance and is
// monotone non-decreasing at equispaced probes. If every candidate fails,
// NewSinh returns a conditioning error.
func NewSinh(fprime func(float64) float64, minArg, tableMaxArg, stepSize float64) (*Func, error) {
	a, b := minArg, tableMaxArg

	// Arc-length density of f; more grid points go where it is small.
	w := func(x float64) float64 {
		fp := fprime(x)
		return 1 / math.Sqrt(1+fp*fp)
	}
	qtol := math.Sqrt(2.220446049250313e-16)
	c := quad.GaussKronrod(w, a, b, qtol)

	// The exact transfer function and its derivative, used only offline.
	g := func(x float64) float64 {
		if x <= a {
			return a
		}
		if x >= b {
			return b
		}
		return a + (b-a)*quad.GaussKronrod(w, a, x, qtol)/c
	}
	gp := func(x float64) float64 {
		return (b - a) * w(x) / c
	}

	methods := []approxMethod{
		{"inverse_poly_interior_slopes_interp", inversePolyInteriorSlopes},
		{"inverse_poly_interp", inversePolyInterp},
		{"inverse_hermite_interp", inverseHermiteInterp},
	}

	t := &Func{minArg: a, tableMaxArg: b, stepSize: stepSize}
	accepted := false
	for _, m := range methods {
		t.raw = m.build(g, gp, a, b)
		t.method = m.name
		if t.acceptable() {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil, fmt.Errorf(
			"transfer: every polynomial approximation of g^-1 with %d "+
				"coefficients over [%g, %g] is too poorly conditioned",
			NumCoefs, a, b)
	}

	t.finish()
	return t, nil
}

// FromCoefs rebuilds a transfer function from persisted fused
// coefficients.
func FromCoefs(coefs [NumCoefs]float64, minArg, tableMaxArg, stepSize float64) *Func {
	t := &Func{
		minArg:      minArg,
		tableMaxArg: tableMaxArg,
		stepSize:    stepSize,
		coefs:       coefs,
		method:      "persisted",
	}
	// Unbake: the fused coefficients are raw/stepSize with the constant
	// term additionally shifted by -minArg.
	for k := 0; k < NumCoefs; k++ {
		t.raw[k] = coefs[k] * stepSize
	}
	t.raw[0] += minArg
	for j := 1; j < NumCoefs; j++ {
		t.prime[j-1] = float64(j) * t.raw[j]
	}
	return t
}

// acceptable checks the endpoint and monotonicity conditions on the raw
// candidate.
func (t *Func) acceptable() bool {
	a, b := t.minArg, t.tableMaxArg
	if math.Abs(t.rawEval(a)-a) > tol || math.Abs(t.rawEval(b)-b) > tol {
		return false
	}
	prev := t.rawEval(a)
	for i := 1; i < monotoneProbes; i++ {
		x := a + (b-a)*float64(i)/float64(monotoneProbes-1)
		cur := t.rawEval(x)
		if cur < prev {
			return false
		}
		prev = cur
	}
	return true
}

// finish differentiates the accepted candidate and bakes the table hash
// into the stored coefficients.
func (t *Func) finish() {
	for j := 1; j < NumCoefs; j++ {
		t.prime[j-1] = float64(j) * t.raw[j]
	}
	t.coefs = t.raw
	t.coefs[0] -= t.minArg
	for k := 0; k < NumCoefs; k++ {
		t.coefs[k] /= t.stepSize
	}
}

func (t *Func) rawEval(x float64) float64 {
	sum := x * t.raw[NumCoefs-1]
	for k := NumCoefs - 2; k > 0; k-- {
		sum = x * (t.raw[k] + sum)
	}
	return sum + t.raw[0]
}

func (t *Func) rawPrime(x float64) float64 {
	sum := x * t.prime[NumCoefs-2]
	for k := NumCoefs - 3; k > 0; k-- {
		sum = x * (t.prime[k] + sum)
	}
	return sum + t.prime[0]
}

// G maps the uniform grid point x to its warped position. It is the exact
// inverse of the stored polynomial approximation, computed by guarded
// Newton iteration; tables call it during construction only.
func (t *Func) G(x float64) float64 {
	if x <= t.minArg {
		return t.minArg
	}
	if x >= t.tableMaxArg {
		return t.tableMaxArg
	}
	return root.NewtonBisect(t.rawEval, t.rawPrime, x, t.minArg, t.tableMaxArg, tol)
}

// InverseFused evaluates the fused approximation of g^{-1} at x: the
// integer part of the result is the piece index and the fractional part
// is the local coordinate. One Horner pass.
func (t *Func) InverseFused(x float64) float64 {
	sum := x * t.coefs[NumCoefs-1]
	for k := NumCoefs - 2; k > 0; k-- {
		sum = x * (t.coefs[k] + sum)
	}
	return sum + t.coefs[0]
}

// Coefs returns the fused coefficients, the only state a descriptor needs
// to rebuild the transfer function.
func (t *Func) Coefs() [NumCoefs]float64 { return t.coefs }

// Method returns the name of the accepted approximation method.
func (t *Func) Method() string { return t.method }

// gspace returns n points y_0 < ... < y_{n-1} in [a, b] such that the
// images g(y_i) are equispaced. The endpoints are fixed by g(a)=a and
// g(b)=b; interior points are found by inverting g.
func gspace(n int, g, gp root.Func, a, b float64) []float64 {
	ys := make([]float64, n)
	ys[0] = a
	for i := 1; i < n-1; i++ {
		target := a + (b-a)*float64(i)/float64(n-1)
		ys[i] = root.NewtonBisect(g, gp, target, a, b, tol)
	}
	ys[n-1] = b
	return ys
}

// linspace returns n equispaced points from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return xs
}

// inversePolyInterp interpolates g^{-1} through NumCoefs samples: the
// Vandermonde system q(s_i) = y_i at equispaced s_i with g(y_i) = s_i.
func inversePolyInterp(g, gp root.Func, a, b float64) [NumCoefs]float64 {
	nodes := linspace(a, b, NumCoefs)
	ys := gspace(NumCoefs, g, gp, a, b)

	sol := mat.Vandermonde(nodes).SolveRefined(ys)

	var coefs [NumCoefs]float64
	copy(coefs[:], sol)
	return coefs
}

// inversePolyInteriorSlopes interpolates g^{-1} through NumCoefs/2+1
// samples and additionally matches the slope 1/g'(y_i) at the interior
// samples, giving a Vandermonde system augmented with derivative rows.
func inversePolyInteriorSlopes(g, gp root.Func, a, b float64) [NumCoefs]float64 {
	m := NumCoefs/2 + 1
	nodes := linspace(a, b, m)
	ys := gspace(m, g, gp, a, b)

	vals := make([]float64, NumCoefs*NumCoefs)
	rhs := make([]float64, NumCoefs)

	// Value rows.
	for i := 0; i < m; i++ {
		p := 1.0
		for j := 0; j < NumCoefs; j++ {
			vals[i*NumCoefs+j] = p
			p *= nodes[i]
		}
		rhs[i] = ys[i]
	}
	// Derivative rows at the interior nodes.
	for i := 1; i < m-1; i++ {
		row := m + i - 1
		for j := 1; j < NumCoefs; j++ {
			vals[row*NumCoefs+j] = float64(j) * math.Pow(nodes[i], float64(j-1))
		}
		rhs[row] = 1 / gp(ys[i])
	}

	sol := mat.NewMatrix(vals, NumCoefs, NumCoefs).SolveRefined(rhs)

	var coefs [NumCoefs]float64
	copy(coefs[:], sol)
	return coefs
}

// inverseHermiteInterp interpolates g^{-1} through NumCoefs-2 samples and
// matches the slopes 1/g'(y) at the two endpoints.
func inverseHermiteInterp(g, gp root.Func, a, b float64) [NumCoefs]float64 {
	m := NumCoefs - 2
	nodes := linspace(a, b, m)
	ys := gspace(m, g, gp, a, b)

	vals := make([]float64, NumCoefs*NumCoefs)
	rhs := make([]float64, NumCoefs)

	for i := 0; i < m; i++ {
		p := 1.0
		for j := 0; j < NumCoefs; j++ {
			vals[i*NumCoefs+j] = p
			p *= nodes[i]
		}
		rhs[i] = ys[i]
	}
	for k, i := range []int{0, m - 1} {
		row := m + k
		for j := 1; j < NumCoefs; j++ {
			vals[row*NumCoefs+j] = float64(j) * math.Pow(nodes[i], float64(j-1))
		}
		rhs[row] = 1 / gp(ys[i])
	}

	sol := mat.NewMatrix(vals, NumCoefs, NumCoefs).SolveRefined(rhs)

	var coefs [NumCoefs]float64
	copy(coefs[:], sol)
	return coefs
}
