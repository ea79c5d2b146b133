/*Package functab replaces repeated evaluation of an expensive scalar
function with a precomputed piecewise polynomial lookup table. A table maps
an argument to one polynomial piece in O(1) and evaluates that piece with a
single Horner pass, over either a uniform grid or a nonuniform grid shaped
by a transfer function.

Tables are built by family name through NewTable or a Generator, are
immutable after construction, and can be persisted to a JSON descriptor
and rebuilt without re-evaluating the underlying function.
*/
package functab

import (
	"math"

	"github.com/shawn-mcadam/functab/transfer"
)

// GridKind selects how grid points are spaced.
type GridKind int

const (
	// Uniform grids space every subinterval equally.
	Uniform GridKind = iota
	// NonUniform grids warp the subintervals with a transfer function
	// whose fused inverse keeps the hash O(1).
	NonUniform
)

// String returns the grid kind prefix used in family names.
func (k GridKind) String() string {
	switch k {
	case Uniform:
		return "Uniform"
	case NonUniform:
		return "NonUniformPseudo"
	default:
		panic("unknown grid kind.")
	}
}

// Params are the user-facing grid parameters of a lookup table.
type Params struct {
	MinArg, MaxArg float64
	StepSize       float64
}

type evalKind int

const (
	evalHorner evalKind = iota
	evalPade
)

// Table is a piecewise polynomial approximation of a function on
// [MinArg, MaxArg]. Immutable after construction; evaluation is pure and
// safe to share across goroutines.
type Table struct {
	name string
	kind GridKind
	eval evalKind

	minArg, maxArg float64
	stepSize       float64
	stepInv        float64
	tableMaxArg    float64

	order        int
	nIntervals   int
	nEntries     int
	ncoefs       int
	stride       int
	coefs        []float64
	padeM, padeN int

	tf *transfer.Func
}

// newTable validates the grid parameters and allocates the coefficient
// array, building the transfer function first for nonuniform grids. The
// caller fills the pieces and the sentinel.
func newTable(op, name string, kind GridKind, spec *FunctionSpec,
	par Params, ncoefs, order int) (*Table, error) {

	if err := spec.checkFunction(op); err != nil {
		return nil, err
	}
	if par.StepSize <= 0 {
		return nil, newError(ErrBadArgument, op,
			"stepSize must be positive, got %g", par.StepSize)
	}
	if par.MaxArg <= par.MinArg {
		return nil, newError(ErrBadArgument, op,
			"maxArg (%g) must exceed minArg (%g)", par.MaxArg, par.MinArg)
	}

	t := &Table{
		name:     name,
		kind:     kind,
		minArg:   par.MinArg,
		maxArg:   par.MaxArg,
		stepSize: par.StepSize,
		stepInv:  1 / par.StepSize,
		order:    order,
		ncoefs:   ncoefs,
		stride:   coefStride(ncoefs),
	}
	t.nIntervals = int(math.Ceil(t.stepInv * (t.maxArg - t.minArg)))
	t.tableMaxArg = t.minArg + t.stepSize*float64(t.nIntervals)
	t.nEntries = t.nIntervals + 1
	t.coefs = make([]float64, t.nEntries*t.stride)

	if kind == NonUniform {
		d, err := spec.derivatives(op, 1)
		if err != nil {
			return nil, err
		}
		fprime := func(x float64) float64 { return d(x)[1] }
		tf, err := transfer.NewSinh(fprime, t.minArg, t.tableMaxArg, t.stepSize)
		if err != nil {
			return nil, wrapError(ErrConditioning, op, err,
				"no transfer function approximation was accepted")
		}
		t.tf = tf
	}
	return t, nil
}

// fillSentinel writes the extra last piece, whose only nonzero coefficient
// is f(tableMaxArg). It makes evaluation at the table max total: when the
// step divides the domain exactly, the hash at maxArg lands here.
func (t *Table) fillSentinel(f Func) {
	base := t.nIntervals * t.stride
	for k := 0; k < t.ncoefs; k++ {
		t.coefs[base+k] = 0
	}
	t.coefs[base] = f(t.tableMaxArg)
}

// gridPoint returns the left edge of subinterval k.
func (t *Table) gridPoint(k int) float64 {
	x := t.minArg + float64(k)*t.stepSize
	if t.kind == NonUniform {
		return t.tf.G(x)
	}
	return x
}

// piece returns the coefficient slice of entry i.
func (t *Table) piece(i int) []float64 {
	base := i * t.stride
	return t.coefs[base : base+t.ncoefs]
}

// Eval returns the table's approximation of f(x).
//
// x must lie in [MinArg, TableMaxArg]; on (MaxArg, TableMaxArg] the
// sentinel piece's value is returned. Pade tables instead evaluate the
// piece centred on the nearest grid node there. Out of domain arguments are the
// caller's responsibility and never raise. For nonuniform tables the piece
// index comes from the fused polynomial approximation of the transfer
// inverse, which trades a little interpolation accuracy for a hash as
// cheap as the uniform one.
func (t *Table) Eval(x float64) float64 {
	if t.eval == evalPade {
		return t.evalPadeAt(x)
	}

	var dx float64
	if t.kind == Uniform {
		dx = (x - t.minArg) * t.stepInv
	} else {
		dx = t.tf.InverseFused(x)
	}
	i := int(dx)
	if i > t.nIntervals || x > t.maxArg {
		i = t.nIntervals
	} else if i < 0 {
		i = 0
	}
	return horner(t.piece(i), dx-float64(i))
}

// evalPadeAt evaluates a rational piece: two Horner passes and a divide.
// Pade pieces are centred on their grid node, so the hash rounds to the
// nearest node and the local variable stays in physical units.
func (t *Table) evalPadeAt(x float64) float64 {
	dx := x - t.minArg
	i := int(dx*t.stepInv + 0.5)
	if i > t.nIntervals {
		i = t.nIntervals
	} else if i < 0 {
		i = 0
	}
	dx -= float64(i) * t.stepSize

	coefs := t.piece(i)
	m, n := t.padeM, t.padeN

	p := dx * coefs[m]
	for k := m - 1; k > 0; k-- {
		p = dx * (coefs[k] + p)
	}
	p += coefs[0]

	q := dx * coefs[m+n]
	for k := n - 1; k > 0; k-- {
		q = dx * (coefs[m+k] + q)
	}
	// The constant term of Q is always 1.
	return p / (1 + q)
}

// BoundsOfSubinterval returns the argument bounds of subinterval i.
func (t *Table) BoundsOfSubinterval(i int) (lo, hi float64) {
	return t.gridPoint(i), t.gridPoint(i + 1)
}

// Name returns the registered family name this table was built by.
func (t *Table) Name() string { return t.name }

// Kind returns the table's grid kind.
func (t *Table) Kind() GridKind { return t.kind }

// MinArg returns the lower bound of evaluation.
func (t *Table) MinArg() float64 { return t.minArg }

// MaxArg returns the user-requested upper bound of evaluation.
func (t *Table) MaxArg() float64 { return t.maxArg }

// TableMaxArg returns the table's true upper bound, which exceeds MaxArg
// when the step size does not divide the domain exactly.
func (t *Table) TableMaxArg() float64 { return t.tableMaxArg }

// StepSize returns the grid spacing.
func (t *Table) StepSize() float64 { return t.stepSize }

// Order returns the order of accuracy of the family.
func (t *Table) Order() int { return t.order }

// NumIntervals returns the number of grid subintervals.
func (t *Table) NumIntervals() int { return t.nIntervals }

// NumTableEntries returns the number of stored pieces, NumIntervals plus
// the sentinel.
func (t *Table) NumTableEntries() int { return t.nEntries }

// CoefsPerEntry returns the number of polynomial coefficients per piece.
func (t *Table) CoefsPerEntry() int { return t.ncoefs }

// Entry returns coefficient j of piece i.
func (t *Table) Entry(i, j int) float64 { return t.coefs[i*t.stride+j] }

// DataSize returns the size of the coefficient array in bytes.
func (t *Table) DataSize() int { return 8 * len(t.coefs) }

// TransferCoefs returns the fused transfer inverse coefficients, or zeros
// for uniform tables.
func (t *Table) TransferCoefs() [transfer.NumCoefs]float64 {
	if t.tf == nil {
		return [transfer.NumCoefs]float64{}
	}
	return t.tf.Coefs()
}
