package functab

import (
	"fmt"

	"github.com/shawn-mcadam/functab/math/mat"
)

// The interpolation families sample f at equispaced nodes inside each
// subinterval and store the monomial coefficients of the interpolant in
// the local coordinate t = (x - x_k)/h_k, so evaluation is the shared
// hash plus one Horner pass.

// forEachPiece hands the family the left edge and width of every
// non-sentinel subinterval, then writes the sentinel.
func (t *Table) forEachPiece(f Func, fill func(dst []float64, x, h float64)) {
	for i := 0; i < t.nIntervals; i++ {
		x := t.minArg + float64(i)*t.stepSize
		h := t.stepSize
		if t.kind == NonUniform {
			x0 := t.tf.G(x)
			h = t.tf.G(x+t.stepSize) - x0
			x = x0
		}
		fill(t.piece(i), x, h)
	}
	t.fillSentinel(f)
}

func linearInterpBuilder(kind GridKind) Builder {
	op := kind.String() + "LinearInterpolationTable"
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, kind, spec, par, 2, 2)
		if err != nil {
			return nil, err
		}
		f := spec.Function()
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			y0, y1 := f(x), f(x+h)
			dst[0] = y0
			dst[1] = y1 - y0
		})
		return t, nil
	}
}

func quadraticInterpBuilder(kind GridKind) Builder {
	op := kind.String() + "QuadraticInterpolationTable"
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, kind, spec, par, 3, 3)
		if err != nil {
			return nil, err
		}
		f := spec.Function()
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			y0, y1, y2 := f(x), f(x+h/2), f(x+h)
			dst[0] = y0
			dst[1] = -3*y0 + 4*y1 - y2
			dst[2] = 2*y0 - 4*y1 + 2*y2
		})
		return t, nil
	}
}

func cubicInterpBuilder(kind GridKind) Builder {
	op := kind.String() + "CubicInterpolationTable"
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, kind, spec, par, 4, 4)
		if err != nil {
			return nil, err
		}
		f := spec.Function()
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			y0, y1, y2, y3 := f(x), f(x+h/3), f(x+2*h/3), f(x+h)
			dst[0] = y0
			dst[1] = -5.5*y0 + 9*y1 - 4.5*y2 + y3
			dst[2] = 9*y0 - 22.5*y1 + 18*y2 - 4.5*y3
			dst[3] = -4.5*y0 + 13.5*y1 - 13.5*y2 + 4.5*y3
		})
		return t, nil
	}
}

// vandermondeInterpBuilder covers the degree 4 to 7 interpolants, where
// hand-expanded node formulas stop being worth it. One Vandermonde system
// over the unit nodes is LU factored per table and back-substituted per
// piece.
func vandermondeInterpBuilder(degree int) Builder {
	op := fmt.Sprintf("UniformVandermondeInterpolationTable<%d>", degree)
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, Uniform, spec, par, degree+1, degree+1)
		if err != nil {
			return nil, err
		}
		f := spec.Function()

		nodes := make([]float64, degree+1)
		for j := range nodes {
			nodes[j] = float64(j) / float64(degree)
		}
		lu := mat.Vandermonde(nodes).LU()

		ys := make([]float64, degree+1)
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			for j := range ys {
				ys[j] = f(x + h*nodes[j])
			}
			lu.SolveVector(ys, dst)
		})
		return t, nil
	}
}

func init() {
	for _, kind := range []GridKind{Uniform, NonUniform} {
		register(kind.String()+"LinearInterpolationTable",
			familyInfo{ncoefs: 2, order: 2}, linearInterpBuilder(kind))
		register(kind.String()+"QuadraticInterpolationTable",
			familyInfo{ncoefs: 3, order: 3}, quadraticInterpBuilder(kind))
		register(kind.String()+"CubicInterpolationTable",
			familyInfo{ncoefs: 4, order: 4}, cubicInterpBuilder(kind))
	}
	for degree := 4; degree <= 7; degree++ {
		register(fmt.Sprintf("UniformVandermondeInterpolationTable<%d>", degree),
			familyInfo{ncoefs: degree + 1, order: degree + 1},
			vandermondeInterpBuilder(degree))
	}
}
