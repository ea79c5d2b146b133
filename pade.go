package functab

import (
	"fmt"
	"math"

	"github.com/shawn-mcadam/functab/math/mat"
)

// The Pade families store a rational [M/N] approximant per piece. Pieces
// are centred on their grid node: the numerator and denominator are
// expanded in the physical offset dx in [-h/2, h/2], the denominator is
// normalised so its constant term is 1, and evaluation is two Horner
// passes and one division.
//
// If the denominator has a root inside a piece, that piece falls back to
// the degree M Taylor polynomial.

// The registered [M/N] orders.
var padeOrders = [][2]int{
	{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {6, 1},
	{2, 2}, {3, 2}, {4, 2}, {5, 2},
	{3, 3}, {4, 3},
}

func padeName(m, n int) string {
	return fmt.Sprintf("UniformPadeTable<%d,%d>", m, n)
}

func padeBuilder(m, n int) Builder {
	op := padeName(m, n)
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, Uniform, spec, par, m+n+1, m+n+1)
		if err != nil {
			return nil, err
		}
		t.eval = evalPade
		t.padeM, t.padeN = m, n

		d, err := spec.derivatives(op, m+n)
		if err != nil {
			return nil, err
		}

		fact := make([]float64, m+n+1)
		fact[0] = 1
		for k := 1; k <= m+n; k++ {
			fact[k] = fact[k-1] * float64(k)
		}

		taylor := make([]float64, m+n+1)
		h := t.stepSize
		for ii := 0; ii <= t.nIntervals; ii++ {
			x := t.minArg + float64(ii)*h
			derivs := d(x)
			for k := 0; k <= m+n; k++ {
				taylor[k] = derivs[k] / fact[k]
			}

			p, q, ok := padeCoefs(taylor, m, n)
			if ok {
				// Reject denominators that vanish where this piece can be
				// hit: the full width for interior pieces, one side for
				// the corner pieces.
				lo, hi := -h/2, h/2
				if ii == 0 {
					lo = 0
				}
				if ii == t.nIntervals {
					hi = 0
				}
				if qHasRoot(q, lo, hi) {
					ok = false
				}
			}
			if !ok {
				// Taylor fallback on this piece.
				p = append([]float64(nil), taylor[:m+1]...)
				q = make([]float64, n)
			}

			dst := t.piece(ii)
			copy(dst[:m+1], p)
			copy(dst[m+1:], q)
		}
		return t, nil
	}
}

// padeCoefs computes the [M/N] approximant of the truncated Taylor series
// taylor[0..M+N]. The denominator comes from the null space of the Hankel
// block: with Q_0 pinned to 1, rows M+1..M+N of the convolution become the
// N x N linear system solved here. Returns ok=false when the system is
// singular or produces non-finite coefficients.
func padeCoefs(taylor []float64, m, n int) (p, q []float64, ok bool) {
	at := func(k int) float64 {
		if k < 0 {
			return 0
		}
		return taylor[k]
	}

	vals := make([]float64, n*n)
	rhs := make([]float64, n)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			vals[(i-1)*n+(j-1)] = at(m + i - j)
		}
		rhs[i-1] = -at(m + i)
	}
	q = mat.NewMatrix(vals, n, n).SolveVector(rhs)
	for _, c := range q {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, nil, false
		}
	}

	p = make([]float64, m+1)
	for k := 0; k <= m; k++ {
		sum := at(k)
		for j := 1; j <= n && j <= k; j++ {
			sum += at(k-j) * q[j-1]
		}
		p[k] = sum
	}
	return p, q, true
}

// qHasRoot reports whether 1 + q[0]*dx + ... + q[n-1]*dx^n vanishes
// anywhere on [lo, hi]. Closed form for degrees one and two, probing for
// degree three.
func qHasRoot(q []float64, lo, hi float64) bool {
	switch len(q) {
	case 1:
		if q[0] == 0 {
			return false
		}
		r := -1 / q[0]
		return lo <= r && r <= hi
	case 2:
		if q[1] == 0 {
			return qHasRoot(q[:1], lo, hi)
		}
		disc := q[0]*q[0] - 4*q[1]
		if disc < 0 {
			return false
		}
		s := math.Sqrt(disc)
		r1 := (-q[0] - s) / (2 * q[1])
		r2 := (-q[0] + s) / (2 * q[1])
		return (lo <= r1 && r1 <= hi) || (lo <= r2 && r2 <= hi)
	default:
		const probes = 64
		for i := 0; i <= probes; i++ {
			dx := lo + (hi-lo)*float64(i)/probes
			v := 0.0
			for k := len(q) - 1; k >= 0; k-- {
				v = (q[k] + v) * dx
			}
			if 1+v <= 0 {
				return true
			}
		}
		return false
	}
}

func init() {
	for _, mn := range padeOrders {
		m, n := mn[0], mn[1]
		register(padeName(m, n), familyInfo{
			ncoefs: m + n + 1,
			order:  m + n + 1,
			eval:   evalPade,
			padeM:  m,
			padeN:  n,
		}, padeBuilder(m, n))
	}
}
