/*root contains the one dimensional root finding and minimisation routines
used by the table generator and the transfer functions: a bracketing solver
in the style of TOMS algorithm 748, Brent's minimisation method, and a
guarded Newton iteration that falls back to bracketing.
*/
package root

import (
	"fmt"
	"math"
)

// Func is a scalar function of one variable.
type Func func(float64) float64

// Toms748 finds a root of f inside the bracket [a, b], where fa = f(a) and
// fb = f(b) have already been evaluated and must have opposite signs. It
// interleaves inverse quadratic and secant steps with bisection safeguards
// so the bracket shrinks on every iteration.
//
// The returned pair is the final bracket: f has a sign change inside
// [lo, hi] and hi-lo <= rtol*max(1, |lo|) unless maxIter was exhausted
// first.
func Toms748(f Func, a, b, fa, fb, rtol float64, maxIter int) (lo, hi float64, err error) {
	if a > b {
		a, b = b, a
		fa, fb = fb, fa
	}
	if fa == 0 {
		return a, a, nil
	}
	if fb == 0 {
		return b, b, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return a, b, fmt.Errorf(
			"root: no sign change in bracket [%g, %g]: f(a)=%g, f(b)=%g",
			a, b, fa, fb,
		)
	}
	if rtol <= 0 {
		rtol = 4 * math.SmallestNonzeroFloat64
	}

	// Previous point for inverse quadratic steps.
	c, fc := a, fa

	for it := 0; it < maxIter; it++ {
		if b-a <= rtol*math.Max(1, math.Abs(a)) {
			return a, b, nil
		}
		prevWidth := b - a

		var x float64
		usedInterp := false
		if fc != fa && fc != fb {
			// Inverse quadratic interpolation.
			x = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
			usedInterp = x > a && x < b
		}
		if !usedInterp {
			// Secant step.
			x = b - fb*(b-a)/(fb-fa)
			usedInterp = x > a && x < b
		}

		mid := 0.5 * (a + b)
		if !usedInterp {
			x = mid
		} else {
			// Guard against stagnation near an endpoint.
			w := rtol * math.Max(1, math.Abs(mid)) / 2
			if x-a < w {
				x = a + w
			} else if b-x < w {
				x = b - w
			}
		}

		fx := f(x)
		if fx == 0 {
			return x, x, nil
		}
		c, fc = b, fb
		if math.Signbit(fx) == math.Signbit(fa) {
			a, fa = x, fx
		} else {
			b, fb = x, fx
		}

		// If interpolation failed to halve the bracket, bisect.
		if b-a > 0.5*prevWidth {
			mid = 0.5 * (a + b)
			fm := f(mid)
			if fm == 0 {
				return mid, mid, nil
			}
			if math.Signbit(fm) == math.Signbit(fa) {
				a, fa = mid, fm
			} else {
				b, fb = mid, fm
			}
		}
		lo, hi = a, b
	}
	return a, b, nil
}

// BrentMinimize locates a local minimum of f on [a, b] using Brent's
// method (golden section search with parabolic interpolation steps).
// It returns the abscissa and the minimum value found after at most
// maxIter iterations.
func BrentMinimize(f Func, a, b float64, maxIter int) (xmin, fmin float64) {
	const cgold = 0.3819660112501051 // golden section fraction
	tol := math.Sqrt(math.Nextafter(1, 2) - 1)

	x := a + cgold*(b-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx

	var d, e float64
	for it := 0; it < maxIter; it++ {
		mid := 0.5 * (a + b)
		tol1 := tol*math.Abs(x) + 1e-300
		tol2 := 2 * tol1

		if math.Abs(x-mid) <= tol2-0.5*(b-a) {
			break
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// Fit a parabola through (v, fv), (w, fw), (x, fx).
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			etmp := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*etmp) &&
				p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, mid-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x >= mid {
				e = a - x
			} else {
				e = b - x
			}
			d = cgold * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu := f(u)

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return x, fx
}

// NewtonBisect solves f(x) = z for x in [a, b] given f's derivative fp.
// It iterates Newton's method while the steps behave and hard-switches to
// bracketed root finding when the derivative vanishes, the iterate leaves
// [a, b], or convergence stalls. f must be monotone on [a, b].
func NewtonBisect(f, fp Func, z, a, b, tol float64) float64 {
	const maxNewton = 20
	const maxBracket = 54

	x := math.Min(math.Max(z, a), b)
	for it := 0; it < maxNewton; it++ {
		dfdx := fp(x)
		if dfdx == 0 {
			break
		}
		x0 := x
		x = x - (f(x)-z)/dfdx
		if x < a || x > b {
			x = x0
			break
		}
		if math.Abs(x0-x) <= tol {
			return x
		}
	}

	shifted := func(h float64) float64 { return f(h) - z }
	lo, hi, err := Toms748(shifted, a, b, f(a)-z, f(b)-z, 0, maxBracket)
	if err != nil {
		// No sign change: z is (numerically) outside [f(a), f(b)].
		if math.Abs(f(a)-z) < math.Abs(f(b)-z) {
			return a
		}
		return b
	}
	return 0.5 * (lo + hi)
}
