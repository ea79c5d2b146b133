/*autodiff provides forward-mode automatic differentiation for scalar
functions of one variable. Dual numbers carry a value and one derivative;
jets carry a full truncated Taylor series and power the higher order table
families.

The arithmetic follows the dual number formulation popularised by Fike:
f(a + be) = f(a) + b f'(a) e with e*e = 0.
*/
package autodiff

import (
	"math"
)

// Dual is a dual number a + be. Evaluating a function built from Dual
// arithmetic at NewDualVar(x) leaves f(x) in Real and f'(x) in Emag.
type Dual struct {
	Real, Emag float64
}

// NewDualVar returns x as the independent variable of differentiation.
func NewDualVar(x float64) Dual { return Dual{Real: x, Emag: 1} }

// DualConst returns c as a constant with zero derivative.
func DualConst(c float64) Dual { return Dual{Real: c} }

// Add returns d + e.
func (d Dual) Add(e Dual) Dual { return Dual{d.Real + e.Real, d.Emag + e.Emag} }

// Sub returns d - e.
func (d Dual) Sub(e Dual) Dual { return Dual{d.Real - e.Real, d.Emag - e.Emag} }

// Neg returns -d.
func (d Dual) Neg() Dual { return Dual{-d.Real, -d.Emag} }

// Mul returns d * e.
func (d Dual) Mul(e Dual) Dual {
	return Dual{d.Real * e.Real, d.Real*e.Emag + d.Emag*e.Real}
}

// Div returns d / e.
func (d Dual) Div(e Dual) Dual {
	return Dual{d.Real / e.Real, (d.Emag*e.Real - d.Real*e.Emag) / (e.Real * e.Real)}
}

// Scale returns c * d for a real constant c.
func (d Dual) Scale(c float64) Dual { return Dual{c * d.Real, c * d.Emag} }

// AddConst returns d + c for a real constant c.
func (d Dual) AddConst(c float64) Dual { return Dual{d.Real + c, d.Emag} }

// DualExp returns e**d.
func DualExp(d Dual) Dual {
	exp := math.Exp(d.Real)
	return Dual{exp, exp * d.Emag}
}

// DualLog returns the natural logarithm of d.
func DualLog(d Dual) Dual {
	return Dual{math.Log(d.Real), d.Emag / d.Real}
}

// DualSqrt returns the square root of d.
func DualSqrt(d Dual) Dual {
	sqrt := math.Sqrt(d.Real)
	return Dual{sqrt, d.Emag / (2 * sqrt)}
}

// DualSin returns the sine of d.
func DualSin(d Dual) Dual {
	return Dual{math.Sin(d.Real), math.Cos(d.Real) * d.Emag}
}

// DualCos returns the cosine of d.
func DualCos(d Dual) Dual {
	return Dual{math.Cos(d.Real), -math.Sin(d.Real) * d.Emag}
}

// DualTan returns the tangent of d.
func DualTan(d Dual) Dual {
	c := math.Cos(d.Real)
	return Dual{math.Tan(d.Real), d.Emag / (c * c)}
}

// DualPowReal returns d**p for a real exponent p.
func DualPowReal(d Dual, p float64) Dual {
	return Dual{
		math.Pow(d.Real, p),
		p * math.Pow(d.Real, p-1) * d.Emag,
	}
}
