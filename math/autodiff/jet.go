package autodiff

import (
	"math"
)

// MaxJetOrder bounds the truncation order of a Jet. Eight derivatives
// covers the highest order Pade family, [6/1].
const MaxJetOrder = 8

// Jet is a truncated Taylor series about some point x:
// Coefs[k] = f^(k)(x) / k!. All operands of a binary operation must have
// the same truncation order.
type Jet struct {
	Coefs []float64
}

var factorials = [MaxJetOrder + 1]float64{1, 1, 2, 6, 24, 120, 720, 5040, 40320}

// NewJetVar returns x as the independent variable of differentiation,
// truncated after the given order.
func NewJetVar(x float64, order int) Jet {
	j := NewJetConst(x, order)
	if order >= 1 {
		j.Coefs[1] = 1
	}
	return j
}

// NewJetConst returns c as a constant jet of the given order.
func NewJetConst(c float64, order int) Jet {
	if order < 0 || order > MaxJetOrder {
		panic("jet order out of range.")
	}
	coefs := make([]float64, order+1)
	coefs[0] = c
	return Jet{coefs}
}

// Order returns the truncation order of the jet.
func (a Jet) Order() int { return len(a.Coefs) - 1 }

// Value returns f(x).
func (a Jet) Value() float64 { return a.Coefs[0] }

// Derivative returns f^(k)(x).
func (a Jet) Derivative(k int) float64 { return a.Coefs[k] * factorials[k] }

// Add returns a + b.
func (a Jet) Add(b Jet) Jet {
	c := make([]float64, len(a.Coefs))
	for k := range c {
		c[k] = a.Coefs[k] + b.Coefs[k]
	}
	return Jet{c}
}

// Sub returns a - b.
func (a Jet) Sub(b Jet) Jet {
	c := make([]float64, len(a.Coefs))
	for k := range c {
		c[k] = a.Coefs[k] - b.Coefs[k]
	}
	return Jet{c}
}

// Neg returns -a.
func (a Jet) Neg() Jet {
	c := make([]float64, len(a.Coefs))
	for k := range c {
		c[k] = -a.Coefs[k]
	}
	return Jet{c}
}

// Scale returns s * a for a real constant s.
func (a Jet) Scale(s float64) Jet {
	c := make([]float64, len(a.Coefs))
	for k := range c {
		c[k] = s * a.Coefs[k]
	}
	return Jet{c}
}

// AddConst returns a + s for a real constant s.
func (a Jet) AddConst(s float64) Jet {
	c := make([]float64, len(a.Coefs))
	copy(c, a.Coefs)
	c[0] += s
	return Jet{c}
}

// Mul returns a * b via truncated Cauchy convolution.
func (a Jet) Mul(b Jet) Jet {
	c := make([]float64, len(a.Coefs))
	for k := range c {
		sum := 0.0
		for j := 0; j <= k; j++ {
			sum += a.Coefs[j] * b.Coefs[k-j]
		}
		c[k] = sum
	}
	return Jet{c}
}

// Div returns a / b. b must not vanish at the expansion point.
func (a Jet) Div(b Jet) Jet {
	c := make([]float64, len(a.Coefs))
	c[0] = a.Coefs[0] / b.Coefs[0]
	for k := 1; k < len(c); k++ {
		sum := a.Coefs[k]
		for j := 1; j <= k; j++ {
			sum -= b.Coefs[j] * c[k-j]
		}
		c[k] = sum / b.Coefs[0]
	}
	return Jet{c}
}

// JetExp returns e**a.
func JetExp(a Jet) Jet {
	c := make([]float64, len(a.Coefs))
	c[0] = math.Exp(a.Coefs[0])
	for k := 1; k < len(c); k++ {
		sum := 0.0
		for j := 1; j <= k; j++ {
			sum += float64(j) * a.Coefs[j] * c[k-j]
		}
		c[k] = sum / float64(k)
	}
	return Jet{c}
}

// JetLog returns the natural logarithm of a. a must be positive at the
// expansion point.
func JetLog(a Jet) Jet {
	c := make([]float64, len(a.Coefs))
	c[0] = math.Log(a.Coefs[0])
	for k := 1; k < len(c); k++ {
		sum := float64(k) * a.Coefs[k]
		for j := 1; j < k; j++ {
			sum -= float64(j) * c[j] * a.Coefs[k-j]
		}
		c[k] = sum / (float64(k) * a.Coefs[0])
	}
	return Jet{c}
}

// JetSqrt returns the square root of a.
func JetSqrt(a Jet) Jet {
	c := make([]float64, len(a.Coefs))
	c[0] = math.Sqrt(a.Coefs[0])
	for k := 1; k < len(c); k++ {
		sum := a.Coefs[k]
		for j := 1; j < k; j++ {
			sum -= c[j] * c[k-j]
		}
		c[k] = sum / (2 * c[0])
	}
	return Jet{c}
}

// JetSin returns the sine of a.
func JetSin(a Jet) Jet {
	s, _ := jetSinCos(a)
	return s
}

// JetCos returns the cosine of a.
func JetCos(a Jet) Jet {
	_, c := jetSinCos(a)
	return c
}

// JetTan returns the tangent of a.
func JetTan(a Jet) Jet {
	s, c := jetSinCos(a)
	return s.Div(c)
}

func jetSinCos(a Jet) (sin, cos Jet) {
	s := make([]float64, len(a.Coefs))
	c := make([]float64, len(a.Coefs))
	s[0] = math.Sin(a.Coefs[0])
	c[0] = math.Cos(a.Coefs[0])
	for k := 1; k < len(s); k++ {
		ssum, csum := 0.0, 0.0
		for j := 1; j <= k; j++ {
			ssum += float64(j) * a.Coefs[j] * c[k-j]
			csum += float64(j) * a.Coefs[j] * s[k-j]
		}
		s[k] = ssum / float64(k)
		c[k] = -csum / float64(k)
	}
	return Jet{s}, Jet{c}
}

// JetPowReal returns a**p for a real exponent p. a must be positive at
// the expansion point; use PowInt for integer powers of arbitrary sign.
func JetPowReal(a Jet, p float64) Jet {
	return JetExp(JetLog(a).Scale(p))
}

// PowInt returns a**n for a non-negative integer n by repeated squaring.
func PowInt(a Jet, n int) Jet {
	if n < 0 {
		panic("PowInt needs a non-negative exponent.")
	}
	out := NewJetConst(1, a.Order())
	base := a
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return out
}
