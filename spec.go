package functab

import (
	"github.com/shawn-mcadam/functab/math/autodiff"
)

// Func is the scalar function a lookup table approximates.
type Func func(float64) float64

// DerivsFunc evaluates a function together with its leading derivatives:
// the returned slice holds f(x), f'(x), ..., f^(k)(x) for some fixed k.
type DerivsFunc func(x float64) []float64

// FunctionSpec bundles a function with the derivative variants the table
// families need. Interpolation families only use F; Taylor, Hermite and
// Pade families, and every nonuniform grid, additionally need a variant
// that supplies derivatives up to their order.
type FunctionSpec struct {
	f      Func
	derivs map[int]DerivsFunc
}

// NewFunctionSpec creates a spec from a plain function with no derivative
// variants. Add variants with WithDerivatives.
func NewFunctionSpec(f Func) *FunctionSpec {
	return &FunctionSpec{f: f, derivs: map[int]DerivsFunc{}}
}

// WithDerivatives registers the variant evaluating f and its first order
// derivatives and returns the spec for chaining.
func (s *FunctionSpec) WithDerivatives(order int, d DerivsFunc) *FunctionSpec {
	s.derivs[order] = d
	return s
}

// NewJetSpec builds a spec whose derivative variants of every order up to
// maxOrder are generated from a single jet-valued definition of f.
func NewJetSpec(f func(autodiff.Jet) autodiff.Jet, maxOrder int) *FunctionSpec {
	s := NewFunctionSpec(func(x float64) float64 {
		return f(autodiff.NewJetVar(x, 0)).Value()
	})
	for k := 1; k <= maxOrder; k++ {
		order := k
		s.WithDerivatives(order, func(x float64) []float64 {
			jet := f(autodiff.NewJetVar(x, order))
			out := make([]float64, order+1)
			for j := 0; j <= order; j++ {
				out[j] = jet.Derivative(j)
			}
			return out
		})
	}
	return s
}

// Function returns the plain variant of f.
func (s *FunctionSpec) Function() Func { return s.f }

// derivatives returns the variant supplying exactly the first order
// derivatives, or a BadArgument error when the spec lacks one.
func (s *FunctionSpec) derivatives(op string, order int) (DerivsFunc, error) {
	if d, ok := s.derivs[order]; ok {
		return d, nil
	}
	return nil, newError(ErrBadArgument, op,
		"FunctionSpec has no derivative variant of order %d", order)
}

// checkFunction returns a BadArgument error when the spec or its plain
// function is missing.
func (s *FunctionSpec) checkFunction(op string) error {
	if s == nil || s.f == nil {
		return newError(ErrBadArgument, op,
			"function not defined in the given FunctionSpec")
	}
	return nil
}
