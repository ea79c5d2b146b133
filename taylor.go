package functab

// The Taylor families store the truncated Taylor expansion of f at the
// left edge of each subinterval. The k-th Taylor coefficient is rescaled
// by h^k so the piece lives in the same local coordinate t = (x - x_k)/h
// as every other family.

var taylorRoots = [4]string{
	"ConstantTaylorTable",
	"LinearTaylorTable",
	"QuadraticTaylorTable",
	"CubicTaylorTable",
}

func taylorBuilder(degree int) Builder {
	op := "Uniform" + taylorRoots[degree]
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, Uniform, spec, par, degree+1, degree+1)
		if err != nil {
			return nil, err
		}
		f := spec.Function()

		if degree == 0 {
			t.forEachPiece(f, func(dst []float64, x, h float64) {
				dst[0] = f(x)
			})
			return t, nil
		}

		d, err := spec.derivatives(op, degree)
		if err != nil {
			return nil, err
		}
		fact := 1.0
		factorials := make([]float64, degree+1)
		for k := 0; k <= degree; k++ {
			if k > 0 {
				fact *= float64(k)
			}
			factorials[k] = fact
		}
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			derivs := d(x)
			hk := 1.0
			for k := 0; k <= degree; k++ {
				dst[k] = derivs[k] * hk / factorials[k]
				hk *= h
			}
		})
		return t, nil
	}
}

func init() {
	for degree := 0; degree <= 3; degree++ {
		register("Uniform"+taylorRoots[degree],
			familyInfo{ncoefs: degree + 1, order: degree + 1},
			taylorBuilder(degree))
	}
}
