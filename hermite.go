package functab

// The cubic Hermite family matches values and first derivatives at both
// edges of each subinterval, written in the local coordinate t = (x-x_k)/h
// so the derivative conditions pick up a factor of h.

func cubicHermiteBuilder() Builder {
	const op = "UniformCubicHermiteTable"
	return func(spec *FunctionSpec, par Params) (*Table, error) {
		t, err := newTable(op, op, Uniform, spec, par, 4, 4)
		if err != nil {
			return nil, err
		}
		f := spec.Function()
		d, err := spec.derivatives(op, 1)
		if err != nil {
			return nil, err
		}
		t.forEachPiece(f, func(dst []float64, x, h float64) {
			lo, hi := d(x), d(x+h)
			y0, m0 := lo[0], h*lo[1]
			y1, m1 := hi[0], h*hi[1]
			dst[0] = y0
			dst[1] = m0
			dst[2] = -3*y0 + 3*y1 - 2*m0 - m1
			dst[3] = 2*y0 - 2*y1 + m0 + m1
		})
		return t, nil
	}
}

func init() {
	register("UniformCubicHermiteTable",
		familyInfo{ncoefs: 4, order: 4}, cubicHermiteBuilder())
}
