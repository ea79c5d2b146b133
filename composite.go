package functab

// A CompositeTable covers a domain with several lookup tables over
// abutting subranges, one per piece of a piecewise-defined or singular
// function. Interval location is a most-recently-used hint, then a linear
// scan when the argument is near the hinted table, then binary search.

// DiscontKind explains why a special point is special.
type DiscontKind int

const (
	// DiscontNone marks an ordinary breakpoint.
	DiscontNone DiscontKind = iota
	// DiscontJump marks a jump in the function value.
	DiscontJump
	// DiscontFirstDeriv marks a jump in the first derivative.
	DiscontFirstDeriv
	// DiscontSecondDeriv marks a jump in the second derivative.
	DiscontSecondDeriv
	// DiscontThirdDeriv marks a jump in the third derivative.
	DiscontThirdDeriv
)

// LimitKind describes how the function behaves at a special point.
type LimitKind int

const (
	// LimitEquals: f attains the recorded value.
	LimitEquals LimitKind = iota
	// LimitApproaches: f tends to the recorded value without attaining it.
	LimitApproaches
	// LimitInf: f diverges at the point.
	LimitInf
)

// SpecialPoint defines function behaviour at a breakpoint or endpoint of
// a composite table.
type SpecialPoint struct {
	X, Y    float64
	Discont DiscontKind
	Limit   LimitKind
}

// CompositeTable dispatches arguments to one of several sub-tables
// covering adjacent subranges. The MRU hint is a plain word-sized index
// updated without synchronisation: concurrent readers may see a stale
// hint, which only costs them the search, never correctness.
type CompositeTable struct {
	tables []*Table
	names  []string
	points []SpecialPoint

	mru      int
	smallest float64

	minArg, maxArg float64
	dataSize       int
}

// NewCompositeTable builds one sub-table per name: n names and n step
// sizes over the n abutting ranges defined by n+1 ordered special points.
func NewCompositeTable(spec *FunctionSpec, names []string,
	stepSizes []float64, points []SpecialPoint) (*CompositeTable, error) {

	const op = "NewCompositeTable"
	if len(names) == 0 {
		return nil, newError(ErrBadArgument, op, "no sub-table names given")
	}
	if len(names) != len(stepSizes) {
		return nil, newError(ErrBadArgument, op,
			"%d sub-table(s) need a corresponding step size each, but %d "+
				"step sizes were given", len(names), len(stepSizes))
	}
	if len(points) != len(names)+1 {
		return nil, newError(ErrBadArgument, op,
			"%d abutting ranges need %d special points, but %d were given",
			len(names), len(names)+1, len(points))
	}
	for i := 0; i+1 < len(points); i++ {
		if points[i].X > points[i+1].X {
			return nil, newError(ErrBadArgument, op,
				"special points must be ordered by x, but points[%d].X = %g "+
					"> points[%d].X = %g", i, points[i].X, i+1, points[i+1].X)
		}
	}

	c := &CompositeTable{
		names:    append([]string(nil), names...),
		points:   append([]SpecialPoint(nil), points...),
		mru:      len(names) / 2,
		smallest: points[len(points)-1].X - points[0].X,
	}
	for i := range names {
		t, err := NewTable(names[i], spec, Params{
			MinArg:   points[i].X,
			MaxArg:   points[i+1].X,
			StepSize: stepSizes[i],
		})
		if err != nil {
			return nil, err
		}
		c.tables = append(c.tables, t)
		if width := points[i+1].X - points[i].X; width < c.smallest {
			c.smallest = width
		}
		c.dataSize += t.DataSize()
	}
	c.minArg = c.tables[0].MinArg()
	c.maxArg = c.tables[len(c.tables)-1].MaxArg()
	return c, nil
}

// Eval dispatches x to the sub-table whose range contains it. It returns
// a Domain error when x falls outside every sub-range.
func (c *CompositeTable) Eval(x float64) (float64, error) {
	i := c.mru
	if i < 0 || i >= len(c.tables) {
		i = len(c.tables) / 2
	}
	recent := c.tables[i]

	switch {
	case x >= recent.MinArg() && x <= recent.MaxArg():
		return recent.Eval(x), nil
	case x < recent.MinArg():
		if x < c.minArg {
			return 0, newError(ErrDomain, "CompositeTable.Eval",
				"composite table undefined for x=%g", x)
		}
		if x >= recent.MinArg()-2*c.smallest {
			return c.linearSearch(x, i, true)
		}
		return c.binarySearch(x, 0, i-1)
	default:
		if x > c.maxArg {
			return 0, newError(ErrDomain, "CompositeTable.Eval",
				"composite table undefined for x=%g", x)
		}
		if x <= recent.MaxArg()+2*c.smallest {
			return c.linearSearch(x, i, false)
		}
		return c.binarySearch(x, i+1, len(c.tables)-1)
	}
}

// linearSearch walks one sub-table at a time from i. The caller has
// already checked x is inside the composite domain, so the walk
// terminates.
func (c *CompositeTable) linearSearch(x float64, i int, left bool) (float64, error) {
	for {
		if left {
			if x < c.tables[i].MinArg() {
				i--
				continue
			}
		} else if x > c.tables[i].MaxArg() {
			i++
			continue
		}
		c.mru = i
		return c.tables[i].Eval(x), nil
	}
}

func (c *CompositeTable) binarySearch(x float64, lo, hi int) (float64, error) {
	for lo <= hi {
		mid := (lo + hi) / 2
		t := c.tables[mid]
		if x < t.MinArg() {
			hi = mid - 1
		} else if x > t.MaxArg() {
			lo = mid + 1
		} else {
			c.mru = mid
			return t.Eval(x), nil
		}
	}
	return 0, newError(ErrDomain, "CompositeTable.Eval",
		"composite table undefined for x=%g", x)
}

// MinArg returns the lower bound of the composite domain.
func (c *CompositeTable) MinArg() float64 { return c.minArg }

// MaxArg returns the upper bound of the composite domain.
func (c *CompositeTable) MaxArg() float64 { return c.maxArg }

// NumTables returns the number of sub-tables.
func (c *CompositeTable) NumTables() int { return len(c.tables) }

// SubTable returns sub-table i.
func (c *CompositeTable) SubTable(i int) *Table { return c.tables[i] }

// SpecialPoints returns the breakpoints and endpoints of the domain.
func (c *CompositeTable) SpecialPoints() []SpecialPoint {
	return append([]SpecialPoint(nil), c.points...)
}

// DataSize returns the total coefficient storage of all sub-tables in
// bytes.
func (c *CompositeTable) DataSize() int { return c.dataSize }
