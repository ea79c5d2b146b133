package functab

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorAtStepShrinksWithStep(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)

	coarse, err := gen.ErrorAtStep("UniformCubicInterpolationTable", 0.5)
	assert.NoError(t, err)
	fine, err := gen.ErrorAtStep("UniformCubicInterpolationTable", 0.05)
	assert.NoError(t, err)

	assert.Greater(t, coarse, fine)
	assert.Greater(t, fine, 0.0)
}

// The tolerance solver must return a step satisfying the tolerance, and
// the step must be coarse: a few times larger must break the tolerance.
func TestByTolerance(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)
	const tol = 1e-6
	const name = "UniformCubicInterpolationTable"

	tab, err := gen.ByTolerance(name, tol)
	assert.NoError(t, err)

	e, err := gen.ErrorAtStep(name, tab.StepSize())
	assert.NoError(t, err)
	assert.LessOrEqual(t, e, tol)

	coarser, err := gen.ErrorAtStep(name, 4*tab.StepSize())
	assert.NoError(t, err)
	assert.Greater(t, coarser, tol, "returned step is far from coarsest")

	assert.Greater(t, tab.StepSize(), 0.001)
	assert.Less(t, tab.StepSize(), 0.5)
}

// Running the solver twice with the same tolerance must give the same
// step size.
func TestByToleranceIdempotent(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)

	t1, err := gen.ByTolerance("UniformQuadraticInterpolationTable", 1e-5)
	assert.NoError(t, err)
	t2, err := gen.ByTolerance("UniformQuadraticInterpolationTable", 1e-5)
	assert.NoError(t, err)

	assert.Equal(t, t1.StepSize(), t2.StepSize())
}

// A loose tolerance on a small domain is already satisfied by a single
// interval, which the solver must return without bracketing.
func TestByToleranceHotPath(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 0.1)

	tab, err := gen.ByTolerance("UniformCubicInterpolationTable", 1e-3)
	assert.NoError(t, err)
	assert.Equal(t, 1, tab.NumIntervals())
}

func TestBySize(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)

	tab, err := gen.BySize("UniformCubicInterpolationTable", 4096)
	assert.NoError(t, err)

	// First-order estimate: the table should land within a factor of two
	// of the budget.
	assert.Greater(t, tab.DataSize(), 4096/2)
	assert.Less(t, tab.DataSize(), 4096*2)
}

func TestWriteComparison(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)

	buf := &bytes.Buffer{}
	err := gen.WriteComparison(buf, "UniformLinearInterpolationTable", 0.1)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "# x func impl", lines[0])
	assert.Greater(t, len(lines), 50)
}

func TestByToleranceUnknownFamily(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0, 1)
	_, err := gen.ByTolerance("NoSuchTable", 1e-6)
	assert.True(t, IsKind(err, ErrBadArgument))
}

// Tolerance-built tables must satisfy the tolerance pointwise, measured
// the same way the solver does.
func TestToleranceIsPointwise(t *testing.T) {
	gen := NewGenerator(sinSpec(), 0.2, 1.2)
	const tol = 1e-5

	tab, err := gen.ByTolerance("UniformQuadraticInterpolationTable", tol)
	assert.NoError(t, err)

	for i := 0; i <= 500; i++ {
		x := 0.2 + float64(i)/500
		f, v := math.Sin(x), tab.Eval(x)
		rel := 2 * math.Abs(f-v) / (math.Abs(f) + math.Abs(v))
		assert.LessOrEqual(t, rel, tol*1.01, "x = %g", x)
	}
}
