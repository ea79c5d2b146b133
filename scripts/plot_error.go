package main

import (
	"log"
	"math"
	"os"
	"strconv"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"

	"github.com/shawn-mcadam/functab"
)

// Plots a lookup table against reference values read from a text table.
//
// The input file has two whitespace-separated columns, x and f(x); the
// table is rebuilt from a JSON descriptor so the plot shows exactly what
// a consumer of the persisted table would see.
func main() {
	if len(os.Args) != 4 {
		log.Fatalf(
			"Required file use: $ %s table_json ref_file points", os.Args[0],
		)
	}
	descFile, refFile, pointsStr := os.Args[1], os.Args[2], os.Args[3]
	points, err := strconv.Atoi(pointsStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	f, err := os.Open(descFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	t, err := functab.LoadTable(f)
	if err != nil {
		log.Fatal(err.Error())
	}
	f.Close()

	cols, err := table.ReadTable(refFile, []int{0, 1}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	refXs, refYs := cols[0], cols[1]

	xs := make([]float64, points)
	ys := make([]float64, points)
	errs := make([]float64, len(refXs))
	for i := range xs {
		xs[i] = t.MinArg() +
			(t.MaxArg()-t.MinArg())*float64(i)/float64(points-1)
		ys[i] = t.Eval(xs[i])
	}
	for i, x := range refXs {
		errs[i] = math.Abs(t.Eval(x) - refYs[i])
	}

	plt.Reset()
	plt.Plot(refXs, refYs, "ok")
	plt.Plot(xs, ys, "r", plt.LW(2))
	plt.XLabel("$x$", plt.FontSize(16))
	plt.YLabel("$f(x)$", plt.FontSize(16))
	plt.Show()

	worst := 0.0
	for _, e := range errs {
		if e > worst {
			worst = e
		}
	}
	log.Printf("%s: worst absolute error at %d reference points: %g",
		t.Name(), len(refXs), worst)
}
