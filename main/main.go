package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/shawn-mcadam/functab"
	"github.com/shawn-mcadam/functab/math/autodiff"
)

// Functions the CLI knows how to tabulate. Jet definitions give every
// family the derivative variants it asks for.
var specs = map[string]*functab.FunctionSpec{
	"sin": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetSin(x)
	}, autodiff.MaxJetOrder),
	"cos": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetCos(x)
	}, autodiff.MaxJetOrder),
	"tan": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetTan(x)
	}, autodiff.MaxJetOrder),
	"exp": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetExp(x)
	}, autodiff.MaxJetOrder),
	"log": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetLog(x)
	}, autodiff.MaxJetOrder),
	"sqrt": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetSqrt(x)
	}, autodiff.MaxJetOrder),
	"gauss": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		return autodiff.JetExp(x.Mul(x).Neg())
	}, autodiff.MaxJetOrder),
	"runge": functab.NewJetSpec(func(x autodiff.Jet) autodiff.Jet {
		one := autodiff.NewJetConst(1, x.Order())
		return one.Div(x.Mul(x).Scale(25).AddConst(1))
	}, autodiff.MaxJetOrder),
}

func main() {
	var (
		buildConfig   string
		loadPath      string
		at            float64
		logPath       string
		names         bool
		functions     bool
		exampleConfig bool
	)

	flag.StringVar(&buildConfig, "Build", "",
		"Configuration file with a [Table] section to build a table from.")
	flag.StringVar(&loadPath, "Load", "",
		"JSON descriptor of a previously built table to load.")
	flag.Float64Var(&at, "At", 0,
		"Argument to evaluate the loaded table at. Used with -Load.")
	flag.StringVar(&logPath, "Log", "",
		"Location to write log statements to. Default is stderr.")
	flag.BoolVar(&names, "Names", false,
		"Print the registered table family names.")
	flag.BoolVar(&functions, "Functions", false,
		"Print the function names the CLI can tabulate.")
	flag.BoolVar(&exampleConfig, "ExampleConfig", false,
		"Print an example [Table] configuration file to stdout.")

	flag.Parse()

	if logPath != "" {
		lf, err := os.Create(logPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(lf)
		defer lf.Close()
	}

	switch {
	case exampleConfig:
		fmt.Print(ExampleConfig())
	case names:
		fmt.Println(strings.Join(functab.Names(), "\n"))
	case functions:
		fnames := make([]string, 0, len(specs))
		for name := range specs {
			fnames = append(fnames, name)
		}
		sort.Strings(fnames)
		fmt.Println(strings.Join(fnames, "\n"))
	case buildConfig != "":
		buildMain(buildConfig)
	case loadPath != "":
		loadMain(loadPath, at)
	default:
		log.Fatal("Specify one of -Build, -Load, -Names, -Functions, " +
			"and -ExampleConfig.")
	}
}

func buildMain(configPath string) {
	wrap := &ConfigWrapper{}
	if err := gcfg.ReadFileInto(wrap, configPath); err != nil {
		log.Fatal(err.Error())
	}
	con := &wrap.Table
	if err := con.CheckInit(); err != nil {
		log.Fatal(err.Error())
	}

	spec, ok := specs[con.Function]
	if !ok {
		log.Fatalf("Unknown function '%s'. Run with -Functions for the "+
			"known names.", con.Function)
	}

	gen := functab.NewGenerator(spec, con.MinArg, con.MaxArg)

	var (
		t   *functab.Table
		err error
	)
	switch {
	case con.StepSize > 0:
		t, err = gen.ByStep(con.Family, con.StepSize)
	case con.Tolerance > 0:
		t, err = gen.ByTolerance(con.Family, con.Tolerance)
	default:
		t, err = gen.BySize(con.Family, con.SizeBudget)
	}
	if err != nil {
		log.Fatal(err.Error())
	}

	maxErr, err := gen.ErrorAtStep(con.Family, t.StepSize())
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Built %s over [%g, %g]: stepSize=%g intervals=%d "+
		"dataSize=%dB maxRelErr=%.3g",
		t.Name(), t.MinArg(), t.MaxArg(), t.StepSize(),
		t.NumIntervals(), t.DataSize(), maxErr,
	)

	if con.Out != "" {
		f, err := os.Create(con.Out)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := t.WriteJSON(f); err != nil {
			log.Fatal(err.Error())
		}
		if err := f.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if con.Compare != "" {
		f, err := os.Create(con.Compare)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := gen.WriteComparison(f, con.Family, t.StepSize()); err != nil {
			log.Fatal(err.Error())
		}
		if err := f.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func loadMain(path string, at float64) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer f.Close()

	t, err := functab.LoadTable(f)
	if err != nil {
		log.Fatal(err.Error())
	}
	fmt.Printf("%s(%g) = %g\n", t.Name(), at, t.Eval(at))
}
