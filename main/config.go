package main

import (
	"fmt"
)

// TableConfig is the [Table] section of a build config file.
type TableConfig struct {
	// Required
	Function string
	Family   string
	MinArg   float64
	MaxArg   float64

	// Exactly one of these selects how the step size is chosen.
	StepSize   float64
	Tolerance  float64
	SizeBudget int

	// Optional outputs
	Out     string
	Compare string
}

// ConfigWrapper is the top-level structure of a build config file.
type ConfigWrapper struct {
	Table TableConfig
}

func (con *TableConfig) CheckInit() error {
	if con.Function == "" {
		return fmt.Errorf("Need to specify a Function for [Table].")
	}
	if con.Family == "" {
		return fmt.Errorf("Need to specify a Family for [Table].")
	}
	if con.MaxArg <= con.MinArg {
		return fmt.Errorf(
			"MaxArg of [Table] must exceed MinArg, but %g <= %g.",
			con.MaxArg, con.MinArg,
		)
	}

	selectors := 0
	if con.StepSize > 0 {
		selectors++
	} else if con.StepSize < 0 {
		return fmt.Errorf("StepSize of [Table] is negative, %g.", con.StepSize)
	}
	if con.Tolerance > 0 {
		selectors++
	} else if con.Tolerance < 0 {
		return fmt.Errorf("Tolerance of [Table] is negative, %g.", con.Tolerance)
	}
	if con.SizeBudget > 0 {
		selectors++
	} else if con.SizeBudget < 0 {
		return fmt.Errorf("SizeBudget of [Table] is negative, %d.", con.SizeBudget)
	}
	if selectors != 1 {
		return fmt.Errorf(
			"Need to specify exactly one of StepSize, Tolerance, and " +
				"SizeBudget for [Table].",
		)
	}

	return nil
}

// ExampleConfig returns a config file template.
func ExampleConfig() string {
	return `[Table]
# Function to tabulate. Run with -Functions for the known names.
Function = sin

# Table family. Run with -Names for the registered families.
Family = UniformCubicInterpolationTable

MinArg = 0
MaxArg = 3.141592653589793

# Specify exactly one of StepSize, Tolerance, and SizeBudget.
StepSize = 0.01
# Tolerance = 1e-8
# SizeBudget = 4096

# Optional: write the table descriptor to this file.
# Out = table.json

# Optional: write "# x func impl" comparison columns to this file.
# Compare = compare.txt
`
}
