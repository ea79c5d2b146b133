package functab

import (
	"sort"
)

// Builder constructs a table of one family over the given grid.
type Builder func(spec *FunctionSpec, par Params) (*Table, error)

// familyInfo records what a descriptor needs to rebuild a table of this
// family without calling its builder.
type familyInfo struct {
	ncoefs, order int
	eval          evalKind
	padeM, padeN  int
}

// The process-wide family registry: populated by the init functions of
// the family files, read-only afterwards.
var (
	builders = map[string]Builder{}
	infos    = map[string]familyInfo{}
)

func register(name string, info familyInfo, b Builder) {
	if _, ok := builders[name]; ok {
		panic("duplicate table family registration: " + name)
	}
	builders[name] = b
	infos[name] = info
}

// Names returns the sorted names of every registered table family.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTable builds a table of the named family. Family names compose the
// grid kind with the family root, e.g. "UniformLinearInterpolationTable"
// or "NonUniformPseudoCubicInterpolationTable".
func NewTable(name string, spec *FunctionSpec, par Params) (*Table, error) {
	b, ok := builders[name]
	if !ok {
		return nil, newError(ErrBadArgument, "NewTable",
			"unknown table family %q", name)
	}
	return b(spec, par)
}
