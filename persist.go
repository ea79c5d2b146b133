package functab

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/shawn-mcadam/functab/transfer"
)

// Descriptor is the serializable representation of a table: everything a
// table holds except the function itself, so a persisted table can be
// rebuilt without re-evaluating f. The field names are the stable wire
// format; coefficients are keyed by index to keep entries self-describing.
type Descriptor struct {
	Comment         string                     `json:"_comment"`
	Name            string                     `json:"name"`
	MinArg          float64                    `json:"minArg"`
	MaxArg          float64                    `json:"maxArg"`
	StepSize        float64                    `json:"stepSize"`
	NumTableEntries int                        `json:"numTableEntries"`
	NumIntervals    int                        `json:"numIntervals"`
	TableMaxArg     float64                    `json:"tableMaxArg"`
	Order           int                        `json:"order"`
	DataSize        int                        `json:"dataSize"`
	TransferCoefs   []float64                  `json:"transfer_function_coefs"`
	Table           map[string]EntryDescriptor `json:"table"`
}

// EntryDescriptor holds the polynomial coefficients of one piece.
type EntryDescriptor struct {
	Coefs map[string]float64 `json:"coefs"`
}

// Describe generates the serializable descriptor of a table.
func (t *Table) Describe() *Descriptor {
	d := &Descriptor{
		Comment:         "functab lookup table data",
		Name:            t.name,
		MinArg:          t.minArg,
		MaxArg:          t.maxArg,
		StepSize:        t.stepSize,
		NumTableEntries: t.nEntries,
		NumIntervals:    t.nIntervals,
		TableMaxArg:     t.tableMaxArg,
		Order:           t.order,
		DataSize:        t.DataSize(),
		TransferCoefs:   make([]float64, transfer.NumCoefs),
		Table:           make(map[string]EntryDescriptor, t.nEntries),
	}
	tc := t.TransferCoefs()
	copy(d.TransferCoefs, tc[:])

	for i := 0; i < t.nEntries; i++ {
		coefs := make(map[string]float64, t.ncoefs)
		for j := 0; j < t.ncoefs; j++ {
			coefs[strconv.Itoa(j)] = t.Entry(i, j)
		}
		d.Table[strconv.Itoa(i)] = EntryDescriptor{Coefs: coefs}
	}
	return d
}

// FromDescriptor rebuilds a table from a descriptor. The descriptor's
// name must match a registered family; every piece and coefficient index
// implied by the descriptor's sizes must be present.
func FromDescriptor(d *Descriptor) (*Table, error) {
	const op = "FromDescriptor"

	info, ok := infos[d.Name]
	if !ok {
		return nil, newError(ErrBadArgument, op,
			"descriptor name %q does not match any registered family", d.Name)
	}
	if d.StepSize <= 0 {
		return nil, newError(ErrPersistence, op,
			"descriptor has nonpositive stepSize %g", d.StepSize)
	}
	if d.MaxArg <= d.MinArg {
		return nil, newError(ErrPersistence, op,
			"descriptor has maxArg (%g) <= minArg (%g)", d.MaxArg, d.MinArg)
	}
	if d.NumTableEntries != d.NumIntervals+1 {
		return nil, newError(ErrPersistence, op,
			"descriptor has %d table entries for %d intervals; want %d",
			d.NumTableEntries, d.NumIntervals, d.NumIntervals+1)
	}
	if len(d.Table) != d.NumTableEntries {
		return nil, newError(ErrPersistence, op,
			"descriptor table has %d entries; header says %d",
			len(d.Table), d.NumTableEntries)
	}

	t := &Table{
		name:        d.Name,
		eval:        info.eval,
		minArg:      d.MinArg,
		maxArg:      d.MaxArg,
		stepSize:    d.StepSize,
		stepInv:     1 / d.StepSize,
		tableMaxArg: d.TableMaxArg,
		order:       d.Order,
		nIntervals:  d.NumIntervals,
		nEntries:    d.NumTableEntries,
		ncoefs:      info.ncoefs,
		stride:      coefStride(info.ncoefs),
		padeM:       info.padeM,
		padeN:       info.padeN,
	}
	t.coefs = make([]float64, t.nEntries*t.stride)

	if strings.HasPrefix(d.Name, "NonUniform") {
		t.kind = NonUniform
		if len(d.TransferCoefs) != transfer.NumCoefs {
			return nil, newError(ErrPersistence, op,
				"descriptor has %d transfer function coefficients; want %d",
				len(d.TransferCoefs), transfer.NumCoefs)
		}
		var tc [transfer.NumCoefs]float64
		copy(tc[:], d.TransferCoefs)
		t.tf = transfer.FromCoefs(tc, t.minArg, t.tableMaxArg, t.stepSize)
	}

	for i := 0; i < t.nEntries; i++ {
		entry, ok := d.Table[strconv.Itoa(i)]
		if !ok {
			return nil, newError(ErrPersistence, op,
				"descriptor table is missing entry %d", i)
		}
		for j := 0; j < t.ncoefs; j++ {
			c, ok := entry.Coefs[strconv.Itoa(j)]
			if !ok {
				return nil, newError(ErrPersistence, op,
					"descriptor entry %d is missing coefficient %d", i, j)
			}
			t.coefs[i*t.stride+j] = c
		}
	}
	return t, nil
}

// WriteJSON serialises the table's descriptor to w.
func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.Describe()); err != nil {
		return wrapError(ErrPersistence, "Table.WriteJSON", err,
			"cannot encode table %q", t.name)
	}
	return nil
}

// LoadTable reads a JSON descriptor from r and rebuilds its table.
func LoadTable(r io.Reader) (*Table, error) {
	const op = "LoadTable"
	var d Descriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, wrapError(ErrPersistence, op, err, "malformed descriptor")
	}
	if d.Name == "" {
		return nil, newError(ErrPersistence, op, "descriptor has no name field")
	}
	return FromDescriptor(&d)
}
