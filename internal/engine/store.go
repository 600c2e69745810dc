package engine

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the semantic type shared by every value of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Date
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Date:
		return "date"
	}
	return "unknown"
}

// Column holds one dataset column in Struct-of-Arrays format.
// Exactly one of the storage slices is populated, chosen by Kind.
type Column struct {
	Name string
	Kind Kind

	// Numeric
	Floats []float64

	// Categorical: dictionary encoded IDs (0..N) and ID -> string,
	// in first-appearance order
	IDs  []int32
	Dict []string

	// Date
	Times  []time.Time
	layout string
}

func (c *Column) Len() int {
	switch c.Kind {
	case Numeric:
		return len(c.Floats)
	case Categorical:
		return len(c.IDs)
	case Date:
		return len(c.Times)
	}
	return 0
}

// Label returns the display form of row i.
func (c *Column) Label(i int) string {
	switch c.Kind {
	case Numeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case Categorical:
		return c.Dict[c.IDs[i]]
	case Date:
		return c.Times[i].Format(c.layout)
	}
	return ""
}

// Value returns row i as a JSON-friendly value.
func (c *Column) Value(i int) any {
	switch c.Kind {
	case Numeric:
		return c.Floats[i]
	case Categorical:
		return c.Dict[c.IDs[i]]
	}
	return c.Label(i)
}

// Distinct returns the distinct labels of the column in first-appearance order.
func (c *Column) Distinct() []string {
	if c.Kind == Categorical {
		return append([]string(nil), c.Dict...)
	}
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < c.Len(); i++ {
		l := c.Label(i)
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Dataset is an immutable table of named columns.
type Dataset struct {
	Source  string
	Columns []*Column

	rows  int
	index map[string]int
}

func newDataset(source string, cols []*Column) *Dataset {
	d := &Dataset{Source: source, Columns: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		d.index[c.Name] = i
	}
	if len(cols) > 0 {
		d.rows = cols[0].Len()
	}
	return d
}

func (d *Dataset) Len() int { return d.rows }

func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return d.Columns[i], nil
}

func (d *Dataset) Distinct(name string) ([]string, error) {
	c, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Distinct(), nil
}

// Rows returns up to limit rows starting at offset, rendered as labels.
func (d *Dataset) Rows(offset, limit int) [][]string {
	if offset < 0 {
		offset = 0
	}
	if offset >= d.rows || limit <= 0 {
		return [][]string{}
	}
	end := offset + limit
	if end > d.rows {
		end = d.rows
	}
	out := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		row := make([]string, len(d.Columns))
		for j, c := range d.Columns {
			row[j] = c.Label(i)
		}
		out = append(out, row)
	}
	return out
}
