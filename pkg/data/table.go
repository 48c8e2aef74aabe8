package data

import "strings"

// Kind is the type of a column, resolved once when the table is loaded.
type Kind int

const (
	KindNull Kind = iota // no present cell, no type evidence
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// IsNumeric reports whether the column carries Values.
func (k Kind) IsNumeric() bool { return k == KindInteger || k == KindFloat }

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int":
		return KindInteger, true
	case "float", "number":
		return KindFloat, true
	case "string", "str":
		return KindString, true
	case "null":
		return KindNull, true
	}
	return KindNull, false
}

// Column is one named column of a table. Values and Valid are filled for
// numeric kinds only; integers are stored cast to float.
type Column struct {
	Name   string
	Kind   Kind
	Raw    []string
	Values []float64
	Valid  []bool
}

// Missing reports whether the cell at row i is absent.
func (c *Column) Missing(i int) bool { return IsMissing(c.Raw[i]) }

// Present returns the non-missing numeric values in row order.
func (c *Column) Present() []float64 {
	if !c.Kind.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Table is a header-bearing table held column-wise.
type Table struct {
	Columns []Column
	Rows    int
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Names returns the header in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// IsMissing reports whether a raw cell counts as a missing value. The NA
// and NaN tokens match in any letter case.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "NaN")
}
