package stats

import (
	"gonum.org/v1/gonum/floats"

	"dslr/pkg/data"
)

// Summary holds the descriptive statistics of a numeric column.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Q1     float64
	Q3     float64
	Std    float64
	Sum    float64
}

// Analysis describes one column. Summary is nil for non-numeric columns
// and for numeric columns without a single present value; otherwise every
// field of it is set.
type Analysis struct {
	Name    string
	Kind    data.Kind
	Count   int
	Missing int
	Summary *Summary
}

// Numeric reports whether the analysis carries statistics.
func (a Analysis) Numeric() bool { return a.Summary != nil }

// Summarize computes the statistics of the present values of a column.
// It returns nil for an empty slice.
func Summarize(values []float64) *Summary {
	if len(values) == 0 {
		return nil
	}
	sorted := SortedCopy(values)
	n := float64(len(sorted))

	sum := floats.Sum(sorted)
	q1, q3 := Quartiles(sorted)
	return &Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / n,
		Median: Median(sorted),
		Q1:     q1,
		Q3:     q3,
		Std:    Std(sorted),
		Sum:    sum,
	}
}

// Analyze computes the Analysis of a single column.
func Analyze(col *data.Column) Analysis {
	a := Analysis{Name: col.Name, Kind: col.Kind}
	for i := range col.Raw {
		if col.Missing(i) {
			a.Missing++
		}
	}
	a.Count = len(col.Raw) - a.Missing
	if !col.Kind.IsNumeric() {
		return a
	}
	a.Summary = Summarize(col.Present())
	return a
}

// AnalyzeTable analyzes every column of t in header order.
func AnalyzeTable(t *data.Table) []Analysis {
	out := make([]Analysis, len(t.Columns))
	for i := range t.Columns {
		out[i] = Analyze(&t.Columns[i])
	}
	return out
}
