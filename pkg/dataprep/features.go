package dataprep

import (
	"math"
	"strings"

	"dslr/pkg/data"
)

// Materialize builds one feature row per table row in source order. Missing
// feature cells take the matching entry of means; a missing label becomes
// UnknownLabel.
func Materialize(t *data.Table, s Schema, means []float64) (rows [][]float64, labels []string) {
	rows = make([][]float64, t.Rows)
	labels = make([]string, t.Rows)
	label := &t.Columns[s.LabelIndex]
	for i := range t.Rows {
		row := make([]float64, len(s.FeatureIndex))
		for j, idx := range s.FeatureIndex {
			row[j] = ImputeMean(&t.Columns[idx], i, means[j])
		}
		rows[i] = row
		if label.Missing(i) {
			labels[i] = UnknownLabel
		} else {
			labels[i] = strings.TrimSpace(label.Raw[i])
		}
	}
	return rows, labels
}

// BinContinuous counts values into n equal-width bins spanning [lo, hi].
// Values equal to hi fall into the last bin; values outside the range and
// NaNs are dropped. A zero-width range puts everything in bin 0.
func BinContinuous(values []float64, lo, hi float64, n int) []int {
	bins := make([]int, n)
	if n == 0 {
		return bins
	}
	width := (hi - lo) / float64(n)
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		b := 0
		if width > 0 {
			b = int((v - lo) / width)
		}
		if b >= n {
			b = n - 1
		}
		bins[b]++
	}
	return bins
}
