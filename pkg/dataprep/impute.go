package dataprep

import (
	"github.com/pkg/errors"

	"dslr/pkg/data"
	"dslr/pkg/stats"
)

// Means returns the whole-column mean of every analyzed feature, used to
// fill missing cells at training and at inference.
func Means(analyses []stats.Analysis) ([]float64, error) {
	out := make([]float64, len(analyses))
	for j, a := range analyses {
		if !a.Numeric() {
			return nil, errors.Wrapf(data.ErrDegenerate, "feature %q has no present value to impute from", a.Name)
		}
		out[j] = a.Summary.Mean
	}
	return out, nil
}

// ImputeMean returns the value of col at row i, or mean when the cell is
// missing.
func ImputeMean(col *data.Column, i int, mean float64) float64 {
	if col.Valid == nil || !col.Valid[i] {
		return mean
	}
	return col.Values[i]
}
