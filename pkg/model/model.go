package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"dslr/pkg/data"
	"dslr/pkg/hypothesis"
	"dslr/pkg/stats"
)

// Model is a trained one-vs-all classifier together with everything needed
// to turn a raw row into the features it was trained on.
type Model struct {
	RunID     string
	CreatedAt time.Time

	LabelName string
	Method    stats.Method
	Features  []string // feature column names, may be empty for legacy files
	Factors   []stats.Factor
	Means     []float64

	// Weights maps each label to its theta vector.
	Weights map[string][]float64
}

// New returns a model skeleton without weights.
func New(labelName string, method stats.Method) *Model {
	return &Model{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		LabelName: labelName,
		Method:    method,
		Weights:   make(map[string][]float64),
	}
}

// FeatureCount is the length every theta vector must have.
func (m *Model) FeatureCount() int { return len(m.Factors) }

// Labels returns the trained labels sorted lexicographically.
func (m *Model) Labels() []string {
	labels := make([]string, 0, len(m.Weights))
	for label := range m.Weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Validate checks that factors, means, names and every theta vector agree on
// the feature count.
func (m *Model) Validate() error {
	n := len(m.Factors)
	if len(m.Means) != n {
		return errors.Wrapf(data.ErrSchema, "model has %d normalization factors but %d means", n, len(m.Means))
	}
	if len(m.Features) != 0 && len(m.Features) != n {
		return errors.Wrapf(data.ErrSchema, "model has %d normalization factors but %d feature names", n, len(m.Features))
	}
	for label, theta := range m.Weights {
		if len(theta) != n {
			return errors.Wrapf(data.ErrSchema, "label %q has %d weights, expected %d", label, len(theta), n)
		}
	}
	return nil
}

// Normalize rescales a raw feature row in place with the stored factors.
func (m *Model) Normalize(row []float64) {
	for j := range row {
		row[j] = m.Factors[j].Apply(m.Method, row[j])
	}
}

// Classify returns the label whose classifier scores the normalized row
// highest.
func (m *Model) Classify(row []float64) string {
	return hypothesis.OneVsAll(row, m.Weights)
}
