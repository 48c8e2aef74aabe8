// Package dataprep turns a loaded table into normalized, label-grouped
// training and testing rows plus the model skeleton that records how.
package dataprep

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dslr/pkg/data"
	"dslr/pkg/model"
	"dslr/pkg/stats"
)

// DefaultSplitFactor sends every second row of a label to testing.
const DefaultSplitFactor = 2

// Options controls Prepare.
type Options struct {
	Method      stats.Method
	SplitFactor int
	// LabelColumn names the label; empty means the first string column.
	LabelColumn   string
	IgnoreColumns []string
	// FloatOnly leaves integer columns out of the features.
	FloatOnly bool
}

// Prepared is everything training needs from a table.
type Prepared struct {
	Schema   Schema
	Analyses []stats.Analysis // one per feature, whole table
	Groups   GroupedDatasets
	Model    *model.Model // factors and means set, no weights yet
}

// Prepare resolves the schema of t, imputes, normalizes and splits it.
func Prepare(t *data.Table, opts Options, log *zap.Logger) (*Prepared, error) {
	if opts.SplitFactor == 0 {
		opts.SplitFactor = DefaultSplitFactor
	}
	if opts.SplitFactor < 1 {
		return nil, errors.Errorf("split factor must be positive, got %d", opts.SplitFactor)
	}

	schema, err := ResolveSchema(t, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range schema.Skipped {
		log.Warn("skipping column without any present value", zap.String("column", name))
	}

	analyses := make([]stats.Analysis, len(schema.FeatureIndex))
	for j, idx := range schema.FeatureIndex {
		analyses[j] = stats.Analyze(&t.Columns[idx])
	}
	means, err := Means(analyses)
	if err != nil {
		return nil, err
	}
	scaler := stats.NewScaler(opts.Method)
	if err := scaler.Fit(analyses); err != nil {
		return nil, err
	}

	rows, labels := Materialize(t, schema, means)
	scaler.Transform(rows)
	groups := StratifiedSplit(rows, labels, opts.SplitFactor)

	m := model.New(schema.Label, opts.Method)
	m.Features = schema.FeatureNames
	m.Factors = scaler.Factors
	m.Means = means

	log.Info("prepared dataset",
		zap.String("label", schema.Label),
		zap.Int("features", len(schema.FeatureNames)),
		zap.Int("labels", len(groups)),
		zap.Int("training_rows", groups.TrainingRows()),
		zap.Int("testing_rows", groups.TestingRows()),
		zap.Stringer("method", opts.Method))
	return &Prepared{Schema: schema, Analyses: analyses, Groups: groups, Model: m}, nil
}
