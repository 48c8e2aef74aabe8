// Package pipeline binds loading, preparation, training, evaluation and
// persistence into the flows the commands run.
package pipeline

import (
	"context"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dslr/pkg/data"
	"dslr/pkg/dataprep"
	"dslr/pkg/model"
	"dslr/pkg/predict"
	"dslr/pkg/registry"
	"dslr/pkg/render"
	"dslr/pkg/stats"
	"dslr/pkg/train"
)

// DescribeOptions configures Describe.
type DescribeOptions struct {
	Path  string
	Full  bool
	Round int
	// Correlations also prints the feature correlation matrix.
	Correlations bool
}

// Describe prints the statistics of every column of the table at opts.Path.
func Describe(w io.Writer, opts DescribeOptions, log *zap.Logger) error {
	t, err := data.Load(opts.Path, data.Options{})
	if err != nil {
		return err
	}
	analyses := stats.AnalyzeTable(t)
	log.Debug("analyzed", zap.String("path", opts.Path), zap.Int("rows", t.Rows), zap.Int("columns", len(analyses)))
	render.Describe(w, analyses, render.DescribeOptions{Full: opts.Full, Round: opts.Round})

	if !opts.Correlations {
		return nil
	}
	names, matrix := CorrelationMatrix(t)
	render.Correlations(w, names, matrix, opts.Round)
	if i, j, r := MostCorrelated(matrix); i >= 0 {
		log.Info("most similar features", zap.String("first", names[i]), zap.String("second", names[j]), zap.Float64("r", r))
	}
	return nil
}

// CorrelationMatrix computes the Pearson coefficient of every pair of
// numeric columns of t.
func CorrelationMatrix(t *data.Table) ([]string, [][]float64) {
	var cols []*data.Column
	for i := range t.Columns {
		if t.Columns[i].Kind.IsNumeric() {
			cols = append(cols, &t.Columns[i])
		}
	}
	names := make([]string, len(cols))
	matrix := make([][]float64, len(cols))
	for i, a := range cols {
		names[i] = a.Name
		matrix[i] = make([]float64, len(cols))
		for j, b := range cols {
			if j < i {
				matrix[i][j] = matrix[j][i]
				continue
			}
			matrix[i][j] = stats.Correlation(a.Values, b.Values, a.Valid, b.Valid)
		}
	}
	return names, matrix
}

// MostCorrelated returns the off-diagonal pair with the largest absolute
// coefficient, or i = -1 when there is none.
func MostCorrelated(matrix [][]float64) (i, j int, r float64) {
	i, j, r = -1, -1, math.NaN()
	best := -1.0
	for a := range matrix {
		for b := a + 1; b < len(matrix[a]); b++ {
			v := matrix[a][b]
			if math.IsNaN(v) || math.Abs(v) <= best {
				continue
			}
			i, j, r, best = a, b, v, math.Abs(v)
		}
	}
	return i, j, r
}

// TrainOptions configures Train.
type TrainOptions struct {
	Path      string
	ModelPath string
	Prepare   dataprep.Options
	Params    train.Params
	// Registry is the run database; empty skips recording.
	Registry string
}

// TrainResult is what a training run produced.
type TrainResult struct {
	Model  *model.Model
	Report train.Report
	Loss   float64
	Run    *registry.Run
}

// Train fits a model on the table at opts.Path, evaluates it on the held
// out rows and writes it to opts.ModelPath.
func Train(ctx context.Context, opts TrainOptions, log *zap.Logger) (*TrainResult, error) {
	t, err := data.Load(opts.Path, data.Options{})
	if err != nil {
		return nil, err
	}
	prepared, err := dataprep.Prepare(t, opts.Prepare, log)
	if err != nil {
		return nil, err
	}
	m := prepared.Model
	loss, err := train.New(opts.Params, log).Fit(prepared.Groups, m)
	if err != nil {
		return nil, err
	}
	report := train.Evaluate(prepared.Groups, m)
	log.Info("evaluated",
		zap.Float64("train_accuracy", report.Total.TrainAccuracy()),
		zap.Float64("test_accuracy", report.Total.TestAccuracy()))

	if err := m.Write(opts.ModelPath); err != nil {
		return nil, err
	}
	log.Info("model written", zap.String("path", opts.ModelPath), zap.String("run_id", m.RunID))

	res := &TrainResult{Model: m, Report: report, Loss: loss}
	if opts.Registry == "" {
		return res, nil
	}
	store, err := registry.Open(opts.Registry)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	run, err := store.Record(ctx, registry.Run{
		ID:            m.RunID,
		Dataset:       opts.Path,
		ModelPath:     opts.ModelPath,
		LabelName:     m.LabelName,
		Method:        m.Method.String(),
		LearningRate:  opts.Params.LearningRate,
		Iterations:    opts.Params.Iterations,
		Features:      m.FeatureCount(),
		Labels:        len(m.Weights),
		TrainRows:     prepared.Groups.TrainingRows(),
		TestRows:      prepared.Groups.TestingRows(),
		Loss:          loss,
		TrainAccuracy: report.Total.TrainAccuracy(),
		TestAccuracy:  report.Total.TestAccuracy(),
		TrainedAt:     m.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	res.Run = &run
	return res, nil
}

// PredictOptions configures Predict.
type PredictOptions struct {
	Path      string
	ModelPath string
	Output    string
}

// Predict classifies the table at opts.Path with the model at
// opts.ModelPath and writes the predictions to opts.Output.
func Predict(opts PredictOptions, log *zap.Logger) ([]predict.Prediction, error) {
	m, err := model.Read(opts.ModelPath)
	if err != nil {
		return nil, err
	}
	if m.RunID == "" {
		log.Warn("model has no sidecar, assuming stddev normalization and imputing with the stored means",
			zap.String("path", opts.ModelPath), zap.String("sidecar", model.MetaPath(opts.ModelPath)))
	}
	t, err := data.Load(opts.Path, data.Options{})
	if err != nil {
		return nil, err
	}
	preds, err := predict.Predict(t, m)
	if err != nil {
		return nil, err
	}
	if err := predict.Write(opts.Output, m.LabelName, preds); err != nil {
		return nil, err
	}
	log.Info("predictions written", zap.String("path", opts.Output), zap.Int("rows", len(preds)))
	return preds, nil
}

// HistogramOptions configures Histogram.
type HistogramOptions struct {
	Path        string
	Feature     string
	Bins        int
	LabelColumn string
}

// Histogram plots the distribution of one feature per label.
func Histogram(w io.Writer, opts HistogramOptions, log *zap.Logger) error {
	if opts.Bins <= 0 {
		return errors.Errorf("bins must be positive, got %d", opts.Bins)
	}
	t, err := data.Load(opts.Path, data.Options{})
	if err != nil {
		return err
	}
	col := t.Column(opts.Feature)
	if col == nil {
		return errors.Wrapf(data.ErrSchema, "feature column %q does not exist", opts.Feature)
	}
	a := stats.Analyze(col)
	if !a.Numeric() {
		return errors.Wrapf(data.ErrDegenerate, "feature %q has no numeric values", opts.Feature)
	}
	schema, err := dataprep.ResolveSchema(t, dataprep.Options{LabelColumn: opts.LabelColumn})
	if err != nil {
		return err
	}
	label := &t.Columns[schema.LabelIndex]

	values := make(map[string][]float64)
	for i := range t.Rows {
		if !col.Valid[i] {
			continue
		}
		name := dataprep.UnknownLabel
		if !label.Missing(i) {
			name = strings.TrimSpace(label.Raw[i])
		}
		values[name] = append(values[name], col.Values[i])
	}
	bins := make(map[string][]int, len(values))
	for name, v := range values {
		bins[name] = dataprep.BinContinuous(v, a.Summary.Min, a.Summary.Max, opts.Bins)
	}
	log.Debug("binned", zap.String("feature", opts.Feature), zap.Int("labels", len(bins)))
	return render.Histogram(w, opts.Feature, a.Summary.Min, a.Summary.Max, bins)
}
