// Package train fits one-vs-all logistic regression weights by batch
// gradient descent and evaluates the result.
package train

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"dslr/pkg/data"
	"dslr/pkg/dataprep"
	"dslr/pkg/hypothesis"
	"dslr/pkg/model"
	"dslr/pkg/optim"
)

// Params configures the descent.
type Params struct {
	LearningRate float64
	Iterations   int
	// LogEvery is the loss logging cadence in iterations; 0 disables it.
	LogEvery int
}

// Trainer fits every label's theta vector at once.
type Trainer struct {
	params Params
	opt    *optim.GradientDescent
	log    *zap.Logger
}

func New(p Params, log *zap.Logger) *Trainer {
	return &Trainer{params: p, opt: optim.NewGradientDescent(p.LearningRate), log: log}
}

// Fit trains m on the training rows of groups and stores one theta vector
// per label in m.Weights. It returns the mean log loss of the final
// weights on the training rows.
//
// Each iteration computes G = Xᵀ(σ(XΘ) - Y) / m and Θ -= lr·G, where X
// holds every training row, Y is the one-hot truth and Θ has one column
// per label. Every update in an iteration uses the weights from its start.
func (t *Trainer) Fit(groups dataprep.GroupedDatasets, m *model.Model) (float64, error) {
	if t.params.LearningRate <= 0 || t.params.Iterations <= 0 {
		return 0, errors.Errorf("learning rate and iterations must be positive, got %g and %d",
			t.params.LearningRate, t.params.Iterations)
	}
	n := m.FeatureCount()
	if n == 0 {
		return 0, errors.Wrap(data.ErrSchema, "model has no features")
	}
	total := groups.TrainingRows()
	if total == 0 {
		return 0, errors.Wrap(data.ErrSchema, "no training rows")
	}

	labels := groups.Labels()
	X := mat.NewDense(total, n, nil)
	truth := make([]string, 0, total)
	for _, label := range labels {
		rows := groups[label].Training
		if len(rows) == 0 {
			return 0, errors.Wrapf(data.ErrSchema, "label %q has no training rows", label)
		}
		for _, row := range rows {
			if len(row) != n {
				return 0, errors.Wrapf(data.ErrSchema, "training row has %d features, model has %d", len(row), n)
			}
			X.SetRow(len(truth), row)
			truth = append(truth, label)
		}
	}
	_, index := dataprep.LabelEncode(truth)
	Y := dataprep.OneHot(truth, index)
	k := len(labels)

	theta := mat.NewDense(n, k, nil)
	h := mat.NewDense(total, k, nil)
	grad := mat.NewDense(n, k, nil)
	sigmoid := func(_, _ int, v float64) float64 { return hypothesis.Sigmoid(v) }
	scale := 1 / float64(total)

	t.log.Info("training",
		zap.Int("rows", total),
		zap.Int("features", n),
		zap.Int("labels", k),
		zap.Float64("learning_rate", t.params.LearningRate),
		zap.Int("iterations", t.params.Iterations))

	for it := range t.params.Iterations {
		h.Mul(X, theta)
		h.Apply(sigmoid, h)
		if t.params.LogEvery > 0 && it%t.params.LogEvery == 0 {
			t.log.Debug("iteration", zap.Int("iteration", it), zap.Float64("loss", loss(Y, h)))
		}
		h.Sub(h, Y)
		grad.Mul(X.T(), h)
		grad.Scale(scale, grad)
		t.opt.Step(theta, grad)
	}

	h.Mul(X, theta)
	h.Apply(sigmoid, h)
	final := loss(Y, h)
	t.log.Info("trained", zap.Float64("loss", final))

	m.Weights = make(map[string][]float64, k)
	for j, label := range labels {
		m.Weights[label] = mat.Col(nil, j, theta)
	}
	return final, nil
}

func loss(y, h *mat.Dense) float64 {
	return hypothesis.LogLoss(y.RawMatrix().Data, h.RawMatrix().Data)
}
