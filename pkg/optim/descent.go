// Package optim holds the weight update rules used by training.
package optim

import "gonum.org/v1/gonum/mat"

// GradientDescent moves a weight matrix against its gradient with a fixed
// learning rate.
type GradientDescent struct{ LearningRate float64 }

func NewGradientDescent(lr float64) *GradientDescent { return &GradientDescent{LearningRate: lr} }

// Step sets weights to weights - lr*grads in place. Both matrices must have
// the same shape; every element is updated from the same gradient.
func (o *GradientDescent) Step(weights *mat.Dense, grads mat.Matrix) {
	lr := o.LearningRate
	weights.Apply(func(i, j int, w float64) float64 {
		return w - lr*grads.At(i, j)
	}, weights)
}
