package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestStep(t *testing.T) {
	w := mat.NewDense(2, 2, []float64{1, -2, 0.5, 3})
	NewGradientDescent(0.5).Step(w, mat.NewDense(2, 2, []float64{2, -2, 0, 6}))
	assert.Equal(t, []float64{0, -1, 0.5, 0}, w.RawMatrix().Data)
}

func TestStepTransposedGradient(t *testing.T) {
	w := mat.NewDense(1, 2, []float64{1, 1})
	g := mat.NewDense(2, 1, []float64{1, 2})
	NewGradientDescent(1).Step(w, g.T())
	assert.Equal(t, []float64{0, -1}, w.RawMatrix().Data)
}
