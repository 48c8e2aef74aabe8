package hypothesis

import "math"

const clip = 1e-12

// LogLoss is the mean binary cross-entropy between 0/1 truths and predicted
// probabilities. Predictions are clipped away from 0 and 1.
func LogLoss(yTrue, yPred []float64) float64 {
	n := len(yTrue)
	if n == 0 {
		return 0
	}
	s := 0.0
	for i := range n {
		p := math.Min(math.Max(yPred[i], clip), 1-clip)
		y := yTrue[i]
		s += -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}
	return s / float64(n)
}
