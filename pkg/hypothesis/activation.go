package hypothesis

import "math"

// Sigmoid maps z to (0, 1). Negative inputs are computed from exp(z) so a
// large magnitude never divides by an infinite term.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
