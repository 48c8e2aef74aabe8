package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Sum(x) / float64(len(x))
}

// Std computes the population standard deviation (divisor n).
func Std(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

// SortedCopy returns x sorted ascending, leaving x untouched.
func SortedCopy(x []float64) []float64 {
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return cp
}

// Median of an ascending slice: the middle element, or the average of the
// two middle elements (n/2-1 and n/2) when n is even.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n >> 1
	if n&1 == 0 {
		return (sorted[mid-1] + sorted[mid]) * 0.5
	}
	return sorted[mid]
}

// Quartiles of an ascending slice by position, not interpolation.
// When n%4 == 0, q1 averages indices n/4-1 and n/4 and q3 averages 3n/4-1
// and 3n/4. Otherwise q1 = sorted[n/4] and q3 = sorted[3n/4], both
// truncated. Reproducing saved reports depends on this exact arithmetic.
func Quartiles(sorted []float64) (q1, q3 float64) {
	n := len(sorted)
	if n == 0 {
		return 0, 0
	}
	if n%4 == 0 {
		quarter := n / 4
		return (sorted[quarter-1] + sorted[quarter]) * 0.5,
			(sorted[3*quarter-1] + sorted[3*quarter]) * 0.5
	}
	return sorted[n/4], sorted[n*3/4]
}

// Correlation computes the Pearson correlation coefficient over the rows
// present in both columns. It returns NaN when fewer than two rows pair up
// or either side is constant.
func Correlation(x, y []float64, xValid, yValid []bool) float64 {
	if len(x) != len(y) {
		return math.NaN()
	}
	var n, sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		if !xValid[i] || !yValid[i] {
			continue
		}
		xi, yi := x[i], y[i]
		n++
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
		sumY2 += yi * yi
	}
	if n < 2 {
		return math.NaN()
	}
	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}
