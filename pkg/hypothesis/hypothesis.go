// Package hypothesis holds the scoring function shared by training and
// inference, and the one-vs-all decision rule built on it.
package hypothesis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Hypothesis is the sigmoid-linear score of row under theta.
func Hypothesis(row, theta []float64) float64 {
	return Sigmoid(floats.Dot(row, theta))
}

// OneVsAll returns the label whose classifier scores row highest.
// Labels are visited in lexicographic order and a later label only wins on
// a strictly greater score, so ties go to the smallest label. It returns ""
// when weights is empty or no label scores a number.
func OneVsAll(row []float64, weights map[string][]float64) string {
	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best, bestScore := "", math.Inf(-1)
	for _, label := range labels {
		if score := Hypothesis(row, weights[label]); score > bestScore {
			best, bestScore = label, score
		}
	}
	return best
}

// Scores returns every label's score for row.
func Scores(row []float64, weights map[string][]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for label, theta := range weights {
		out[label] = Hypothesis(row, theta)
	}
	return out
}
