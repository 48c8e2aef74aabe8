package dataprep

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// UnknownLabel stands in for a missing label cell.
const UnknownLabel = "UNKNOWN"

// LabelEncode maps each distinct label to its rank in lexicographic order.
func LabelEncode(labels []string) ([]string, map[string]int) {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0)
	for _, v := range labels {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			unique = append(unique, v)
		}
	}
	sort.Strings(unique)
	index := make(map[string]int, len(unique))
	for i, v := range unique {
		index[v] = i
	}
	return unique, index
}

// OneHot encodes labels as a len(labels)×len(index) indicator matrix.
func OneHot(labels []string, index map[string]int) *mat.Dense {
	out := mat.NewDense(len(labels), len(index), nil)
	for i, v := range labels {
		out.Set(i, index[v], 1)
	}
	return out
}
