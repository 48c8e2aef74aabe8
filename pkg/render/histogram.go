package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/guptarohit/asciigraph"
)

// Histogram plots, for each label, how many of its rows fall in each bin
// of feature over [lo, hi].
func Histogram(w io.Writer, feature string, lo, hi float64, bins map[string][]int) error {
	labels := make([]string, 0, len(bins))
	for label := range bins {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintf(w, "%s: %d bins over [%g, %g]\n\n", feature, binCount(bins), lo, hi)
	for _, label := range labels {
		series := make([]float64, len(bins[label]))
		for i, c := range bins[label] {
			series[i] = float64(c)
		}
		if len(series) == 0 {
			continue
		}
		graph := asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Caption(label))
		if _, err := fmt.Fprintf(w, "%s\n\n", graph); err != nil {
			return err
		}
	}
	return nil
}

func binCount(bins map[string][]int) int {
	for _, b := range bins {
		return len(b)
	}
	return 0
}
