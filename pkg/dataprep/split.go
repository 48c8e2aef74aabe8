package dataprep

import "sort"

// Datasets holds the rows of one label, split for training and testing.
type Datasets struct {
	Training [][]float64
	Testing  [][]float64
}

// GroupedDatasets maps each label to its split rows.
type GroupedDatasets map[string]*Datasets

// Labels returns the labels in lexicographic order.
func (g GroupedDatasets) Labels() []string {
	labels := make([]string, 0, len(g))
	for label := range g {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// TrainingRows counts the training rows across every label.
func (g GroupedDatasets) TrainingRows() int {
	n := 0
	for _, d := range g {
		n += len(d.Training)
	}
	return n
}

// TestingRows counts the testing rows across every label.
func (g GroupedDatasets) TestingRows() int {
	n := 0
	for _, d := range g {
		n += len(d.Testing)
	}
	return n
}

// StratifiedSplit groups rows by label and splits each group without
// shuffling. The first row of a label goes to training. A later row goes to
// testing when the label has no testing row yet or when its index in the
// whole table is a multiple of factor; otherwise it goes to training.
func StratifiedSplit(rows [][]float64, labels []string, factor int) GroupedDatasets {
	groups := make(GroupedDatasets)
	for i, row := range rows {
		d, seen := groups[labels[i]]
		switch {
		case !seen:
			groups[labels[i]] = &Datasets{Training: [][]float64{row}}
		case len(d.Testing) == 0 || i%factor == 0:
			d.Testing = append(d.Testing, row)
		default:
			d.Training = append(d.Training, row)
		}
	}
	return groups
}
