package train

import (
	"dslr/pkg/dataprep"
	"dslr/pkg/model"
)

// TotalLabel names the aggregate row of a Report.
const TotalLabel = "total"

// Score is the evaluation of one label, or of all of them.
type Score struct {
	Label        string
	TrainCorrect int
	TrainTotal   int
	TestCorrect  int
	TestTotal    int
	// Precision, Recall and F1 are one-vs-rest scores on the testing rows.
	// For the total row they are the unweighted mean over labels.
	Precision float64
	Recall    float64
	F1        float64
}

func (s Score) TrainAccuracy() float64 { return ratio(s.TrainCorrect, s.TrainTotal) }

func (s Score) TestAccuracy() float64 { return ratio(s.TestCorrect, s.TestTotal) }

// Report holds per-label scores in label order and the total.
type Report struct {
	Labels []Score
	Total  Score
}

// Evaluate classifies every training and testing row of groups with m.
func Evaluate(groups dataprep.GroupedDatasets, m *model.Model) Report {
	labels := groups.Labels()
	r := Report{Labels: make([]Score, len(labels)), Total: Score{Label: TotalLabel}}

	var testTrue, testPred []string
	for i, label := range labels {
		s := Score{Label: label}
		for _, row := range groups[label].Training {
			s.TrainTotal++
			if m.Classify(row) == label {
				s.TrainCorrect++
			}
		}
		for _, row := range groups[label].Testing {
			pred := m.Classify(row)
			s.TestTotal++
			if pred == label {
				s.TestCorrect++
			}
			testTrue = append(testTrue, label)
			testPred = append(testPred, pred)
		}
		r.Labels[i] = s
		r.Total.TrainCorrect += s.TrainCorrect
		r.Total.TrainTotal += s.TrainTotal
		r.Total.TestCorrect += s.TestCorrect
		r.Total.TestTotal += s.TestTotal
	}

	if len(labels) == 0 {
		return r
	}
	for i := range r.Labels {
		s := &r.Labels[i]
		s.Precision, s.Recall, s.F1 = PrecisionRecallF1(testTrue, testPred, s.Label)
		r.Total.Precision += s.Precision
		r.Total.Recall += s.Recall
		r.Total.F1 += s.F1
	}
	k := float64(len(labels))
	r.Total.Precision /= k
	r.Total.Recall /= k
	r.Total.F1 /= k
	return r
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
