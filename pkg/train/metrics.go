package train

// Accuracy is the share of positions where the predicted label equals the
// true one. It is 0 for empty input.
func Accuracy(yTrue, yPred []string) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// PrecisionRecallF1 scores positive against every other label.
func PrecisionRecallF1(yTrue, yPred []string, positive string) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		isTrue, isPred := yTrue[i] == positive, yPred[i] == positive
		if isPred && isTrue {
			tp++
		}
		if isPred && !isTrue {
			fp++
		}
		if !isPred && isTrue {
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}
