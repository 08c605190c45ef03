// Package eval scores fitted models against a held-out label vector and
// assembles the per-feature importance table across models.
package eval

import (
	"errors"
)

// Threshold converts continuous scores to 0/1 labels at a fixed 0.5 cut;
// the boundary is inclusive (score 0.5 → 1).
func Threshold(scores []float64) []int {
	out := make([]int, len(scores))
	for i, score := range scores {
		if score >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Labels converts a classifier's discrete float output to int labels. The
// same inclusive cut as Threshold keeps 0/1 outputs unchanged.
func Labels(values []float64) []int {
	return Threshold(values)
}

// ClassMetrics holds the per-class row of a classification report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a binary classification report: one row per class plus overall
// accuracy.
type Report struct {
	Classes  [2]ClassMetrics // index = class label
	Accuracy float64
	Total    int
}

// Classification compares predicted labels against true labels. A class
// with a zero denominator reports precision/recall/F1 of 0, never NaN.
func Classification(yTrue, yPred []int) (*Report, error) {
	if len(yTrue) == 0 {
		return nil, errors.New("empty label vector")
	}
	if len(yTrue) != len(yPred) {
		return nil, errors.New("label vectors differ in length")
	}

	report := &Report{Total: len(yTrue)}
	correct := 0
	for class := 0; class <= 1; class++ {
		var tp, fp, fn, support int
		for i := range yTrue {
			switch {
			case yTrue[i] == class && yPred[i] == class:
				tp++
			case yTrue[i] != class && yPred[i] == class:
				fp++
			case yTrue[i] == class && yPred[i] != class:
				fn++
			}
			if yTrue[i] == class {
				support++
			}
		}
		metrics := ClassMetrics{Support: support}
		if tp+fp > 0 {
			metrics.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			metrics.Recall = float64(tp) / float64(tp+fn)
		}
		if metrics.Precision+metrics.Recall > 0 {
			metrics.F1 = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
		}
		report.Classes[class] = metrics
	}
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(len(yTrue))
	return report, nil
}
