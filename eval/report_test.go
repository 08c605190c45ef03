package eval

import (
	"math"
	"strings"
	"testing"
)

func TestThresholdBoundaryInclusive(t *testing.T) {
	scores := []float64{0.49999, 0.5, 0.50001, -1, 2, 0}
	want := []int{0, 1, 1, 0, 1, 0}
	got := Threshold(scores)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("score %f: expected %d, got %d", scores[i], want[i], got[i])
		}
	}
}

func TestLabelsMatchesThreshold(t *testing.T) {
	values := []float64{0, 1, 0.5, 0.49999, 0.75}
	labels := Labels(values)
	thresholded := Threshold(values)
	for i := range values {
		if labels[i] != thresholded[i] {
			t.Fatalf("value %f: Labels gives %d, Threshold gives %d", values[i], labels[i], thresholded[i])
		}
	}
}

func TestClassificationReport(t *testing.T) {
	yTrue := []int{1, 0, 1, 1, 0}
	yPred := []int{1, 0, 0, 1, 0}

	report, err := Classification(yTrue, yPred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := report.Classes[1]
	if pos.Precision != 1.0 {
		t.Fatalf("expected precision 1.0, got %f", pos.Precision)
	}
	if math.Abs(pos.Recall-2.0/3.0) > 1e-9 {
		t.Fatalf("expected recall 2/3, got %f", pos.Recall)
	}
	if math.Abs(pos.F1-0.8) > 1e-9 {
		t.Fatalf("expected F1 0.8, got %f", pos.F1)
	}
	if pos.Support != 3 {
		t.Fatalf("expected support 3, got %d", pos.Support)
	}
	if report.Accuracy != 0.8 {
		t.Fatalf("expected accuracy 0.8, got %f", report.Accuracy)
	}
	if report.Classes[0].Support != 2 {
		t.Fatalf("expected class-0 support 2, got %d", report.Classes[0].Support)
	}
}

func TestClassificationDegenerateClass(t *testing.T) {
	// no positive instances and no positive predictions
	report, err := Classification([]int{0, 0, 0}, []int{0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := report.Classes[1]
	if pos.Support != 0 {
		t.Fatalf("expected support 0, got %d", pos.Support)
	}
	if pos.Precision != 0 || pos.Recall != 0 || pos.F1 != 0 {
		t.Fatalf("expected zeroed metrics, got %+v", pos)
	}
	if math.IsNaN(pos.Precision) || math.IsNaN(pos.Recall) || math.IsNaN(pos.F1) {
		t.Fatal("NaN leaked into report")
	}
	if report.Accuracy != 1.0 {
		t.Fatalf("expected accuracy 1.0, got %f", report.Accuracy)
	}
}

func TestClassificationErrors(t *testing.T) {
	if _, err := Classification(nil, nil); err == nil {
		t.Fatal("expected error for empty vectors")
	}
	if _, err := Classification([]int{1}, []int{1, 0}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRenderReportNoNaN(t *testing.T) {
	report, err := Classification([]int{0, 0}, []int{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf strings.Builder
	RenderReport(&buf, "DecisionTree", report)
	out := buf.String()
	if strings.Contains(out, "NaN") {
		t.Fatalf("NaN in rendered report:\n%s", out)
	}
	if !strings.Contains(out, "DecisionTree") {
		t.Fatal("model name missing from rendered report")
	}
}
