package eval

import (
	"strings"
	"testing"
)

func TestImportanceTableShape(t *testing.T) {
	features := []string{"tenure", "MonthlyCharges", "Contract_Two year"}
	models := []string{"LogisticRegression", "Ridge", "Lasso", "DecisionTree", "RandomForest", "GradientBoosting"}

	imp := NewImportanceTable(features)
	for i, model := range models {
		column := make([]float64, len(features))
		for j := range column {
			column[j] = float64(i*10 + j)
		}
		if err := imp.SetColumn(model, column); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if imp.NumRows() != len(features) {
		t.Fatalf("expected %d rows, got %d", len(features), imp.NumRows())
	}
	if imp.NumColumns() != 6 {
		t.Fatalf("expected 6 columns, got %d", imp.NumColumns())
	}
	// no missing cells, model order preserved
	for i := range features {
		for k, model := range imp.Models() {
			if model != models[k] {
				t.Fatalf("column %d: expected %q, got %q", k, models[k], model)
			}
			value, err := imp.Value(i, model)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value != float64(k*10+i) {
				t.Fatalf("cell (%d,%s): expected %d, got %f", i, model, k*10+i, value)
			}
		}
	}
}

func TestImportanceTableRejectsBadColumns(t *testing.T) {
	imp := NewImportanceTable([]string{"a", "b"})
	if err := imp.SetColumn("Ridge", []float64{1}); err == nil {
		t.Fatal("expected error for wrong attribution length")
	}
	if err := imp.SetColumn("Ridge", []float64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := imp.SetColumn("Ridge", []float64{3, 4}); err == nil {
		t.Fatal("expected error for duplicate model")
	}
}

func TestRenderImportance(t *testing.T) {
	imp := NewImportanceTable([]string{"tenure"})
	if err := imp.SetColumn("Ridge", []float64{-0.25}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf strings.Builder
	if err := RenderImportance(&buf, imp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "tenure") || !strings.Contains(out, "-0.2500") {
		t.Fatalf("unexpected render output:\n%s", out)
	}
}
