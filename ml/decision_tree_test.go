package ml

import (
	"math"
	"testing"
)

// feature 0 carries the signal, feature 1 is noise
func separableSet() ([][]float64, []float64) {
	X := [][]float64{
		{0.1, 0.7}, {0.2, 0.1}, {0.15, 0.9}, {0.05, 0.4}, {0.25, 0.6},
		{0.3, 0.2}, {0.12, 0.8}, {0.22, 0.3}, {0.18, 0.5}, {0.08, 0.25},
		{0.9, 0.6}, {0.8, 0.2}, {0.85, 0.9}, {0.95, 0.1}, {0.75, 0.5},
		{0.7, 0.8}, {0.88, 0.35}, {0.78, 0.65}, {0.92, 0.45}, {0.82, 0.15},
	}
	y := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	return X, y
}

func checkSeparates(t *testing.T, model Estimator) {
	t.Helper()
	X, y := separableSet()
	if err := model.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	predicted, err := model.Predict([][]float64{{0.1, 0.5}, {0.9, 0.5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if predicted[0] >= 0.5 {
		t.Fatalf("expected low output for negative region, got %f", predicted[0])
	}
	if predicted[1] < 0.5 {
		t.Fatalf("expected high output for positive region, got %f", predicted[1])
	}
}

func TestDecisionTreeSeparates(t *testing.T) {
	checkSeparates(t, NewDecisionTree(3))
}

func TestDecisionTreeNotFitted(t *testing.T) {
	model := NewDecisionTree(3)
	if _, err := model.Predict([][]float64{{0.1, 0.2}}); err != ErrNotFitted {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
	if model.FeatureAttribution() != nil {
		t.Fatal("expected nil attribution before fit")
	}
}

func TestDecisionTreeValidatesInput(t *testing.T) {
	model := NewDecisionTree(3)
	if err := model.Fit(nil, nil); err == nil {
		t.Fatal("expected error for empty training set")
	}
	if err := model.Fit([][]float64{{1}}, []float64{1, 0}); err == nil {
		t.Fatal("expected error for size mismatch")
	}
	if err := model.Fit([][]float64{{1}}, []float64{2}); err == nil {
		t.Fatal("expected error for non-binary label")
	}

	X, y := separableSet()
	if err := model.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := model.Predict([][]float64{{0.1}}); err == nil {
		t.Fatal("expected error for feature count mismatch")
	}
}

func TestDecisionTreeAttribution(t *testing.T) {
	X, y := separableSet()
	model := NewDecisionTree(3)
	if err := model.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	attribution := model.FeatureAttribution()
	if len(attribution) != 2 {
		t.Fatalf("expected 2 attributions, got %d", len(attribution))
	}
	sum := 0.0
	for _, v := range attribution {
		if v < 0 {
			t.Fatalf("impurity reduction cannot be negative: %v", attribution)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected attributions summing to 1, got %f", sum)
	}
	if attribution[0] <= attribution[1] {
		t.Fatalf("expected the signal feature to dominate: %v", attribution)
	}
}

func TestDecisionTreeDeepSplits(t *testing.T) {
	// xor-ish layout forces nested splits; exercises child index fixups
	X := [][]float64{
		{0.1, 0.1}, {0.2, 0.15}, {0.9, 0.9}, {0.85, 0.8},
		{0.1, 0.9}, {0.15, 0.85}, {0.9, 0.1}, {0.8, 0.2},
	}
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}

	model := NewDecisionTree(4)
	if err := model.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	predicted, err := model.Predict(X)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range y {
		if predicted[i] != y[i] {
			t.Fatalf("row %d: expected %f, got %f", i, y[i], predicted[i])
		}
	}
}
