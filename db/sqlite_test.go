package db

import (
	"path/filepath"
	"testing"

	"churnlab/eval"
	"churnlab/study"
)

func sampleResults(t *testing.T) *study.Results {
	t.Helper()
	features := []string{"tenure", "MonthlyCharges"}
	importance := eval.NewImportanceTable(features)

	results := &study.Results{
		Features:   features,
		Importance: importance,
		TrainRows:  12,
		TestRows:   4,
	}
	for i, name := range []string{study.NameLogistic, study.NameRidge} {
		report, err := eval.Classification([]int{1, 0, 1, 1}, []int{1, 0, 0, 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		attribution := []float64{0.5 + float64(i), -0.25}
		if err := importance.SetColumn(name, attribution); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		results.Models = append(results.Models, study.ModelResult{
			Name:        name,
			Regressor:   name == study.NameRidge,
			Report:      report,
			Attribution: attribution,
		})
	}
	return results
}

func TestSaveRunAndLoadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Close()

	results := sampleResults(t)
	runID, err := SaveRun("train.csv", "test.csv", results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected a positive run id, got %d", runID)
	}

	summaries, err := LoadRunHistory(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// one summary per model, in report order
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ModelName != study.NameLogistic || summaries[1].ModelName != study.NameRidge {
		t.Fatalf("unexpected model order: %s, %s", summaries[0].ModelName, summaries[1].ModelName)
	}
	for _, s := range summaries {
		if s.RunID != runID {
			t.Fatalf("expected run id %d, got %d", runID, s.RunID)
		}
		if s.Accuracy != 0.75 {
			t.Fatalf("expected accuracy 0.75, got %f", s.Accuracy)
		}
		if s.RanAt.IsZero() {
			t.Fatal("expected a run timestamp")
		}
	}
}

func TestSaveRunRequiresInit(t *testing.T) {
	if database != nil {
		t.Fatal("expected a fresh package state")
	}
	if _, err := SaveRun("a.csv", "b.csv", sampleResults(t)); err == nil {
		t.Fatal("expected error before InitDB")
	}
	if _, err := LoadRunHistory(5); err == nil {
		t.Fatal("expected error before InitDB")
	}
}
