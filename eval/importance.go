package eval

import (
	"fmt"
)

// ImportanceTable collects per-feature attributions side by side: one row
// per feature, one column per model, filled in model order. Columns hold
// two incomparable kinds of numbers (signed coefficients for linear models,
// normalized impurity reductions for tree ensembles); the table keeps them
// separate and never ranks across columns.
type ImportanceTable struct {
	features []string
	models   []string
	values   map[string][]float64
}

func NewImportanceTable(features []string) *ImportanceTable {
	return &ImportanceTable{
		features: append([]string(nil), features...),
		values:   make(map[string][]float64),
	}
}

// SetColumn records one model's attribution vector. The vector length must
// match the feature list.
func (t *ImportanceTable) SetColumn(model string, attribution []float64) error {
	if len(attribution) != len(t.features) {
		return fmt.Errorf("model %s: %d attributions for %d features", model, len(attribution), len(t.features))
	}
	if _, ok := t.values[model]; ok {
		return fmt.Errorf("model %s already recorded", model)
	}
	t.models = append(t.models, model)
	t.values[model] = append([]float64(nil), attribution...)
	return nil
}

// Features returns the row labels in order.
func (t *ImportanceTable) Features() []string {
	return append([]string(nil), t.features...)
}

// Models returns the column labels in insertion order.
func (t *ImportanceTable) Models() []string {
	return append([]string(nil), t.models...)
}

// Value returns the cell for a feature row and model column.
func (t *ImportanceTable) Value(featureIdx int, model string) (float64, error) {
	column, ok := t.values[model]
	if !ok {
		return 0, fmt.Errorf("model %s not recorded", model)
	}
	if featureIdx < 0 || featureIdx >= len(t.features) {
		return 0, fmt.Errorf("feature index %d out of range", featureIdx)
	}
	return column[featureIdx], nil
}

// NumRows reports the feature count, NumColumns the model count.
func (t *ImportanceTable) NumRows() int    { return len(t.features) }
func (t *ImportanceTable) NumColumns() int { return len(t.models) }
