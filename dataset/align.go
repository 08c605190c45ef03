package dataset

import (
	"fmt"
)

// Align reconciles test's columns with the reference schema: columns in the
// schema but absent from test are added as all-zero columns, then test's
// columns are selected and reordered to exactly match the schema. Columns
// present only in test are dropped. This can silently discard a one-hot
// category seen only at test time; that is the intended policy, not a bug.
//
// The label column must already be removed from both sides; labelColumn is
// rejected if it still appears in the schema. Row count and row order are
// unchanged.
func Align(schema []string, test *Frame, labelColumn string) error {
	if test == nil {
		return fmt.Errorf("align: test frame is nil")
	}
	for _, name := range schema {
		if labelColumn != "" && name == labelColumn {
			return fmt.Errorf("align: label column %q still present in reference schema", name)
		}
	}

	rows := test.NumRows()
	for _, name := range schema {
		if test.HasColumn(name) {
			continue
		}
		if err := test.AddColumn(name, make([]float64, rows)); err != nil {
			return err
		}
	}

	data := make(map[string][]float64, len(schema))
	for _, name := range schema {
		values, err := test.Column(name)
		if err != nil {
			return err
		}
		data[name] = values
	}
	test.columns = append([]string(nil), schema...)
	test.data = data
	test.rows = rows

	// post-condition: column list identical to the schema, in order
	got := test.Columns()
	if len(got) != len(schema) {
		return fmt.Errorf("align: %d columns after align, expected %d", len(got), len(schema))
	}
	for i := range schema {
		if got[i] != schema[i] {
			return fmt.Errorf("align: column %d is %q, expected %q", i, got[i], schema[i])
		}
	}
	return nil
}

// ExtraColumns returns the columns in test absent from the schema, i.e. the
// columns Align would drop. Used for logging before the lossy step.
func ExtraColumns(schema []string, test *Frame) []string {
	inSchema := make(map[string]bool, len(schema))
	for _, name := range schema {
		inSchema[name] = true
	}
	var extra []string
	for _, name := range test.Columns() {
		if !inSchema[name] {
			extra = append(extra, name)
		}
	}
	return extra
}
