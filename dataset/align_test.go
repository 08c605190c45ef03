package dataset

import "testing"

func frameFrom(t *testing.T, columns []string, rows [][]float64) *Frame {
	t.Helper()
	frame := NewFrame()
	for j, name := range columns {
		values := make([]float64, len(rows))
		for i, row := range rows {
			values[i] = row[j]
		}
		if err := frame.AddColumn(name, values); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return frame
}

func TestAlignFillsMissingAndDropsExtra(t *testing.T) {
	schema := []string{"A", "B", "OneHot_X", "OneHot_Y"}
	test := frameFrom(t, []string{"A", "B", "OneHot_X", "OneHot_Z"}, [][]float64{
		{1, 2, 1, 0},
		{3, 4, 0, 1},
	})

	if err := Align(schema, test, "Churn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := test.Columns()
	if len(got) != len(schema) {
		t.Fatalf("expected %d columns, got %d", len(schema), len(got))
	}
	for i, name := range schema {
		if got[i] != name {
			t.Fatalf("column %d: expected %q, got %q", i, name, got[i])
		}
	}
	if test.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", test.NumRows())
	}

	filled, err := test.Column("OneHot_Y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range filled {
		if v != 0 {
			t.Fatalf("row %d of OneHot_Y: expected 0, got %f", i, v)
		}
	}
	if test.HasColumn("OneHot_Z") {
		t.Fatal("expected OneHot_Z to be dropped")
	}
}

func TestAlignPreservesRowOrder(t *testing.T) {
	schema := []string{"A", "B"}
	test := frameFrom(t, []string{"B", "A"}, [][]float64{
		{10, 1},
		{20, 2},
		{30, 3},
	})

	if err := Align(schema, test, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := test.Column("A")
	b, _ := test.Column("B")
	for i := 0; i < 3; i++ {
		if a[i] != float64(i+1) || b[i] != float64(i+1)*10 {
			t.Fatalf("row %d reordered: a=%f b=%f", i, a[i], b[i])
		}
	}
}

func TestAlignIdempotent(t *testing.T) {
	schema := []string{"A", "OneHot_X"}
	test := frameFrom(t, schema, [][]float64{
		{1, 0},
		{2, 1},
	})
	want := test.Clone()

	if err := Align(schema, test, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !test.Equal(want) {
		t.Fatal("aligning an already-aligned frame changed it")
	}
	if err := Align(schema, test, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !test.Equal(want) {
		t.Fatal("second align changed the frame")
	}
}

func TestAlignRejectsLabelInSchema(t *testing.T) {
	test := frameFrom(t, []string{"A", "Churn"}, [][]float64{{1, 0}})
	if err := Align([]string{"A", "Churn"}, test, "Churn"); err == nil {
		t.Fatal("expected error for label column in reference schema")
	}
}

func TestExtraColumns(t *testing.T) {
	schema := []string{"A", "B"}
	test := frameFrom(t, []string{"A", "B", "OneHot_Z"}, [][]float64{{1, 2, 3}})
	extra := ExtraColumns(schema, test)
	if len(extra) != 1 || extra[0] != "OneHot_Z" {
		t.Fatalf("expected [OneHot_Z], got %v", extra)
	}
}
