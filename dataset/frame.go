package dataset

import (
	"errors"
	"fmt"
)

// Frame is an ordered set of named float64 columns with equal row counts.
// Column order is significant: models downstream are order-sensitive.
type Frame struct {
	columns []string
	data    map[string][]float64
	rows    int
}

func NewFrame() *Frame {
	return &Frame{data: make(map[string][]float64)}
}

// AddColumn appends a named column. The first column fixes the row count.
func (f *Frame) AddColumn(name string, values []float64) error {
	if _, ok := f.data[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(f.columns) > 0 && len(values) != f.rows {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, len(values), f.rows)
	}
	f.columns = append(f.columns, name)
	f.data[name] = values
	f.rows = len(values)
	return nil
}

func (f *Frame) NumRows() int { return f.rows }

func (f *Frame) NumColumns() int { return len(f.columns) }

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

func (f *Frame) Column(name string) ([]float64, error) {
	values, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return values, nil
}

// Drop removes a column. Removing a missing column is an error.
func (f *Frame) Drop(name string) error {
	if _, ok := f.data[name]; !ok {
		return fmt.Errorf("column %q not found", name)
	}
	delete(f.data, name)
	for i, col := range f.columns {
		if col == name {
			f.columns = append(f.columns[:i], f.columns[i+1:]...)
			break
		}
	}
	return nil
}

// Pop removes a column and returns its values.
func (f *Frame) Pop(name string) ([]float64, error) {
	values, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if err := f.Drop(name); err != nil {
		return nil, err
	}
	return values, nil
}

// Matrix returns the frame as row-major vectors in column order.
func (f *Frame) Matrix() [][]float64 {
	out := make([][]float64, f.rows)
	for i := 0; i < f.rows; i++ {
		row := make([]float64, len(f.columns))
		for j, col := range f.columns {
			row[j] = f.data[col][i]
		}
		out[i] = row
	}
	return out
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	clone := NewFrame()
	for _, col := range f.columns {
		values := make([]float64, f.rows)
		copy(values, f.data[col])
		// AddColumn cannot fail here: names are unique, lengths match
		_ = clone.AddColumn(col, values)
	}
	return clone
}

// Equal reports whether two frames have identical schemas and values.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || f.rows != other.rows || len(f.columns) != len(other.columns) {
		return false
	}
	for i, col := range f.columns {
		if other.columns[i] != col {
			return false
		}
		a, b := f.data[col], other.data[col]
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

var errEmptyFrame = errors.New("frame has no columns")

// checkRect verifies the equal-row-count invariant. Internal consistency
// guard used after bulk construction.
func (f *Frame) checkRect() error {
	if len(f.columns) == 0 {
		return errEmptyFrame
	}
	for _, col := range f.columns {
		if len(f.data[col]) != f.rows {
			return fmt.Errorf("column %q has %d rows, expected %d", col, len(f.data[col]), f.rows)
		}
	}
	return nil
}
