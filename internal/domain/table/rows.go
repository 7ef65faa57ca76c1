package table

import (
	"fmt"
	"iter"
	"strings"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Row is a read-only virtual row: a row index over a snapshot of the
// table's columns.
type Row struct {
	idx   int
	names []string
	cols  map[string]*column.Column
}

// Index returns the row's position in its table.
func (r Row) Index() int { return r.idx }

func (r Row) Len() int { return len(r.names) }

func (r Row) Names() []string { return append([]string(nil), r.names...) }

// Get returns the value in the named column.
func (r Row) Get(name string) (any, error) {
	c, ok := r.cols[name]
	if !ok {
		return nil, errors.NewColumnNotFound(name)
	}
	return c.At(r.idx), nil
}

// Values returns the row's values in column order.
func (r Row) Values() []any {
	out := make([]any, len(r.names))
	for i, n := range r.names {
		out[i] = r.cols[n].At(r.idx)
	}
	return out
}

// Items iterates (name, value) pairs in column order.
func (r Row) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, n := range r.names {
			if !yield(n, r.cols[n].At(r.idx)) {
				return
			}
		}
	}
}

// Map copies the row into a name → value map.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.names))
	for _, n := range r.names {
		out[n] = r.cols[n].At(r.idx)
	}
	return out
}

func (r Row) String() string {
	parts := make([]string, len(r.names))
	for i, n := range r.names {
		v := r.cols[n].At(r.idx)
		if s, ok := v.(string); ok {
			parts[i] = fmt.Sprintf("%s=%q", n, s)
		} else {
			parts[i] = fmt.Sprintf("%s=%s", n, column.FormatValue(v))
		}
	}
	return "Row(" + strings.Join(parts, ", ") + ")"
}

// Rows is a live sequence view over a table's rows.
type Rows struct {
	t *Table
}

// Len returns the row count, or zero for a table without columns.
func (r Rows) Len() int { return r.t.numRows() }

// At returns a single row. Negative indices count from the end.
func (r Rows) At(i int) (Row, error) {
	if _, err := r.t.NumRows(); err != nil {
		return Row{}, err
	}
	idx, err := data.NormalizeIndex(i, r.t.length)
	if err != nil {
		return Row{}, err
	}
	return Row{idx: idx, names: r.t.names, cols: r.t.cols}, nil
}

// All iterates rows in order.
func (r Rows) All() iter.Seq2[int, Row] {
	names, cols, n := r.t.names, r.t.cols, r.t.numRows()
	return func(yield func(int, Row) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, Row{idx: i, names: names, cols: cols}) {
				return
			}
		}
	}
}

// Take returns a sub-table of the rows at idx, in that order. Negative
// indices count from the end.
func (r Rows) Take(idx []int) (*Table, error) {
	n := r.t.numRows()
	norm := make([]int, len(idx))
	for i, j := range idx {
		k, err := data.NormalizeIndex(j, n)
		if err != nil {
			return nil, err
		}
		norm[i] = k
	}
	return r.t.take(norm), nil
}

// Mask returns a sub-table of the rows where mask is true.
func (r Rows) Mask(mask []bool) (*Table, error) {
	n := r.t.numRows()
	if len(mask) != n {
		return nil, errors.NewLengthMismatch("mask", n, len(mask))
	}
	idx := make([]int, 0, n)
	for i, ok := range mask {
		if ok {
			idx = append(idx, i)
		}
	}
	return r.t.take(idx), nil
}

// Slice returns a sub-table of the rows selected by start:stop:step.
func (r Rows) Slice(start, stop, step int) (*Table, error) {
	idx, err := data.SliceIndices(r.t.numRows(), start, stop, step)
	if err != nil {
		return nil, err
	}
	return r.t.take(idx), nil
}
