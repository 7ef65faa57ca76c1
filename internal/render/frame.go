package render

import (
	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/table"
)

// Frame is a list of equal-length named columns ready to be printed. The
// first NumIndex columns are index columns and are underlined with '='.
type Frame struct {
	Names    []string
	Columns  []*column.Column
	NumIndex int
}

// FromTable lays out a table's columns in order, with no index columns.
func FromTable(t *table.Table) Frame {
	f := Frame{}
	for name, col := range t.Cols().Items() {
		f.Names = append(f.Names, name)
		f.Columns = append(f.Columns, col)
	}
	return f
}

// NumRows returns the length of the columns, or zero with no columns.
func (f Frame) NumRows() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return f.Columns[0].Len()
}

// Options control how many rows are printed.
type Options struct {
	MaxRows  int    // zero prints every row
	CSSClass string // HTML only; defaults to "tab-table"
}

// shown returns how many rows to print.
func (o Options) shown(n int) int {
	if o.MaxRows > 0 && o.MaxRows < n {
		return o.MaxRows
	}
	return n
}
