package table

import (
	"fmt"
	"iter"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Cols is a live name → column view of a table.
type Cols struct {
	t *Table
}

func (c Cols) Len() int { return len(c.t.names) }

func (c Cols) Names() []string { return c.t.Names() }

// Contains reports whether a column with this name exists.
func (c Cols) Contains(name string) bool {
	_, ok := c.t.cols[name]
	return ok
}

// Get retrieves a column by name (string) or by position (any integer
// type; negative positions count from the end).
func (c Cols) Get(key any) (*column.Column, error) {
	name, err := c.Resolve(key)
	if err != nil {
		return nil, err
	}
	return c.t.cols[name], nil
}

// GetOr is like Get but returns def when the column is absent.
func (c Cols) GetOr(key any, def *column.Column) *column.Column {
	col, err := c.Get(key)
	if err != nil {
		return def
	}
	return col
}

// Resolve maps a name or position key onto a column name.
func (c Cols) Resolve(key any) (string, error) {
	names := c.t.names
	if pos, ok := asInt(key); ok {
		i, err := data.NormalizeIndex(pos, len(names))
		if err != nil {
			return "", errors.NewColumnPositionNotFound(pos)
		}
		return names[i], nil
	}
	name, ok := key.(string)
	if !ok {
		name = fmt.Sprint(key)
	}
	if _, ok := c.t.cols[name]; !ok {
		return "", errors.NewColumnNotFound(name)
	}
	return name, nil
}

// Kinds returns each column's element kind.
func (c Cols) Kinds() map[string]column.Kind {
	out := make(map[string]column.Kind, len(c.t.names))
	for _, n := range c.t.names {
		out[n] = c.t.cols[n].Kind()
	}
	return out
}

// Keys iterates column names in order.
func (c Cols) Keys() iter.Seq[string] {
	names := c.t.names
	return func(yield func(string) bool) {
		for _, n := range names {
			if !yield(n) {
				return
			}
		}
	}
}

// Values iterates columns in order.
func (c Cols) Values() iter.Seq[*column.Column] {
	names, cols := c.t.names, c.t.cols
	return func(yield func(*column.Column) bool) {
		for _, n := range names {
			if !yield(cols[n]) {
				return
			}
		}
	}
}

// Items iterates (name, column) pairs in order.
func (c Cols) Items() iter.Seq2[string, *column.Column] {
	names, cols := c.t.names, c.t.cols
	return func(yield func(string, *column.Column) bool) {
		for _, n := range names {
			if !yield(n, cols[n]) {
				return
			}
		}
	}
}

// Select returns a new table with the columns chosen by sel, in the order
// the selector produces them. Columns are shared, not copied.
func (c Cols) Select(sel Selector) (*Table, error) {
	names, err := sel.selectNames(c.t.names)
	if err != nil {
		return nil, err
	}
	cols := make(map[string]*column.Column, len(names))
	for _, n := range names {
		cols[n] = c.t.cols[n]
	}
	return fromColumns(names, cols, c.t.length), nil
}

func asInt(key any) (int, bool) {
	switch v := key.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	}
	return 0, false
}
