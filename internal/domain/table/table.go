package table

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Def pairs a column name with raw column data (a slice or a *column.Column).
type Def struct {
	Name string
	Data any
}

// Col builds a Def.
func Col(name string, data any) Def {
	return Def{Name: name, Data: data}
}

// Table is an ordered set of named, equal-length columns.
//
// Columns are replaced wholesale by Add and Remove; the names slice and the
// column map are never modified in place, so rows and sub-tables taken
// earlier keep a consistent snapshot.
type Table struct {
	names      []string
	cols       map[string]*column.Column
	length     int // meaningful only while len(names) > 0
	generation uuid.UUID
}

// New constructs a table from named columns. All columns must have the
// same length and distinct names.
func New(defs ...Def) (*Table, error) {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate column %q: %w", d.Name, errors.ErrShape)
		}
		seen[d.Name] = true
	}
	t := &Table{
		cols:       make(map[string]*column.Column),
		generation: uuid.New(),
	}
	if err := t.Add(defs...); err != nil {
		return nil, err
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(defs ...Def) *Table {
	t, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMap constructs a table from a name → data map. Columns are ordered
// by name since maps carry no order.
func FromMap(m map[string]any) (*Table, error) {
	names := slices.Sorted(maps.Keys(m))
	defs := make([]Def, len(names))
	for i, n := range names {
		defs[i] = Col(n, m[n])
	}
	return New(defs...)
}

// fromColumns builds a table around already wrapped columns of length n.
func fromColumns(names []string, cols map[string]*column.Column, n int) *Table {
	return &Table{
		names:      names,
		cols:       cols,
		length:     n,
		generation: uuid.New(),
	}
}

// NumRows returns the row count. A table without columns has no defined
// row count.
func (t *Table) NumRows() (int, error) {
	if len(t.names) == 0 {
		return 0, errors.ErrNoColumns
	}
	return t.length, nil
}

// numRows is NumRows with an undefined count reported as zero.
func (t *Table) numRows() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.length
}

func (t *Table) NumCols() int { return len(t.names) }

// Names returns the column names in order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Generation identifies the table's current set of columns. It changes on
// every Add, Remove or Rename, which lets views built over the table detect
// that they are stale.
func (t *Table) Generation() uuid.UUID { return t.generation }

// Column looks up a column by name.
func (t *Table) Column(name string) (*column.Column, error) {
	c, ok := t.cols[name]
	if !ok {
		return nil, errors.NewColumnNotFound(name)
	}
	return c, nil
}

// Cols returns the column view.
func (t *Table) Cols() Cols { return Cols{t: t} }

// Rows returns the row view.
func (t *Table) Rows() Rows { return Rows{t: t} }

// Add adds or replaces columns. A replaced column keeps its position; new
// columns are appended. Every column is validated before any is applied.
// If the table has no columns, the first added column establishes the
// row count.
func (t *Table) Add(defs ...Def) error {
	if len(defs) == 0 {
		return nil
	}

	length, defined := t.length, len(t.names) > 0
	wrapped := make([]*column.Column, len(defs))
	for i, d := range defs {
		c, err := column.Wrap(d.Data)
		if err != nil {
			return fmt.Errorf("column %s: %w", d.Name, err)
		}
		if !defined {
			length, defined = c.Len(), true
		} else if c.Len() != length {
			return errors.NewLengthMismatch(d.Name, length, c.Len())
		}
		wrapped[i] = c
	}

	names := slices.Clone(t.names)
	cols := maps.Clone(t.cols)
	for i, d := range defs {
		if _, exists := cols[d.Name]; !exists {
			names = append(names, d.Name)
		}
		cols[d.Name] = wrapped[i]
	}

	t.names, t.cols, t.length = names, cols, length
	t.generation = uuid.New()
	return nil
}

// Remove deletes the named columns. If any name is absent nothing is
// removed. Removing the last column leaves the row count undefined.
func (t *Table) Remove(names ...string) error {
	if len(names) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return errors.NewColumnNotFound(n)
		}
		drop[n] = true
	}

	kept := make([]string, 0, len(t.names))
	cols := make(map[string]*column.Column, len(t.cols))
	for _, n := range t.names {
		if !drop[n] {
			kept = append(kept, n)
			cols[n] = t.cols[n]
		}
	}

	t.names, t.cols = kept, cols
	if len(kept) == 0 {
		t.length = 0
	}
	t.generation = uuid.New()
	return nil
}

// take returns a new table with the rows at idx, which must be in range.
func (t *Table) take(idx []int) *Table {
	cols := make(map[string]*column.Column, len(t.cols))
	for _, n := range t.names {
		cols[n] = t.cols[n].Take(idx)
	}
	return fromColumns(slices.Clone(t.names), cols, len(idx))
}

// Equal reports whether both tables have the same names in the same order
// and equal columns.
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	}
	if other == nil || !slices.Equal(t.names, other.names) {
		return false
	}
	for _, n := range t.names {
		if !t.cols[n].Equal(other.cols[n]) {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	parts := make([]string, len(t.names))
	for i, n := range t.names {
		parts[i] = fmt.Sprintf("%s=%s", n, t.cols[n])
	}
	return "Table(" + strings.Join(parts, ", ") + ")"
}

// Snapshot returns a table sharing the current columns. Later Add, Remove
// or Rename calls on t do not affect it. The snapshot keeps t's generation.
func (t *Table) Snapshot() *Table {
	return &Table{
		names:      t.names,
		cols:       t.cols,
		length:     t.length,
		generation: t.generation,
	}
}

// Take returns a sub-table of the rows at idx. Unlike Rows().Take it does
// not normalize negative indices; an out of range index panics.
func (t *Table) Take(idx []int) *Table { return t.take(idx) }
