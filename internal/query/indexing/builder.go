package indexing

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
	"github.com/leengari/tabular/internal/render"
)

// Index is a composite key over one or more equal-length columns. No two
// rows share the same key tuple; construction fails otherwise.
type Index struct {
	names  []string
	cols   []*column.Column
	length int
	sorter []int
	rows   *Rows
}

// New builds an index over the given key columns. The first column is the
// primary sort key; later columns break ties.
func New(defs ...table.Def) (*Index, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("index needs at least one column: %w", errors.ErrShape)
	}

	names := make([]string, len(defs))
	cols := make([]*column.Column, len(defs))
	for i, d := range defs {
		if slices.Contains(names[:i], d.Name) {
			return nil, fmt.Errorf("duplicate index column %q: %w", d.Name, errors.ErrShape)
		}
		c, err := column.Wrap(d.Data)
		if err != nil {
			return nil, fmt.Errorf("index column %s: %w", d.Name, err)
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, errors.NewLengthMismatch(d.Name, cols[0].Len(), c.Len())
		}
		names[i], cols[i] = d.Name, c
	}

	idx := &Index{
		names:  names,
		cols:   cols,
		length: cols[0].Len(),
	}
	idx.sorter = column.Lexsort(cols...)
	if err := idx.checkUnique(); err != nil {
		return nil, err
	}
	idx.rows = &Rows{index: idx}

	slog.Debug("index built",
		slog.String("columns", strings.Join(names, ",")),
		slog.Int("rows", idx.length))
	return idx, nil
}

// FromTable builds an index over the named columns of t.
func FromTable(t *table.Table, names ...string) (*Index, error) {
	defs := make([]table.Def, len(names))
	for i, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		defs[i] = table.Col(n, c)
	}
	return New(defs...)
}

// checkUnique scans adjacent rows in sorted order and reports the first
// pair whose keys are identical.
func (idx *Index) checkUnique() error {
	s := idx.sorter
	for p := 0; p+1 < len(s); p++ {
		if idx.sameKey(s[p], s[p+1]) {
			rows := []int{s[p], s[p+1]}
			slices.Sort(rows)
			return errors.NewUniqueViolation(slices.Clone(idx.names), idx.KeyAt(s[p]), rows)
		}
	}
	return nil
}

func (idx *Index) sameKey(i, j int) bool {
	for _, c := range idx.cols {
		if c.Compare(i, j) != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of rows.
func (idx *Index) Len() int { return idx.length }

// Names returns the key column names in key order.
func (idx *Index) Names() []string { return slices.Clone(idx.names) }

// Contains reports whether name is one of the key columns.
func (idx *Index) Contains(name string) bool { return slices.Contains(idx.names, name) }

// Column returns a key column by name.
func (idx *Index) Column(name string) (*column.Column, error) {
	i := slices.Index(idx.names, name)
	if i < 0 {
		return nil, errors.NewColumnNotFound(name)
	}
	return idx.cols[i], nil
}

// Columns returns the key columns in key order.
func (idx *Index) Columns() []*column.Column { return slices.Clone(idx.cols) }

// Sorter returns the row order that sorts the index by its composite key.
// The slice is shared and must not be modified.
func (idx *Index) Sorter() []int { return idx.sorter }

// KeyAt returns the composite key of row i.
func (idx *Index) KeyAt(i int) data.Key {
	key := make(data.Key, len(idx.cols))
	for j, c := range idx.cols {
		key[j] = c.At(i)
	}
	return key
}

// Rows returns the key → row number mapping.
func (idx *Index) Rows() *Rows { return idx.rows }

// Lookup is shorthand for Rows().Get(data.K(vals...)).
func (idx *Index) Lookup(vals ...any) (int, error) {
	return idx.rows.Get(data.Key(vals))
}

// Frame lays out the key columns in key order.
func (idx *Index) Frame() render.Frame {
	cols := make([]*column.Column, len(idx.cols))
	for i, c := range idx.cols {
		cols[i] = c.Take(idx.sorter)
	}
	return render.Frame{Names: idx.Names(), Columns: cols, NumIndex: len(cols)}
}

func (idx *Index) String() string {
	parts := make([]string, len(idx.names))
	for i, n := range idx.names {
		parts[i] = fmt.Sprintf("%s=%s", n, idx.cols[i])
	}
	return "Index(" + strings.Join(parts, ", ") + ")"
}
