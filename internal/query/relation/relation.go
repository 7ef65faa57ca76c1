package relation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
	"github.com/leengari/tabular/internal/query/indexing"
	"github.com/leengari/tabular/internal/render"
)

// Relation pairs an index with a table of the same length, so that rows
// and column values can be addressed by composite key.
//
// Lookups fail with ErrStale once the table has had columns added,
// removed or renamed. Iteration reads the table as it was at construction.
type Relation struct {
	index  *indexing.Index
	source *table.Table
	gen    uuid.UUID
	table  *table.Table
}

// New pairs idx with t. A table without columns counts as zero rows.
func New(idx *indexing.Index, t *table.Table) (*Relation, error) {
	if n := t.Rows().Len(); n != idx.Len() {
		return nil, errors.NewLengthMismatch("table", idx.Len(), n)
	}
	return &Relation{
		index:  idx,
		source: t,
		gen:    t.Generation(),
		table:  t.Snapshot(),
	}, nil
}

// IndexBy indexes t by its own named columns.
func IndexBy(t *table.Table, names ...string) (*Relation, error) {
	idx, err := indexing.FromTable(t, names...)
	if err != nil {
		return nil, err
	}
	return New(idx, t)
}

func (r *Relation) Index() *indexing.Index { return r.index }

// Table returns the table as it was when the relation was built.
func (r *Relation) Table() *table.Table { return r.table }

func (r *Relation) Len() int { return r.index.Len() }

// Stale reports whether the table changed since construction.
func (r *Relation) Stale() bool { return r.source.Generation() != r.gen }

func (r *Relation) Cols() Cols { return Cols{r: r} }

func (r *Relation) Rows() *Rows { return &Rows{r: r} }

// Frame lays out the index columns followed by the data columns that are
// not index columns, all in key order.
func (r *Relation) Frame() render.Frame {
	f := r.index.Frame()
	for name, col := range r.table.Cols().Items() {
		if r.index.Contains(name) {
			continue
		}
		f.Names = append(f.Names, name)
		f.Columns = append(f.Columns, col.Take(r.index.Sorter()))
	}
	return f
}

func (r *Relation) String() string {
	return fmt.Sprintf("Relation(index=(%s), columns=(%s))",
		strings.Join(r.index.Names(), ", "), strings.Join(r.table.Names(), ", "))
}
