package relation

import (
	"iter"

	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

// Cols maps column names to series keyed by the relation's index.
type Cols struct {
	r *Relation
}

func (c Cols) Len() int { return c.r.table.NumCols() }

func (c Cols) Names() []string { return c.r.table.Names() }

func (c Cols) Contains(name string) bool { return c.r.table.Cols().Contains(name) }

// Get returns the series for a column given by name or position.
func (c Cols) Get(key any) (*Series, error) {
	name, err := c.r.table.Cols().Resolve(key)
	if err != nil {
		return nil, err
	}
	col, err := c.r.table.Column(name)
	if err != nil {
		return nil, err
	}
	return NewSeries(col, c.r.index, name)
}

// GetOr is like Get but returns def when the column is absent.
func (c Cols) GetOr(key any, def *Series) *Series {
	s, err := c.Get(key)
	if err != nil {
		return def
	}
	return s
}

// Items iterates (name, series) pairs in column order.
func (c Cols) Items() iter.Seq2[string, *Series] {
	return func(yield func(string, *Series) bool) {
		for name, col := range c.r.table.Cols().Items() {
			if !yield(name, &Series{index: c.r.index, col: col, name: name}) {
				return
			}
		}
	}
}

// Select returns a relation over the chosen columns with the same index.
func (c Cols) Select(sel table.Selector) (*Relation, error) {
	t, err := c.r.table.Cols().Select(sel)
	if err != nil {
		return nil, err
	}
	return New(c.r.index, t)
}

// Rows maps composite keys to table rows. Iteration follows the original
// row order.
type Rows struct {
	r *Relation
}

var _ data.Mapping[data.Key, table.Row] = (*Rows)(nil)

func (rs *Rows) Len() int { return rs.r.index.Len() }

func (rs *Rows) Keys() iter.Seq[data.Key] { return rs.r.index.Rows().Keys() }

func (rs *Rows) Values() iter.Seq[table.Row] {
	return func(yield func(table.Row) bool) {
		for _, row := range rs.r.table.Rows().All() {
			if !yield(row) {
				return
			}
		}
	}
}

func (rs *Rows) Items() iter.Seq2[data.Key, table.Row] {
	return func(yield func(data.Key, table.Row) bool) {
		for i, row := range rs.r.table.Rows().All() {
			if !yield(rs.r.index.KeyAt(i), row) {
				return
			}
		}
	}
}

// Get returns the row holding key.
func (rs *Rows) Get(key data.Key) (table.Row, error) {
	if rs.r.Stale() {
		return table.Row{}, errors.ErrStale
	}
	i, err := rs.r.index.Rows().Get(key)
	if err != nil {
		return table.Row{}, err
	}
	return rs.r.table.Rows().At(i)
}

// Lookup is shorthand for Get(data.K(vals...)).
func (rs *Rows) Lookup(vals ...any) (table.Row, error) {
	return rs.Get(data.K(vals...))
}

// Contains reports whether Get would find key.
func (rs *Rows) Contains(key data.Key) bool {
	_, err := rs.Get(key)
	return err == nil
}
