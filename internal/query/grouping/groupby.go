package grouping

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

// GroupBy partitions the rows of one or more parallel tables by a
// composite key. The key is made of one column per key name; with several
// tables, each table contributes the column named for it.
//
// The sort order and group boundaries are computed on first use. Lookups
// fail with ErrStale once any source table has had columns added, removed
// or renamed. Iteration reads the tables as they were at construction.
type GroupBy struct {
	sources []*table.Table
	gens    []uuid.UUID
	tables  []*table.Table // snapshots taken at construction
	names   []string
	keys    []*column.Column
	length  int

	decomposed bool
	order      []int // rows in key order
	edges      []int // group g is order[edges[g]:edges[g+1]]
}

var _ data.Mapping[data.Key, []*table.Table] = (*GroupBy)(nil)

// New groups the rows of t by the named columns.
func New(t *table.Table, names ...string) (*GroupBy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("group by needs at least one column: %w", errors.ErrShape)
	}
	tables := make([]*table.Table, len(names))
	for i := range tables {
		tables[i] = t
	}
	return build([]*table.Table{t}, tables, names)
}

// NewParallel groups parallel tables of equal length. names holds either a
// single name shared by every table or one name per table; the composite
// key is the tuple of the per-table key values.
func NewParallel(tables []*table.Table, names ...string) (*GroupBy, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("group by needs at least one table: %w", errors.ErrShape)
	}
	switch len(names) {
	case len(tables):
	case 1:
		shared := names[0]
		names = make([]string, len(tables))
		for i := range names {
			names[i] = shared
		}
	default:
		return nil, &errors.ShapeError{
			Reason:   "one key name per table required",
			Expected: len(tables),
			Actual:   len(names),
		}
	}
	return build(tables, tables, names)
}

// build wires the grouping; owners[i] holds key column names[i].
func build(sources, owners []*table.Table, names []string) (*GroupBy, error) {
	g := &GroupBy{
		sources: sources,
		gens:    make([]uuid.UUID, len(sources)),
		tables:  make([]*table.Table, len(sources)),
		names:   slices.Clone(names),
		keys:    make([]*column.Column, len(names)),
	}

	for i, t := range sources {
		n, err := t.NumRows()
		if err != nil {
			return nil, err
		}
		if i == 0 {
			g.length = n
		} else if n != g.length {
			return nil, errors.NewLengthMismatch(fmt.Sprintf("table %d", i), g.length, n)
		}
		g.gens[i] = t.Generation()
		g.tables[i] = t.Snapshot()
	}

	for i, n := range names {
		c, err := owners[i].Column(n)
		if err != nil {
			return nil, err
		}
		g.keys[i] = c
	}
	return g, nil
}

// decompose sorts the rows by key and records where each run of equal keys
// starts. Runs in the stable order keep rows in their original order.
func (g *GroupBy) decompose() {
	if g.decomposed {
		return
	}
	g.order = column.Lexsort(g.keys...)
	g.edges = []int{0}
	for p := 1; p < len(g.order); p++ {
		if !g.sameKey(g.order[p-1], g.order[p]) {
			g.edges = append(g.edges, p)
		}
	}
	if len(g.order) > 0 {
		g.edges = append(g.edges, len(g.order))
	}
	g.decomposed = true

	slog.Debug("groups computed",
		slog.String("columns", strings.Join(g.names, ",")),
		slog.Int("rows", g.length),
		slog.Int("groups", len(g.edges)-1))
}

func (g *GroupBy) sameKey(i, j int) bool {
	for _, c := range g.keys {
		if c.Compare(i, j) != 0 {
			return false
		}
	}
	return true
}

// Names returns the key column names.
func (g *GroupBy) Names() []string { return slices.Clone(g.names) }

// Stale reports whether a source table changed since construction.
func (g *GroupBy) Stale() bool {
	for i, t := range g.sources {
		if t.Generation() != g.gens[i] {
			return true
		}
	}
	return false
}

// Len returns the number of distinct keys.
func (g *GroupBy) Len() int {
	g.decompose()
	return len(g.edges) - 1
}

// keyAt returns the key of group i.
func (g *GroupBy) keyAt(i int) data.Key {
	row := g.order[g.edges[i]]
	key := make(data.Key, len(g.keys))
	for j, c := range g.keys {
		key[j] = c.At(row)
	}
	return key
}

// members returns the rows of group i in original order.
func (g *GroupBy) members(i int) []int {
	return g.order[g.edges[i]:g.edges[i+1]]
}

// groupAt slices every table down to group i.
func (g *GroupBy) groupAt(i int) []*table.Table {
	rows := g.members(i)
	out := make([]*table.Table, len(g.tables))
	for j, t := range g.tables {
		out[j] = t.Take(rows)
	}
	return out
}

// Keys iterates the distinct keys in ascending order.
func (g *GroupBy) Keys() iter.Seq[data.Key] {
	return func(yield func(data.Key) bool) {
		for i := range g.Len() {
			if !yield(g.keyAt(i)) {
				return
			}
		}
	}
}

// Values iterates each group's sub-tables in ascending key order.
func (g *GroupBy) Values() iter.Seq[[]*table.Table] {
	return func(yield func([]*table.Table) bool) {
		for i := range g.Len() {
			if !yield(g.groupAt(i)) {
				return
			}
		}
	}
}

// Items iterates (key, sub-tables) pairs in ascending key order.
func (g *GroupBy) Items() iter.Seq2[data.Key, []*table.Table] {
	return func(yield func(data.Key, []*table.Table) bool) {
		for i := range g.Len() {
			if !yield(g.keyAt(i), g.groupAt(i)) {
				return
			}
		}
	}
}

// find locates the group holding key by binary search over the first row
// of each group.
func (g *GroupBy) find(key data.Key) (int, error) {
	if len(key) != len(g.keys) {
		return 0, &errors.KeyNotFoundError{
			Key:    key,
			Reason: fmt.Sprintf("expected %d key values, got %d", len(g.keys), len(key)),
		}
	}
	probes := make([]column.Probe, len(key))
	for j, c := range g.keys {
		p, err := c.Probe(key[j])
		if err != nil {
			return 0, &errors.KeyNotFoundError{Key: key, Reason: err.Error()}
		}
		probes[j] = p
	}
	cmp := func(row int) int {
		for _, p := range probes {
			if r := p.Compare(row); r != 0 {
				return r
			}
		}
		return 0
	}

	n := g.Len()
	i := sort.Search(n, func(i int) bool { return cmp(g.order[g.edges[i]]) >= 0 })
	if i == n || cmp(g.order[g.edges[i]]) != 0 {
		return 0, errors.NewKeyNotFound(key)
	}
	return i, nil
}

// Get returns the sub-tables for key, one per grouped table, with rows in
// their original order.
func (g *GroupBy) Get(key data.Key) ([]*table.Table, error) {
	if g.Stale() {
		return nil, errors.ErrStale
	}
	i, err := g.find(key)
	if err != nil {
		return nil, err
	}
	return g.groupAt(i), nil
}

// Group returns the first table's rows for the key made of vals.
func (g *GroupBy) Group(vals ...any) (*table.Table, error) {
	ts, err := g.Get(data.K(vals...))
	if err != nil {
		return nil, err
	}
	return ts[0], nil
}

// Contains reports whether some row holds key. A stale GroupBy contains
// nothing, matching Get.
func (g *GroupBy) Contains(key data.Key) bool {
	_, err := g.Get(key)
	return err == nil
}

// Sizes returns the number of rows in each group, in ascending key order.
func (g *GroupBy) Sizes() []int {
	n := g.Len()
	out := make([]int, n)
	for i := range n {
		out[i] = g.edges[i+1] - g.edges[i]
	}
	return out
}

// Map applies fn to every group in ascending key order. The sequence is
// lazy; ranging over it again calls fn again.
func Map[R any](g *GroupBy, fn func(key data.Key, tables []*table.Table) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for key, tables := range g.Items() {
			if !yield(fn(key, tables)) {
				return
			}
		}
	}
}
