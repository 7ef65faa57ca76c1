package grouping

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
	"github.com/leengari/tabular/internal/testutil"
)

func symbolTable() *table.Table {
	return table.MustNew(
		table.Col("sym", []string{"foo", "bar", "foo", "foo", "bar", "foo"}),
		table.Col("val", []int64{3, 7, 8, 4, 1, 9}),
	)
}

func values(t *testing.T, tbl *table.Table, name string) any {
	t.Helper()
	c, err := tbl.Column(name)
	assert.NilError(t, err)
	return c.Array()
}

func TestGroupBy_KeepsOriginalRowOrder(t *testing.T) {
	g, err := New(symbolTable(), "sym")
	assert.NilError(t, err)
	assert.Equal(t, g.Len(), 2)

	foo, err := g.Group("foo")
	assert.NilError(t, err)
	assert.DeepEqual(t, values(t, foo, "val"), []int64{3, 8, 4, 9})

	bar, err := g.Group("bar")
	assert.NilError(t, err)
	assert.DeepEqual(t, values(t, bar, "val"), []int64{7, 1})
}

func TestGroupBy_KeysAscending(t *testing.T) {
	g, err := New(testutil.CreateSymbolTable(), "sym")
	assert.NilError(t, err)
	assert.DeepEqual(t, slices.Collect(g.Keys()), []data.Key{{"bar"}, {"baz"}, {"foo"}})
	assert.DeepEqual(t, g.Sizes(), []int{2, 1, 4})
}

func TestGroupBy_MissingKey(t *testing.T) {
	g, err := New(symbolTable(), "sym")
	assert.NilError(t, err)

	_, err = g.Get(data.K("baz"))
	assert.ErrorIs(t, err, errors.ErrMissingKey)
	_, err = g.Get(data.K("foo", 1))
	assert.ErrorIs(t, err, errors.ErrMissingKey)
	_, err = g.Get(data.K(1))
	assert.ErrorIs(t, err, errors.ErrMissingKey)

	assert.Assert(t, g.Contains(data.K("foo")))
	assert.Assert(t, !g.Contains(data.K("baz")))
}

func TestGroupBy_CompositeKey(t *testing.T) {
	tbl := table.MustNew(
		table.Col("a", []string{"x", "y", "x", "x"}),
		table.Col("b", []int64{2, 1, 1, 2}),
		table.Col("v", []float64{0.1, 0.2, 0.3, 0.4}),
	)
	g, err := New(tbl, "a", "b")
	assert.NilError(t, err)
	assert.DeepEqual(t, slices.Collect(g.Keys()), []data.Key{
		{"x", int64(1)}, {"x", int64(2)}, {"y", int64(1)},
	})

	sub, err := g.Group("x", 2)
	assert.NilError(t, err)
	assert.DeepEqual(t, values(t, sub, "v"), []float64{0.1, 0.4})
}

func TestGroupBy_Parallel(t *testing.T) {
	left := table.MustNew(
		table.Col("sym", []string{"foo", "bar", "foo"}),
		table.Col("px", []float64{1, 2, 3}),
	)
	right := table.MustNew(
		table.Col("day", []int64{1, 1, 2}),
		table.Col("qty", []int64{10, 20, 30}),
	)
	g, err := NewParallel([]*table.Table{left, right}, "sym", "day")
	assert.NilError(t, err)
	assert.Equal(t, g.Len(), 3)

	tables, err := g.Get(data.K("foo", 2))
	assert.NilError(t, err)
	assert.Equal(t, len(tables), 2)
	assert.DeepEqual(t, values(t, tables[0], "px"), []float64{3})
	assert.DeepEqual(t, values(t, tables[1], "qty"), []int64{30})
}

func TestGroupBy_ParallelSharedName(t *testing.T) {
	a := table.MustNew(table.Col("k", []int64{1, 2, 1}))
	b := table.MustNew(table.Col("k", []int64{5, 5, 5}), table.Col("w", []string{"p", "q", "r"}))
	g, err := NewParallel([]*table.Table{a, b}, "k")
	assert.NilError(t, err)
	assert.DeepEqual(t, g.Names(), []string{"k", "k"})

	tables, err := g.Get(data.K(1, 5))
	assert.NilError(t, err)
	assert.DeepEqual(t, values(t, tables[1], "w"), []string{"p", "r"})
}

func TestGroupBy_ParallelErrors(t *testing.T) {
	a := table.MustNew(table.Col("k", []int64{1, 2}))
	b := table.MustNew(table.Col("k", []int64{1}))

	_, err := NewParallel([]*table.Table{a, b}, "k")
	assert.ErrorIs(t, err, errors.ErrShape)

	_, err = NewParallel([]*table.Table{a, a, a}, "k", "k")
	assert.ErrorIs(t, err, errors.ErrShape)

	_, err = NewParallel(nil, "k")
	assert.ErrorIs(t, err, errors.ErrShape)

	_, err = New(a)
	assert.ErrorIs(t, err, errors.ErrShape)

	_, err = New(a, "missing")
	assert.ErrorIs(t, err, errors.ErrNoColumn)
}

func TestGroupBy_StaleAfterMutation(t *testing.T) {
	tbl := symbolTable()
	g, err := New(tbl, "sym")
	assert.NilError(t, err)
	assert.Assert(t, !g.Stale())
	assert.Assert(t, g.Contains(data.K("foo")))

	assert.NilError(t, tbl.Add(table.Col("extra", []int64{0, 0, 0, 0, 0, 0})))
	assert.Assert(t, g.Stale())
	_, err = g.Group("foo")
	assert.ErrorIs(t, err, errors.ErrStale)
	assert.Assert(t, !g.Contains(data.K("foo")))

	// iteration still sees the table as it was
	for _, tables := range g.Items() {
		assert.DeepEqual(t, tables[0].Names(), []string{"sym", "val"})
	}
}

func TestGroupBy_Map(t *testing.T) {
	g, err := New(symbolTable(), "sym")
	assert.NilError(t, err)

	calls := 0
	sums := Map(g, func(_ data.Key, tables []*table.Table) int64 {
		calls++
		var sum int64
		vals, _ := tables[0].Column("val")
		for _, v := range vals.Array().([]int64) {
			sum += v
		}
		return sum
	})
	assert.Equal(t, calls, 0)
	assert.DeepEqual(t, slices.Collect(sums), []int64{8, 24})
	assert.DeepEqual(t, slices.Collect(sums), []int64{8, 24})
	assert.Equal(t, calls, 4)
}

func TestGroupBy_Empty(t *testing.T) {
	g, err := New(table.MustNew(table.Col("k", []string{})), "k")
	assert.NilError(t, err)
	assert.Equal(t, g.Len(), 0)
	assert.Equal(t, len(g.Sizes()), 0)
	assert.Assert(t, !g.Contains(data.K("x")))
}

// Groups partition the rows, every row of a group carries the group's key,
// and each group's rows appear in original order.
func TestGroupBy_Partition(t *testing.T) {
	tbl := testutil.DemoTable(42, 500)
	assert.NilError(t, tbl.Add(table.Col("row", rowNumbers(500))))
	g, err := New(tbl, "val0", "val1")
	assert.NilError(t, err)

	total := 0
	for key, tables := range g.Items() {
		sub := tables[0]
		total += sub.Rows().Len()
		rows := values(t, sub, "row").([]int64)
		assert.Assert(t, slices.IsSorted(rows))
		for _, row := range sub.Rows().All() {
			v0, _ := row.Get("val0")
			v1, _ := row.Get("val1")
			assert.DeepEqual(t, data.K(v0, v1), key)
		}
	}
	assert.Equal(t, total, 500)

	sizes := 0
	for _, n := range g.Sizes() {
		sizes += n
	}
	assert.Equal(t, sizes, 500)
}

func rowNumbers(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}
