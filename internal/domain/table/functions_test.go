package table

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/errors"
)

func TestFilter(t *testing.T) {
	tbl := MustNew(
		Col("sym", []string{"foo", "bar", "foo", "foo"}),
		Col("day", []int64{1, 1, 2, 1}),
	)
	sub, err := tbl.Filter(Eq("sym", "foo"), Eq("day", 1))
	assert.NilError(t, err)
	assert.Equal(t, sub.Rows().Len(), 2)

	_, err = tbl.Filter(Eq("missing", 1))
	assert.ErrorIs(t, err, errors.ErrNoColumn)

	_, err = tbl.Filter(Eq("day", "one"))
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestFind(t *testing.T) {
	tbl := MustNew(
		Col("sym", []string{"foo", "bar", "foo"}),
		Col("day", []int64{1, 1, 2}),
	)
	row, err := tbl.Find(Eq("sym", "foo"), Eq("day", 2))
	assert.NilError(t, err)
	assert.Equal(t, row.Index(), 2)

	_, err = tbl.Find(Eq("sym", "baz"))
	assert.ErrorIs(t, err, errors.ErrMissingKey)

	_, err = tbl.Find(Eq("sym", "foo"))
	assert.ErrorIs(t, err, errors.ErrNotUnique)
}

func TestRename(t *testing.T) {
	tbl := createTestTable()
	assert.NilError(t, tbl.Rename("name", "label"))
	assert.DeepEqual(t, tbl.Names(), []string{"num", "label", "val"})

	assert.ErrorIs(t, tbl.Rename("missing", "x"), errors.ErrNoColumn)
	assert.ErrorContains(t, tbl.Rename("num", "val"), "already exists")
}

func TestConst(t *testing.T) {
	tbl := MustNew(
		Col("a", []int64{1, 1, 1}),
		Col("b", []int64{1, 2, 1}),
		Col("c", []string{"x", "x", "x"}),
	)
	consts, err := tbl.RemoveConst()
	assert.NilError(t, err)
	assert.DeepEqual(t, consts, map[string]any{"a": int64(1), "c": "x"})
	assert.DeepEqual(t, tbl.Names(), []string{"b"})
}

func TestConcat(t *testing.T) {
	a := MustNew(Col("x", []int64{1}), Col("y", []string{"a"}))
	b := MustNew(Col("x", []int64{2, 3}), Col("y", []string{"b", "c"}))
	c, err := Concat(a, b)
	assert.NilError(t, err)
	col, _ := c.Column("x")
	assert.DeepEqual(t, col.Array(), []int64{1, 2, 3})

	bad := MustNew(Col("x", []float64{2}), Col("y", []string{"b"}))
	_, err = Concat(a, bad)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)

	missing := MustNew(Col("x", []int64{2}))
	_, err = Concat(a, missing)
	assert.ErrorIs(t, err, errors.ErrNoColumn)
}

func TestFromRecords(t *testing.T) {
	tbl, err := FromRecords([]map[string]any{
		{"name": "a", "num": 1},
		{"name": "b", "num": 2.5},
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Names(), []string{"name", "num"})
	col, _ := tbl.Column("num")
	assert.DeepEqual(t, col.Array(), []float64{1, 2.5})

	_, err = FromRecords([]map[string]any{{"a": 1}, {"b": 2}})
	assert.ErrorIs(t, err, errors.ErrNoColumn)
}

func TestFromRowSeqs(t *testing.T) {
	tbl, err := FromRowSeqs([]string{"num", "name"}, [][]any{{3, "c"}, {6, "c"}})
	assert.NilError(t, err)
	col, _ := tbl.Column("num")
	assert.DeepEqual(t, col.Array(), []int64{3, 6})

	_, err = FromRowSeqs([]string{"num", "name"}, [][]any{{3}})
	assert.ErrorIs(t, err, errors.ErrShape)
}
