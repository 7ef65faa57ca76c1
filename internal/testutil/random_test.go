package testutil

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestRandomTable_Deterministic(t *testing.T) {
	fields := []Field{
		{"sym", Choice("x", "y", "z")},
		{"n", UniformInt(-3, 3)},
		{"f", Normal(10, 2)},
	}
	a := RandomTable(7, 50, fields...)
	b := RandomTable(7, 50, fields...)
	c := RandomTable(8, 50, fields...)

	AssertRowCount(t, a, 50, "seed 7")
	AssertColumnNames(t, a, []string{"sym", "n", "f"}, "seed 7")
	assert.Assert(t, a.Equal(b))
	assert.Assert(t, !a.Equal(c))

	sym, err := a.Column("sym")
	AssertNoError(t, err, "sym column")
	for i := range sym.Len() {
		v := sym.At(i).(string)
		assert.Assert(t, v == "x" || v == "y" || v == "z", "row %d: %q", i, v)
	}
	n, err := a.Column("n")
	AssertNoError(t, err, "n column")
	for i := range n.Len() {
		v := n.At(i).(int64)
		assert.Assert(t, v >= -3 && v <= 3, "row %d: %d", i, v)
	}
}

func TestDemoTable(t *testing.T) {
	tbl := DemoTable(1, 20)
	AssertColumnNames(t, tbl, []string{"name0", "name1", "val0", "val1", "data"}, "demo")
	name1, err := tbl.Column("name1")
	AssertNoError(t, err, "name1 column")
	assert.Equal(t, len(name1.At(0).(string)), 6)

	_, err = tbl.Column("missing")
	AssertError(t, err, "missing column")
}

func TestFixtures(t *testing.T) {
	AssertColumnValues(t, CreateSymbolTable(), "sym",
		[]any{"foo", "bar", "foo", "baz", "foo", "bar", "foo"}, "symbol table")
	AssertColumnValues(t, CreateNumNameTable(), "num",
		[]any{int64(3), int64(6), int64(2), int64(9), int64(4)}, "num/name table")
}
