package interchange

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

func TestRecord_RoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	orig := table.MustNew(
		table.Col("num", []int64{3, 6, 2}),
		table.Col("name", []string{"c", "b", "a"}),
		table.Col("val", []float64{0.5, 1.5, 2.5}),
		table.Col("ok", []bool{true, false, true}),
		table.Col("at", []time.Time{
			time.Unix(0, 1).UTC(), time.Unix(10, 0).UTC(), time.Unix(20, 5).UTC(),
		}),
	)

	rec, err := ToRecord(mem, orig)
	assert.NilError(t, err)
	assert.Equal(t, rec.NumRows(), int64(3))
	assert.Equal(t, rec.NumCols(), int64(5))
	assert.Equal(t, rec.ColumnName(1), "name")

	got, err := FromRecord(rec)
	rec.Release()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(orig), "got %s", got)
}

func TestFromRecord_WidensNarrowTypes(t *testing.T) {
	mem := memory.NewGoAllocator()

	ib := array.NewInt32Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int32{1, -2}, nil)
	ints := ib.NewArray()
	defer ints.Release()

	fb := array.NewFloat32Builder(mem)
	defer fb.Release()
	fb.AppendValues([]float32{0.5, 1}, nil)
	floats := fb.NewArray()
	defer floats.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "i", Type: arrow.PrimitiveTypes.Int32},
		{Name: "f", Type: arrow.PrimitiveTypes.Float32},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{ints, floats}, 2)
	defer rec.Release()

	tbl, err := FromRecord(rec)
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Cols().Kinds(), map[string]column.Kind{"i": column.Int, "f": column.Float})
	i, _ := tbl.Column("i")
	assert.DeepEqual(t, i.Array(), []int64{1, -2})
}

func TestFromRecord_RejectsNulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.Append("a")
	sb.AppendNull()
	arr := sb.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "s", Type: arrow.BinaryTypes.String, Nullable: true}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 2)
	defer rec.Release()

	_, err := FromRecord(rec)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}
