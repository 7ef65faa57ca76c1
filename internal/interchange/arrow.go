package interchange

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

// FromRecord copies an Arrow record into a table, one column per field.
// Signed and unsigned integers up to 32 bits widen to Int; float32 widens
// to Float; timestamps become Time. Arrays with nulls are rejected.
func FromRecord(rec arrow.Record) (*table.Table, error) {
	defs := make([]table.Def, rec.NumCols())
	for i := range defs {
		name := rec.ColumnName(i)
		col, err := fromArray(rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		defs[i] = table.Col(name, col)
	}
	return table.New(defs...)
}

func fromArray(arr arrow.Array) (*column.Column, error) {
	if arr.NullN() > 0 {
		return nil, errors.NewTypeMismatch("", "non-null values", fmt.Sprintf("%d nulls", arr.NullN()))
	}
	switch a := arr.(type) {
	case *array.Int8:
		return column.Wrap(a.Int8Values())
	case *array.Int16:
		return column.Wrap(a.Int16Values())
	case *array.Int32:
		return column.Wrap(a.Int32Values())
	case *array.Int64:
		return column.New(a.Int64Values()), nil
	case *array.Uint8:
		return column.Wrap(a.Uint8Values())
	case *array.Uint16:
		return column.Wrap(a.Uint16Values())
	case *array.Uint32:
		return column.Wrap(a.Uint32Values())
	case *array.Float32:
		return column.Wrap(a.Float32Values())
	case *array.Float64:
		return column.New(a.Float64Values()), nil
	case *array.Boolean:
		return column.New(collect(a.Len(), a.Value)), nil
	case *array.String:
		return column.New(collect(a.Len(), a.Value)), nil
	case *array.LargeString:
		return column.New(collect(a.Len(), a.Value)), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return column.New(collect(a.Len(), func(i int) time.Time {
			return a.Value(i).ToTime(unit)
		})), nil
	}
	return nil, errors.NewTypeMismatch("", "INT, FLOAT, BOOL, TEXT or TIME array", arr.DataType().String())
}

func collect[T any](n int, at func(int) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

// ToRecord copies a table into an Arrow record allocated from mem. The
// caller must Release the record.
func ToRecord(mem memory.Allocator, t *table.Table) (arrow.Record, error) {
	fields := make([]arrow.Field, 0, t.NumCols())
	arrays := make([]arrow.Array, 0, t.NumCols())
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	for name, col := range t.Cols().Items() {
		arr, typ, err := toArray(mem, col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		fields = append(fields, arrow.Field{Name: name, Type: typ})
		arrays = append(arrays, arr)
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, int64(t.Rows().Len())), nil
}

func toArray(mem memory.Allocator, col *column.Column) (arrow.Array, arrow.DataType, error) {
	switch vals := col.Array().(type) {
	case []int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), arrow.PrimitiveTypes.Int64, nil
	case []float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), arrow.PrimitiveTypes.Float64, nil
	case []bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), arrow.FixedWidthTypes.Boolean, nil
	case []string:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), arrow.BinaryTypes.String, nil
	case []time.Time:
		typ := arrow.FixedWidthTypes.Timestamp_ns.(*arrow.TimestampType)
		b := array.NewTimestampBuilder(mem, typ)
		defer b.Release()
		for _, v := range vals {
			b.Append(arrow.Timestamp(v.UnixNano()))
		}
		return b.NewArray(), typ, nil
	}
	return nil, nil, errors.NewTypeMismatch("", "storable kind", col.Kind().String())
}
