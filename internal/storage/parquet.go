package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

// layoutKey names the file metadata entry that records column order and
// kinds, since parquet groups order their fields by name.
const layoutKey = "tabular.columns"

type columnMeta struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	// tick is the duration of one stored unit for timestamp columns;
	// zero means nanoseconds.
	tick time.Duration
}

var kindsByName = map[string]column.Kind{
	column.Int.String():    column.Int,
	column.Float.String():  column.Float,
	column.Bool.String():   column.Bool,
	column.String.String(): column.String,
	column.Time.String():   column.Time,
}

// WriteParquet writes t as a single row group. Times are stored as
// nanosecond timestamps.
func WriteParquet(w io.Writer, t *table.Table) error {
	group := parquet.Group{}
	layout := make([]columnMeta, 0, t.NumCols())
	for name, col := range t.Cols().Items() {
		node, err := parquetNode(col.Kind())
		if err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		group[name] = node
		layout = append(layout, columnMeta{Name: name, Kind: col.Kind().String()})
	}
	meta, err := json.Marshal(layout)
	if err != nil {
		return err
	}

	schema := parquet.NewSchema("table", group)
	leaves := make([]*column.Column, len(schema.Fields()))
	for i, field := range schema.Fields() {
		leaves[i], _ = t.Column(field.Name())
	}

	writer := parquet.NewWriter(w, schema, parquet.KeyValueMetadata(layoutKey, string(meta)))
	n := t.Rows().Len()
	rows := make([]parquet.Row, n)
	for i := range n {
		row := make(parquet.Row, len(leaves))
		for j, col := range leaves {
			row[j] = parquetValue(col.At(i)).Level(0, 0, j)
		}
		rows[i] = row
	}
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return writer.Close()
}

func parquetNode(k column.Kind) (parquet.Node, error) {
	switch k {
	case column.Int:
		return parquet.Int(64), nil
	case column.Float:
		return parquet.Leaf(parquet.DoubleType), nil
	case column.Bool:
		return parquet.Leaf(parquet.BooleanType), nil
	case column.String:
		return parquet.String(), nil
	case column.Time:
		return parquet.Timestamp(parquet.Nanosecond), nil
	}
	return nil, errors.NewTypeMismatch("", "storable kind", k.String())
}

func parquetValue(v any) parquet.Value {
	switch x := v.(type) {
	case int64:
		return parquet.Int64Value(x)
	case float64:
		return parquet.DoubleValue(x)
	case bool:
		return parquet.BooleanValue(x)
	case string:
		return parquet.ByteArrayValue([]byte(x))
	case time.Time:
		return parquet.Int64Value(x.UnixNano())
	}
	return parquet.Value{}
}

// ReadParquet reads every row group of a flat parquet file. Files written
// by WriteParquet keep their column order and kinds; for other files the
// order and kinds follow the schema.
func ReadParquet(r io.ReaderAt, size int64) (*table.Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	schema := f.Schema()

	var layout []columnMeta
	if raw, ok := f.Lookup(layoutKey); ok {
		if err := json.Unmarshal([]byte(raw), &layout); err != nil {
			return nil, fmt.Errorf("bad %s metadata: %w", layoutKey, err)
		}
	} else {
		for _, field := range schema.Fields() {
			k, tick, err := kindOfField(field)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", field.Name(), err)
			}
			layout = append(layout, columnMeta{Name: field.Name(), Kind: k.String(), tick: tick})
		}
	}

	values := make([][]parquet.Value, len(layout))
	for _, g := range f.RowGroups() {
		chunks := g.ColumnChunks()
		for i, cm := range layout {
			leaf, ok := schema.Lookup(cm.Name)
			if !ok {
				return nil, errors.NewColumnNotFound(cm.Name)
			}
			vals, err := readChunk(chunks[leaf.ColumnIndex])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", cm.Name, err)
			}
			values[i] = append(values[i], vals...)
		}
	}

	defs := make([]table.Def, len(layout))
	for i, cm := range layout {
		col, err := columnFromValues(kindsByName[cm.Kind], cm.tick, values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", cm.Name, err)
		}
		defs[i] = table.Col(cm.Name, col)
	}
	return table.New(defs...)
}

// kindOfField maps a leaf to a column kind. For timestamps it also returns
// the duration of one stored unit.
func kindOfField(field parquet.Field) (column.Kind, time.Duration, error) {
	if !field.Leaf() || field.Optional() || field.Repeated() {
		return column.Invalid, 0, errors.NewNotOneDimensional("", field.Type().String())
	}
	typ := field.Type()
	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.Timestamp != nil:
			unit := lt.Timestamp.Unit
			switch {
			case unit.Millis != nil:
				return column.Time, time.Millisecond, nil
			case unit.Micros != nil:
				return column.Time, time.Microsecond, nil
			}
			return column.Time, time.Nanosecond, nil
		case lt.UTF8 != nil:
			return column.String, 0, nil
		}
	}
	switch typ.Kind() {
	case parquet.Int32, parquet.Int64:
		return column.Int, 0, nil
	case parquet.Float, parquet.Double:
		return column.Float, 0, nil
	case parquet.Boolean:
		return column.Bool, 0, nil
	case parquet.ByteArray:
		return column.String, 0, nil
	}
	return column.Invalid, 0, errors.NewTypeMismatch("", "storable kind", typ.String())
}

// readChunk drains every page of one column chunk.
func readChunk(chunk parquet.ColumnChunk) ([]parquet.Value, error) {
	pages := chunk.Pages()
	defer pages.Close()

	var out []parquet.Value
	for {
		page, err := pages.ReadPage()
		if stderrors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		values := make([]parquet.Value, page.NumValues())
		n, err := page.Values().ReadValues(values)
		if err != nil && !stderrors.Is(err, io.EOF) {
			return nil, err
		}
		out = append(out, values[:n]...)
	}
}

func columnFromValues(k column.Kind, tick time.Duration, values []parquet.Value) (*column.Column, error) {
	if tick == 0 {
		tick = time.Nanosecond
	}
	switch k {
	case column.Int:
		return column.New(convertValues(values, func(v parquet.Value) int64 { return v.Int64() })), nil
	case column.Float:
		return column.New(convertValues(values, func(v parquet.Value) float64 {
			if v.Kind() == parquet.Float {
				return float64(v.Float())
			}
			return v.Double()
		})), nil
	case column.Bool:
		return column.New(convertValues(values, func(v parquet.Value) bool { return v.Boolean() })), nil
	case column.String:
		return column.New(convertValues(values, func(v parquet.Value) string { return string(v.ByteArray()) })), nil
	case column.Time:
		return column.New(convertValues(values, func(v parquet.Value) time.Time {
			return time.Unix(0, v.Int64()*int64(tick)).UTC()
		})), nil
	}
	return nil, errors.NewTypeMismatch("", "storable kind", k.String())
}

func convertValues[T any](values []parquet.Value, f func(parquet.Value) T) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = f(v)
	}
	return out
}
