package storage

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadCSV_InfersKinds(t *testing.T) {
	in := "i,f,b,d,s\n" +
		"1,1.5,true,2024-01-02,x\n" +
		"2,2,FALSE,2024-01-03,y\n"
	tbl, err := ReadCSV(strings.NewReader(in), Options{})
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Cols().Kinds(), map[string]column.Kind{
		"i": column.Int,
		"f": column.Float,
		"b": column.Bool,
		"d": column.Time,
		"s": column.String,
	})
	f, _ := tbl.Column("f")
	assert.DeepEqual(t, f.Array(), []float64{1.5, 2})
	d, _ := tbl.Column("d")
	assert.Equal(t, d.At(1), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
}

func TestReadCSV_Delimiter(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a;b\n1;x\n"), Options{Delimiter: ';'})
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Names(), []string{"a", "b"})
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\n"), Options{})
	assert.NilError(t, err)
	assert.Equal(t, tbl.Rows().Len(), 0)
	assert.Equal(t, tbl.NumCols(), 2)

	_, err = ReadCSV(strings.NewReader(""), Options{})
	assert.ErrorContains(t, err, "missing header")
}

func TestReadJSON(t *testing.T) {
	in := `[{"name": "a", "num": 1, "ok": true}, {"name": "b", "num": 2.5, "ok": false}]`
	tbl, err := ReadJSON(strings.NewReader(in))
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Names(), []string{"name", "num", "ok"})
	num, _ := tbl.Column("num")
	assert.DeepEqual(t, num.Array(), []float64{1, 2.5})

	tbl, err = ReadJSON(strings.NewReader(`[{"n": 1}, {"n": 2}]`))
	assert.NilError(t, err)
	n, _ := tbl.Column("n")
	assert.Equal(t, n.Kind(), column.Int)

	_, err = ReadJSON(strings.NewReader(`[{"n": null}]`))
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)

	_, err = ReadJSON(strings.NewReader(`[{"n": [1]}]`))
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestParquet_RoundTrip(t *testing.T) {
	orig := table.MustNew(
		table.Col("zeta", []int64{3, 6, 2}),
		table.Col("alpha", []string{"c", "b", "a"}),
		table.Col("val", []float64{0.5, 1.5, 2.5}),
		table.Col("ok", []bool{true, false, true}),
		table.Col("at", []time.Time{
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 3, 0, 0, 0, 1, time.UTC),
		}),
	)

	var buf bytes.Buffer
	assert.NilError(t, WriteParquet(&buf, orig))

	got, err := ReadParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.NilError(t, err)
	assert.DeepEqual(t, got.Names(), orig.Names())
	assert.Assert(t, got.Equal(orig), "got %s", got)
}

func TestReadParquet_TimestampUnits(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	schema := parquet.NewSchema("events", parquet.Group{
		"ms":   parquet.Timestamp(parquet.Millisecond),
		"name": parquet.String(),
		"us":   parquet.Timestamp(parquet.Microsecond),
	})

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema)
	_, err := w.WriteRows([]parquet.Row{{
		parquet.Int64Value(at.UnixMilli()).Level(0, 0, 0),
		parquet.ByteArrayValue([]byte("deploy")).Level(0, 0, 1),
		parquet.Int64Value(at.UnixMicro()).Level(0, 0, 2),
	}})
	assert.NilError(t, err)
	assert.NilError(t, w.Close())

	got, err := ReadParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.NilError(t, err)
	assert.DeepEqual(t, got.Cols().Kinds(), map[string]column.Kind{
		"ms": column.Time, "name": column.String, "us": column.Time,
	})
	for _, name := range []string{"ms", "us"} {
		c, err := got.Column(name)
		assert.NilError(t, err)
		assert.Assert(t, c.At(0).(time.Time).Equal(at), "%s: %v", name, c.At(0))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "t.csv")
	assert.NilError(t, os.WriteFile(csvPath, []byte("a,b\n1,x\n2,y\n"), 0o644))
	tbl, err := LoadFile(csvPath, Options{}, discardLogger())
	assert.NilError(t, err)
	assert.Equal(t, tbl.Rows().Len(), 2)

	tsvPath := filepath.Join(dir, "t.tsv")
	assert.NilError(t, os.WriteFile(tsvPath, []byte("a\tb\n1\tx\n"), 0o644))
	tbl, err = LoadFile(tsvPath, Options{}, discardLogger())
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Names(), []string{"a", "b"})

	pqPath := filepath.Join(dir, "t.parquet")
	f, err := os.Create(pqPath)
	assert.NilError(t, err)
	assert.NilError(t, WriteParquet(f, tbl))
	assert.NilError(t, f.Close())
	back, err := LoadFile(pqPath, Options{}, discardLogger())
	assert.NilError(t, err)
	assert.Assert(t, back.Equal(tbl))

	_, err = LoadFile(filepath.Join(dir, "t.xlsx"), Options{}, discardLogger())
	assert.Assert(t, err != nil)
}
