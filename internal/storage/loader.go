package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leengari/tabular/internal/domain/table"
)

// Options tune file ingestion.
type Options struct {
	Delimiter rune // CSV field separator; zero means ','
}

// LoadFile reads a table from path, choosing the format by extension:
// .csv, .tsv, .json or .parquet.
func LoadFile(path string, opts Options, logger *slog.Logger) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t *table.Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = ReadCSV(f, opts)
	case ".tsv":
		opts.Delimiter = '\t'
		t, err = ReadCSV(f, opts)
	case ".json":
		t, err = ReadJSON(f)
	case ".parquet":
		info, serr := f.Stat()
		if serr != nil {
			return nil, serr
		}
		t, err = ReadParquet(f, info.Size())
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	logger.Info("table loaded",
		slog.String("path", path),
		slog.Int("columns", t.NumCols()),
		slog.Int("rows", t.Rows().Len()),
	)
	return t, nil
}
