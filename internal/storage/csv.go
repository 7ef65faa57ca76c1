package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/table"
)

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

// ReadCSV reads a header row followed by data rows. Each column gets the
// first type that parses every one of its fields: integer, float, bool,
// time, and otherwise text.
func ReadCSV(r io.Reader, opts Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: missing header row")
	}

	header, rows := records[0], records[1:]
	defs := make([]table.Def, len(header))
	fields := make([]string, len(rows))
	for j, name := range header {
		for i, row := range rows {
			fields[i] = row[j]
		}
		defs[j] = table.Col(name, inferColumn(fields))
	}
	return table.New(defs...)
}

// inferColumn converts text fields into the narrowest column type.
func inferColumn(fields []string) *column.Column {
	if len(fields) == 0 {
		return column.New([]string{})
	}
	if vals, ok := parseAll(fields, func(s string) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}); ok {
		return column.New(vals)
	}
	if vals, ok := parseAll(fields, func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}); ok {
		return column.New(vals)
	}
	if vals, ok := parseAll(fields, parseBool); ok {
		return column.New(vals)
	}
	if vals, ok := parseAll(fields, ParseTime); ok {
		return column.New(vals)
	}
	return column.New(fields)
}

func parseAll[T column.Element](fields []string, parse func(string) (T, error)) ([]T, bool) {
	out := make([]T, len(fields))
	for i, s := range fields {
		v, err := parse(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseBool accepts only the words true and false, in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("not a bool: %q", s)
}

// ParseTime parses s with the layouts ReadCSV recognizes: RFC 3339,
// "2006-01-02 15:04:05" and a bare date.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a time: %q", s)
}
