package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
)

// ReadJSON reads an array of flat records with identical keys. Columns are
// ordered by name. Numbers become integers when every value in the column
// is integral.
func ReadJSON(r io.Reader) (*table.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	recs := make([]map[string]any, len(raw))
	for i, rec := range raw {
		out := make(map[string]any, len(rec))
		for k, v := range rec {
			x, err := jsonScalar(v)
			if err != nil {
				return nil, fmt.Errorf("record %d field %s: %w", i, k, err)
			}
			out[k] = x
		}
		recs[i] = out
	}
	return table.FromRecords(recs)
}

func jsonScalar(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return x.Float64()
	case string, bool:
		return x, nil
	}
	return nil, errors.NewTypeMismatch("", "scalar", fmt.Sprintf("%T", v))
}
