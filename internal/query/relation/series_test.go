package relation

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/domain/table"
	"github.com/leengari/tabular/internal/query/indexing"
)

func TestSeries(t *testing.T) {
	idx, err := indexing.New(table.Col("sym", []string{"ibm", "aapl", "msft"}))
	assert.NilError(t, err)
	s, err := NewSeries(column.New([]float64{140, 190, 410}), idx, "px")
	assert.NilError(t, err)

	v, err := s.Get(data.K("aapl"))
	assert.NilError(t, err)
	assert.Equal(t, v, 190.0)

	_, err = s.Get(data.K("goog"))
	assert.ErrorIs(t, err, errors.ErrMissingKey)

	assert.DeepEqual(t, slices.Collect(s.Values()), []any{140.0, 190.0, 410.0})
	var keys []data.Key
	for k := range s.Items() {
		keys = append(keys, k)
	}
	assert.DeepEqual(t, keys, []data.Key{{"ibm"}, {"aapl"}, {"msft"}})

	f := s.Frame()
	assert.DeepEqual(t, f.Names, []string{"sym", "px"})
	assert.DeepEqual(t, f.Columns[1].Array(), []float64{190, 140, 410})
	assert.Equal(t, s.String(), "Series(px=[140 190 410])")
}

func TestSeries_LengthMismatch(t *testing.T) {
	idx, err := indexing.New(table.Col("k", []int64{1, 2}))
	assert.NilError(t, err)
	_, err = NewSeries(column.New([]int64{1}), idx, "v")
	assert.ErrorIs(t, err, errors.ErrShape)
}
