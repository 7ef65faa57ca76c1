package relation

import (
	"fmt"
	"iter"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
	"github.com/leengari/tabular/internal/query/indexing"
	"github.com/leengari/tabular/internal/render"
)

// Series is a single named column addressed by an index's composite keys.
type Series struct {
	index *indexing.Index
	col   *column.Column
	name  string
}

var _ data.Mapping[data.Key, any] = (*Series)(nil)

// NewSeries pairs col with idx. Both must have the same length.
func NewSeries(col *column.Column, idx *indexing.Index, name string) (*Series, error) {
	if col.Len() != idx.Len() {
		return nil, errors.NewLengthMismatch(name, idx.Len(), col.Len())
	}
	return &Series{index: idx, col: col, name: name}, nil
}

func (s *Series) Name() string { return s.name }

func (s *Series) Column() *column.Column { return s.col }

func (s *Series) Index() *indexing.Index { return s.index }

func (s *Series) Len() int { return s.col.Len() }

func (s *Series) Keys() iter.Seq[data.Key] { return s.index.Rows().Keys() }

func (s *Series) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range s.col.Len() {
			if !yield(s.col.At(i)) {
				return
			}
		}
	}
}

// Items iterates (key, value) pairs in original row order.
func (s *Series) Items() iter.Seq2[data.Key, any] {
	return func(yield func(data.Key, any) bool) {
		for i := range s.col.Len() {
			if !yield(s.index.KeyAt(i), s.col.At(i)) {
				return
			}
		}
	}
}

// Get returns the value at key.
func (s *Series) Get(key data.Key) (any, error) {
	i, err := s.index.Rows().Get(key)
	if err != nil {
		return nil, err
	}
	return s.col.At(i), nil
}

func (s *Series) Contains(key data.Key) bool { return s.index.Rows().Contains(key) }

// Frame lays out the index columns then the series, in key order.
func (s *Series) Frame() render.Frame {
	f := s.index.Frame()
	if !s.index.Contains(s.name) {
		f.Names = append(f.Names, s.name)
		f.Columns = append(f.Columns, s.col.Take(s.index.Sorter()))
	}
	return f
}

func (s *Series) String() string {
	return fmt.Sprintf("Series(%s=%s)", s.name, s.col)
}
