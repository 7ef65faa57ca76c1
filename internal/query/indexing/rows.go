package indexing

import (
	"fmt"
	"iter"
	"sort"

	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Rows maps composite keys to row numbers. Iteration follows the original
// row order, not the sorted order.
type Rows struct {
	index *Index
}

var _ data.Mapping[data.Key, int] = (*Rows)(nil)

func (r *Rows) Len() int { return r.index.length }

// Keys iterates the composite key of every row in original order.
func (r *Rows) Keys() iter.Seq[data.Key] {
	return func(yield func(data.Key) bool) {
		for i := 0; i < r.index.length; i++ {
			if !yield(r.index.KeyAt(i)) {
				return
			}
		}
	}
}

// Values iterates row numbers 0..Len()-1.
func (r *Rows) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < r.index.length; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Items iterates (key, row number) pairs in original order.
func (r *Rows) Items() iter.Seq2[data.Key, int] {
	return func(yield func(data.Key, int) bool) {
		for i := 0; i < r.index.length; i++ {
			if !yield(r.index.KeyAt(i), i) {
				return
			}
		}
	}
}

// Get returns the row number holding key.
//
// The sorted row range is narrowed one key column at a time: the first
// column's value bounds the full range, the next column's value bounds the
// resulting sub-range, and so on.
func (r *Rows) Get(key data.Key) (int, error) {
	idx := r.index
	if len(key) != len(idx.cols) {
		return 0, &errors.KeyNotFoundError{
			Key:    key,
			Reason: fmt.Sprintf("expected %d key values, got %d", len(idx.cols), len(key)),
		}
	}

	s := idx.sorter
	lo, hi := 0, len(s)
	for j, c := range idx.cols {
		probe, err := c.Probe(key[j])
		if err != nil {
			return 0, &errors.KeyNotFoundError{Key: key, Reason: err.Error()}
		}
		lower := lo + sort.Search(hi-lo, func(p int) bool { return probe.Compare(s[lo+p]) >= 0 })
		if lower == hi || probe.Compare(s[lower]) != 0 {
			return 0, errors.NewKeyNotFound(key)
		}
		upper := lower + sort.Search(hi-lower, func(p int) bool { return probe.Compare(s[lower+p]) > 0 })
		lo, hi = lower, upper
	}
	return s[lo], nil
}

// Contains reports whether some row holds key.
func (r *Rows) Contains(key data.Key) bool {
	_, err := r.Get(key)
	return err == nil
}
