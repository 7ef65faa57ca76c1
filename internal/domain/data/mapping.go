package data

import (
	"iter"

	"github.com/leengari/tabular/internal/domain/errors"
)

// Mapping is the key-value capability shared by indexes, groupings and
// series. Each concrete type implements it on its own.
type Mapping[K, V any] interface {
	Len() int
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Items() iter.Seq2[K, V]
	Get(key K) (V, error)
	Contains(key K) bool
}

// Key is a composite key: one value per key column.
type Key []any

// K builds a Key from its values.
func K(vals ...any) Key {
	return Key(vals)
}

func (k Key) String() string {
	return errors.FormatKey(k)
}

// Equal compares keys element-wise with ==.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}
