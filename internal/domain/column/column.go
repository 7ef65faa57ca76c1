package column

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Column is an immutable one-dimensional typed array.
//
// The stable sort permutation is computed on first use and cached for the
// column's lifetime; a nil sorter means "not computed yet".
type Column struct {
	vec    vector
	sorter []int
}

// New wraps a typed slice. The slice is copied.
func New[T Element](values []T) *Column {
	return &Column{vec: newTyped(slices.Clone(values))}
}

// adopt wraps a slice the caller no longer references.
func adopt[T Element](values []T) *Column {
	return &Column{vec: newTyped(values)}
}

func (c *Column) Kind() Kind { return c.vec.kind() }

func (c *Column) Len() int { return c.vec.len() }

// At returns the element at row i.
func (c *Column) At(i int) any { return c.vec.at(i) }

// Array returns the backing slice ([]int64, []float64, []bool, []string or
// []time.Time). It must not be modified.
func (c *Column) Array() any { return c.vec.array() }

// Compare compares the elements at rows i and j.
func (c *Column) Compare(i, j int) int { return c.vec.compare(i, j) }

// Sorter returns the row indices that stably sort the column ascending.
// The returned slice is shared and must not be modified.
func (c *Column) Sorter() []int {
	if c.sorter == nil {
		perm := make([]int, c.Len())
		for i := range perm {
			perm[i] = i
		}
		c.StableSort(perm)
		c.sorter = perm
	}
	return c.sorter
}

// StableSort reorders perm, a list of row indices, so that the referenced
// values ascend. Equal values keep their relative order in perm.
func (c *Column) StableSort(perm []int) {
	slices.SortStableFunc(perm, c.vec.compare)
}

// Take returns a new column holding the rows at idx, in that order.
func (c *Column) Take(idx []int) *Column {
	return &Column{vec: c.vec.take(idx)}
}

// Mask returns a new column holding the rows where mask is true.
func (c *Column) Mask(mask []bool) (*Column, error) {
	if len(mask) != c.Len() {
		return nil, errors.NewLengthMismatch("mask", c.Len(), len(mask))
	}
	idx := make([]int, 0, len(mask))
	for i, ok := range mask {
		if ok {
			idx = append(idx, i)
		}
	}
	return c.Take(idx), nil
}

// Slice returns the rows selected by start:stop:step (see data.SliceIndices).
func (c *Column) Slice(start, stop, step int) (*Column, error) {
	idx, err := data.SliceIndices(c.Len(), start, stop, step)
	if err != nil {
		return nil, err
	}
	return c.Take(idx), nil
}

// Equal reports whether both columns have the same kind, length and
// elements. NaN equals NaN here, so comparing a column with itself is
// always true.
func (c *Column) Equal(other *Column) bool {
	if c == other {
		return true
	}
	if other == nil || c.Kind() != other.Kind() || c.Len() != other.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		if c.vec.compareValue(i, other.vec.at(i)) != 0 {
			return false
		}
	}
	return true
}

// Concat appends columns end to end. All kinds must agree.
func Concat(cols ...*Column) (*Column, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("concat: no columns: %w", errors.ErrShape)
	}
	first := cols[0]
	rest := make([]vector, 0, len(cols)-1)
	for _, c := range cols[1:] {
		if c.Kind() != first.Kind() {
			return nil, errors.NewTypeMismatch("", first.Kind().String(), c.Kind().String())
		}
		rest = append(rest, c.vec)
	}
	return &Column{vec: first.vec.concat(rest)}, nil
}

// Values returns the backing slice if the column holds T.
func Values[T Element](c *Column) ([]T, bool) {
	v, ok := c.vec.(*typed[T])
	if !ok {
		return nil, false
	}
	return v.data, true
}

func (c *Column) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < c.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatValue(c.At(i)))
	}
	b.WriteByte(']')
	return b.String()
}

// Lexsort returns the row order that sorts rows lexicographically by cols,
// the first column being the primary key. It stable-sorts by the last
// column, then stable-sorts that permutation by each preceding column in
// turn, so rows with identical keys keep their original order.
func Lexsort(cols ...*Column) []int {
	if len(cols) == 0 {
		return nil
	}
	perm := slices.Clone(cols[len(cols)-1].Sorter())
	for i := len(cols) - 2; i >= 0; i-- {
		cols[i].StableSort(perm)
	}
	return perm
}
