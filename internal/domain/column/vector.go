package column

import (
	"cmp"
	"math"
	"strings"
	"time"
)

// vector is the type-erased storage behind a Column.
type vector interface {
	kind() Kind
	len() int
	at(i int) any
	compare(i, j int) int
	// compareValue compares element i with v, which must already have the
	// vector's element type.
	compareValue(i int, v any) int
	take(idx []int) vector
	array() any
	concat(others []vector) vector
}

type typed[T Element] struct {
	data []T
	cmp  func(a, b T) int
}

func newTyped[T Element](data []T) *typed[T] {
	return &typed[T]{data: data, cmp: comparator[T]()}
}

func (v *typed[T]) kind() Kind { return KindOf[T]() }

func (v *typed[T]) len() int { return len(v.data) }

func (v *typed[T]) at(i int) any { return v.data[i] }

func (v *typed[T]) compare(i, j int) int { return v.cmp(v.data[i], v.data[j]) }

func (v *typed[T]) compareValue(i int, x any) int { return v.cmp(v.data[i], x.(T)) }

func (v *typed[T]) take(idx []int) vector {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = v.data[j]
	}
	return newTyped(out)
}

func (v *typed[T]) array() any { return v.data }

func (v *typed[T]) concat(others []vector) vector {
	n := len(v.data)
	for _, o := range others {
		n += o.len()
	}
	out := make([]T, 0, n)
	out = append(out, v.data...)
	for _, o := range others {
		out = append(out, o.(*typed[T]).data...)
	}
	return newTyped(out)
}

func comparator[T Element]() func(a, b T) int {
	var f any
	switch any(*new(T)).(type) {
	case int64:
		f = cmp.Compare[int64]
	case float64:
		f = compareFloat
	case bool:
		f = compareBool
	case string:
		f = strings.Compare
	case time.Time:
		f = func(a, b time.Time) int { return a.Compare(b) }
	}
	return f.(func(a, b T) int)
}

// compareFloat orders NaN after every number and equal to itself.
func compareFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(a, b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
