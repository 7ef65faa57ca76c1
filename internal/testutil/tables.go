package testutil

import (
	"github.com/leengari/tabular/internal/domain/table"
)

// CreateNumNameTable returns the num/name/val/data table used across the
// package tests:
//
//	num  name val data
//	3    a    1.5 1
//	6    b    2.5 2
//	2    c    3.5 3
//	...
func CreateNumNameTable() *table.Table {
	return table.MustNew(
		table.Col("num", []int64{3, 6, 2, 9, 4}),
		table.Col("name", []string{"a", "b", "c", "d", "e"}),
		table.Col("val", []float64{1.5, 2.5, 3.5, 4.5, 5.5}),
		table.Col("data", []int64{1, 2, 3, 4, 5}),
	)
}

// CreateSymbolTable returns a table with repeated symbols for grouping:
// four rows of "foo" interleaved with two of "bar" and one "baz".
func CreateSymbolTable() *table.Table {
	return table.MustNew(
		table.Col("sym", []string{"foo", "bar", "foo", "baz", "foo", "bar", "foo"}),
		table.Col("val", []int64{1, 2, 3, 4, 5, 6, 7}),
	)
}

// CreatePairTable returns a table keyed by the composite (name, num), where
// neither column is unique on its own.
func CreatePairTable() *table.Table {
	return table.MustNew(
		table.Col("name", []string{"a", "c", "b", "c", "a"}),
		table.Col("num", []int64{1, 3, 2, 6, 2}),
		table.Col("val", []float64{10, 30, 20, 60, 25}),
	)
}
