package testutil

import (
	"testing"

	"github.com/leengari/tabular/internal/domain/table"
)

// AssertRowCount checks if the table has the expected number of rows
func AssertRowCount(t *testing.T, tbl *table.Table, expected int, context string) {
	t.Helper()
	if actual := tbl.Rows().Len(); actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnNames checks the table's column names and their order
func AssertColumnNames(t *testing.T, tbl *table.Table, expected []string, context string) {
	t.Helper()
	actual := tbl.Names()
	if len(actual) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
			return
		}
	}
}

// AssertColumnValues checks every value of a named column
func AssertColumnValues(t *testing.T, tbl *table.Table, name string, expected []any, context string) {
	t.Helper()
	col, err := tbl.Column(name)
	if err != nil {
		t.Errorf("%s: %v", context, err)
		return
	}
	if col.Len() != len(expected) {
		t.Errorf("%s: column %s has %d values, expected %d", context, name, col.Len(), len(expected))
		return
	}
	for i, want := range expected {
		if got := col.At(i); got != want {
			t.Errorf("%s: column %s row %d: expected %v (%T), got %v (%T)", context, name, i, want, want, got, got)
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}
