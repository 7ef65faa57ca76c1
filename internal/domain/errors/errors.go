package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for each error kind. Typed errors below unwrap to one of these,
// so callers can match with errors.Is and still reach details with errors.As.
var (
	ErrShape              = errors.New("shape error")
	ErrNotUnique          = errors.New("not unique")
	ErrMissingKey         = errors.New("missing key")
	ErrNoColumn           = errors.New("no such column")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrAmbiguousSelection = errors.New("ambiguous selection")
	ErrIndexRange         = errors.New("index out of range")
	ErrNoColumns          = errors.New("table has no columns")
	ErrStale              = errors.New("stale view: table changed since the view was built")
)

// ShapeError reports an array that is not one-dimensional or whose length
// disagrees with the established row count.
type ShapeError struct {
	Column   string // column name (empty if not known)
	Reason   string
	Expected int // -1 if not a length mismatch
	Actual   int
}

func (e *ShapeError) Error() string {
	var parts []string
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %s", e.Column))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Expected >= 0 {
		parts = append(parts, fmt.Sprintf("expected length %d, got %d", e.Expected, e.Actual))
	}
	return "shape error: " + strings.Join(parts, " - ")
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// NewLengthMismatch builds a ShapeError for a column whose length is wrong.
func NewLengthMismatch(column string, expected, actual int) *ShapeError {
	return &ShapeError{
		Column:   column,
		Reason:   "not the same length",
		Expected: expected,
		Actual:   actual,
	}
}

// NewNotOneDimensional builds a ShapeError for nested or scalar input.
func NewNotOneDimensional(column string, got any) *ShapeError {
	return &ShapeError{
		Column:   column,
		Reason:   fmt.Sprintf("not one-dimensional: %T", got),
		Expected: -1,
	}
}

// UniqueViolation is returned when two rows share a composite key.
type UniqueViolation struct {
	Columns []string // key column names
	Key     []any    // offending composite key
	Rows    []int    // conflicting row positions (original order)
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("not unique: key %s on (%s) at rows %v",
		FormatKey(e.Key), strings.Join(e.Columns, ", "), e.Rows)
}

func (e *UniqueViolation) Unwrap() error { return ErrNotUnique }

func NewUniqueViolation(columns []string, key []any, rows []int) *UniqueViolation {
	return &UniqueViolation{
		Columns: columns,
		Key:     key,
		Rows:    rows,
	}
}

// KeyNotFoundError is returned by key-addressed lookups with no match.
type KeyNotFoundError struct {
	Key    []any
	Reason string // optional
}

func (e *KeyNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("missing key %s: %s", FormatKey(e.Key), e.Reason)
	}
	return fmt.Sprintf("missing key %s", FormatKey(e.Key))
}

func (e *KeyNotFoundError) Unwrap() error { return ErrMissingKey }

func NewKeyNotFound(key []any) *KeyNotFoundError {
	return &KeyNotFoundError{Key: key}
}

// ColumnNotFoundError is returned for access or removal by an absent name.
type ColumnNotFoundError struct {
	ColumnName string
	Position   int // -1 when the lookup was by name
}

func (e *ColumnNotFoundError) Error() string {
	if e.Position >= 0 || e.ColumnName == "" {
		return fmt.Sprintf("no column at position %d", e.Position)
	}
	return fmt.Sprintf("no column %q", e.ColumnName)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrNoColumn }

func NewColumnNotFound(name string) *ColumnNotFoundError {
	return &ColumnNotFoundError{ColumnName: name, Position: -1}
}

func NewColumnPositionNotFound(pos int) *ColumnNotFoundError {
	return &ColumnNotFoundError{Position: pos}
}

// TypeMismatchError reports disagreeing or unsupported element types.
type TypeMismatchError struct {
	Column   string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch in column %s: expected %s, got %s", e.Column, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func NewTypeMismatch(column, expected, actual string) *TypeMismatchError {
	return &TypeMismatchError{
		Column:   column,
		Expected: expected,
		Actual:   actual,
	}
}

// FormatKey renders a composite key as a tuple, e.g. ("c", 6).
func FormatKey(key []any) string {
	parts := make([]string, len(key))
	for i, v := range key {
		if s, ok := v.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
		} else {
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
