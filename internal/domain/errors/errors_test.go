package errors

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{NewLengthMismatch("num", 3, 4), ErrShape},
		{NewNotOneDimensional("num", 1), ErrShape},
		{NewUniqueViolation([]string{"name"}, []any{"c"}, []int{0, 1}), ErrNotUnique},
		{NewKeyNotFound([]any{"x"}), ErrMissingKey},
		{NewColumnNotFound("val"), ErrNoColumn},
		{NewColumnPositionNotFound(7), ErrNoColumn},
		{NewTypeMismatch("num", "INT", "TEXT"), ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Assert(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, NewLengthMismatch("num", 3, 4).Error(),
		"shape error: column num - not the same length - expected length 3, got 4")
	assert.Equal(t, NewUniqueViolation([]string{"name", "num"}, []any{"c", int64(6)}, []int{1, 7}).Error(),
		`not unique: key ("c", 6) on (name, num) at rows [1 7]`)
	assert.Equal(t, NewColumnNotFound("val").Error(), `no column "val"`)
	assert.Equal(t, NewColumnPositionNotFound(-9).Error(), "no column at position -9")
	assert.Equal(t, NewTypeMismatch("", "INT", "TEXT").Error(), "type mismatch: expected INT, got TEXT")
}

func TestErrorsAs(t *testing.T) {
	var err error = NewUniqueViolation([]string{"name"}, []any{"c"}, []int{0, 3})
	var uv *UniqueViolation
	assert.Assert(t, errors.As(err, &uv))
	assert.DeepEqual(t, uv.Rows, []int{0, 3})
}
