package data

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabular/internal/domain/errors"
)

func TestSliceIndices(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int
		expected          []int
	}{
		{"all", Open, Open, 1, []int{0, 1, 2, 3, 4}},
		{"reversed", Open, Open, -1, []int{4, 3, 2, 1, 0}},
		{"every other", Open, Open, 2, []int{0, 2, 4}},
		{"negative stop", 1, -1, 1, []int{1, 2, 3}},
		{"negative start", -2, Open, 1, []int{3, 4}},
		{"past the end", 10, 20, 1, []int{}},
		{"clamped", -10, 10, 1, []int{0, 1, 2, 3, 4}},
		{"backwards range", 3, 0, -1, []int{3, 2, 1}},
		{"empty forward", 3, 1, 1, []int{}},
		{"default step", 1, 3, Open, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SliceIndices(5, tt.start, tt.stop, tt.step)
			assert.NilError(t, err)
			assert.DeepEqual(t, got, tt.expected)
		})
	}
}

func TestSliceIndices_ZeroStep(t *testing.T) {
	_, err := SliceIndices(5, 0, 5, 0)
	assert.ErrorIs(t, err, errors.ErrIndexRange)
}

func TestNormalizeIndex(t *testing.T) {
	i, err := NormalizeIndex(-1, 4)
	assert.NilError(t, err)
	assert.Equal(t, i, 3)

	_, err = NormalizeIndex(4, 4)
	assert.ErrorIs(t, err, errors.ErrIndexRange)

	_, err = NormalizeIndex(-5, 4)
	assert.ErrorIs(t, err, errors.ErrIndexRange)
}

func TestKey(t *testing.T) {
	k := K("c", int64(6))
	assert.Equal(t, k.String(), `("c", 6)`)
	assert.Assert(t, k.Equal(K("c", int64(6))))
	assert.Assert(t, !k.Equal(K("c", 6)))
	assert.Assert(t, !k.Equal(K("c")))
}
