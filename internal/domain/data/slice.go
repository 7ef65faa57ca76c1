package data

import (
	"fmt"
	"math"

	"github.com/leengari/tabular/internal/domain/errors"
)

// Open marks an omitted slice bound, like an empty bound in a[1:].
const Open = math.MinInt

// SliceIndices returns the positions selected by start:stop:step over a
// sequence of length n. Bounds follow sequence slicing rules: negative
// bounds count from the end, out-of-range bounds are clamped, Open means
// "from the beginning" or "to the end" depending on the step's sign.
func SliceIndices(n, start, stop, step int) ([]int, error) {
	if step == Open {
		step = 1
	}
	if step == 0 {
		return nil, fmt.Errorf("slice step cannot be zero: %w", errors.ErrIndexRange)
	}

	if step > 0 {
		start = clampBound(start, n, 0, 0, n)
		stop = clampBound(stop, n, n, 0, n)
	} else {
		start = clampBound(start, n, n-1, -1, n-1)
		stop = clampBound(stop, n, -1, -1, n-1)
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	if out == nil {
		out = []int{}
	}
	return out, nil
}

func clampBound(b, n, def, lo, hi int) int {
	if b == Open {
		return def
	}
	if b < 0 {
		b += n
	}
	if b < lo {
		return lo
	}
	if b > hi {
		return hi
	}
	return b
}

// NormalizeIndex maps a possibly negative index onto [0, n).
func NormalizeIndex(i, n int) (int, error) {
	switch {
	case 0 <= i && i < n:
		return i, nil
	case -n <= i && i < 0:
		return i + n, nil
	}
	return 0, fmt.Errorf("index %d for length %d: %w", i, n, errors.ErrIndexRange)
}
