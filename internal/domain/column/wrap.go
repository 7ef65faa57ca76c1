package column

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/leengari/tabular/internal/domain/errors"
)

// Wrap converts raw slice data into a Column. A *Column is returned as is.
//
// Integer slices of any width become Int, float32/float64 become Float.
// Nested slices and non-slice values fail with a shape error; slices of
// other element types fail with a type mismatch.
func Wrap(obj any) (*Column, error) {
	switch v := obj.(type) {
	case *Column:
		return v, nil
	case []int64:
		return New(v), nil
	case []float64:
		return New(v), nil
	case []bool:
		return New(v), nil
	case []string:
		return New(v), nil
	case []time.Time:
		return New(v), nil
	case []int:
		return adopt(convert(v, func(x int) int64 { return int64(x) })), nil
	case []int32:
		return adopt(convert(v, func(x int32) int64 { return int64(x) })), nil
	case []float32:
		return adopt(convert(v, func(x float32) float64 { return float64(x) })), nil
	case []any:
		return FromValues(v)
	case nil:
		return nil, errors.NewNotOneDimensional("", obj)
	}
	return wrapReflect(reflect.ValueOf(obj))
}

// MustWrap is like Wrap but panics on error. Intended for literals and tests.
func MustWrap(obj any) *Column {
	c, err := Wrap(obj)
	if err != nil {
		panic(err)
	}
	return c
}

func convert[S, T any](in []S, f func(S) T) []T {
	out := make([]T, len(in))
	for i, x := range in {
		out[i] = f(x)
	}
	return out
}

func wrapReflect(v reflect.Value) (*Column, error) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, errors.NewNotOneDimensional("", v.Interface())
	}
	elem := v.Type().Elem()
	n := v.Len()
	switch elem.Kind() {
	case reflect.Slice, reflect.Array:
		return nil, errors.NewNotOneDimensional("", v.Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out := make([]int64, n)
		for i := range out {
			out[i] = v.Index(i).Int()
		}
		return adopt(out), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(v.Index(i).Uint())
		}
		return adopt(out), nil
	case reflect.Float32, reflect.Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = v.Index(i).Float()
		}
		return adopt(out), nil
	case reflect.Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = v.Index(i).Bool()
		}
		return adopt(out), nil
	case reflect.String:
		out := make([]string, n)
		for i := range out {
			out[i] = v.Index(i).String()
		}
		return adopt(out), nil
	}
	if elem == reflect.TypeOf(time.Time{}) {
		out := make([]time.Time, n)
		for i := range out {
			out[i] = v.Index(i).Interface().(time.Time)
		}
		return adopt(out), nil
	}
	return nil, errors.NewTypeMismatch("", "INT, FLOAT, BOOL, TEXT or TIME elements", elem.String())
}

// FromValues builds a column from loosely typed values, as produced by JSON
// decoding or row-wise ingestion. Mixed integers and floats promote to
// Float; any other mix is a type mismatch.
func FromValues(vals []any) (*Column, error) {
	kind := Invalid
	for _, v := range vals {
		k := kindOfValue(v)
		if k == Invalid {
			return nil, errors.NewTypeMismatch("", "scalar value", fmt.Sprintf("%T", v))
		}
		switch {
		case kind == Invalid || kind == k:
			kind = k
		case kind.Numeric() && k.Numeric():
			kind = Float
		default:
			return nil, errors.NewTypeMismatch("", kind.String(), k.String())
		}
	}

	switch kind {
	case Invalid:
		// No values: an empty column of strings, like an empty text array.
		return adopt([]string{}), nil
	case Int:
		return adopt(convert(vals, func(v any) int64 { x, _ := coerce(Int, v); return x.(int64) })), nil
	case Float:
		return adopt(convert(vals, func(v any) float64 { x, _ := coerce(Float, v); return x.(float64) })), nil
	case Bool:
		return adopt(convert(vals, func(v any) bool { return v.(bool) })), nil
	case String:
		return adopt(convert(vals, func(v any) string { return v.(string) })), nil
	default:
		return adopt(convert(vals, func(v any) time.Time { return v.(time.Time) })), nil
	}
}

func kindOfValue(v any) Kind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return Int
	case float32, float64:
		return Float
	case bool:
		return Bool
	case string:
		return String
	case time.Time:
		return Time
	}
	return Invalid
}

// coerce normalizes v to the Go type stored by columns of kind k.
func coerce(k Kind, v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch k {
	case Int:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return int64(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			if f := rv.Float(); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return int64(f), nil
			}
		}
	case Float:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return float64(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		}
	case Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case String:
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case Time:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	}
	return nil, errors.NewTypeMismatch("", k.String(), fmt.Sprintf("%T", v))
}

// Probe is a lookup value normalized to a column's element type, ready to
// be compared against rows without further conversion.
type Probe struct {
	vec   vector
	value any
}

// Probe normalizes v for comparisons against this column.
func (c *Column) Probe(v any) (Probe, error) {
	x, err := coerce(c.Kind(), v)
	if err != nil {
		return Probe{}, err
	}
	return Probe{vec: c.vec, value: x}, nil
}

// Compare returns the ordering of the column value at row i relative to the
// probe value.
func (p Probe) Compare(i int) int {
	return p.vec.compareValue(i, p.value)
}

// Value returns the normalized value.
func (p Probe) Value() any { return p.value }

// FormatValue renders one element the way columns print their values.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
