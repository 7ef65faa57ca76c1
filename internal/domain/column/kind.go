package column

import "time"

// Kind is the element type of a column.
type Kind uint8

const (
	Invalid Kind = iota
	Int          // int64
	Float        // float64
	Bool         // bool
	String       // string
	Time         // time.Time
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "INT"
	case Float:
		return "FLOAT"
	case Bool:
		return "BOOL"
	case String:
		return "TEXT"
	case Time:
		return "TIME"
	default:
		return "INVALID"
	}
}

// Numeric reports whether values of this kind are numbers. Numeric kinds
// convert into each other when values are combined.
func (k Kind) Numeric() bool {
	return k == Int || k == Float
}

// Element is the set of Go types a column stores.
type Element interface {
	int64 | float64 | bool | string | time.Time
}

// KindOf returns the Kind for the element type T.
func KindOf[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case int64:
		return Int
	case float64:
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
