package table

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"

	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Selector chooses and orders column names.
type Selector interface {
	selectNames(names []string) ([]string, error)
}

// Open marks an omitted bound in Span.
const Open = data.Open

type ellipsis struct{}

func (ellipsis) String() string { return "..." }

// Ellipsis stands for "all remaining names, in storage order" inside Names.
var Ellipsis = ellipsis{}

type nameList []any

// Names selects columns in the given order. Items are column names or a
// single Ellipsis.
//
//	Names("val", Ellipsis, "num") // val, <everything else>, num
func Names(items ...any) Selector {
	return nameList(items)
}

func (l nameList) selectNames(names []string) ([]string, error) {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	at := -1
	for i, item := range l {
		switch v := item.(type) {
		case ellipsis:
			if at >= 0 {
				return nil, fmt.Errorf("more than one ellipsis in name selection: %w", errors.ErrAmbiguousSelection)
			}
			at = i
		case string:
			if !present[v] {
				return nil, errors.NewColumnNotFound(v)
			}
		default:
			return nil, errors.NewTypeMismatch("", "column name", fmt.Sprintf("%T", item))
		}
	}

	seen := make(map[string]bool, len(l))
	collect := func(items []any) []string {
		var out []string
		for _, item := range items {
			if n, ok := item.(string); ok && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
		return out
	}

	if at < 0 {
		return collect(l), nil
	}
	head := collect(l[:at])
	tail := collect(l[at+1:])
	out := make([]string, 0, len(names))
	out = append(out, head...)
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return append(out, tail...), nil
}

type span struct {
	start, stop, step int
}

// Span selects columns by position with start:stop:step slicing. Use Open
// for an omitted bound.
func Span(start, stop, step int) Selector {
	return span{start: start, stop: stop, step: step}
}

func (s span) selectNames(names []string) ([]string, error) {
	idx, err := data.SliceIndices(len(names), s.start, s.stop, s.step)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = names[j]
	}
	return out, nil
}

// Predicate selects the names it accepts, keeping storage order.
type Predicate func(name string) bool

func (p Predicate) selectNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if p(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// And accepts names accepted by both predicates.
func (p Predicate) And(q Predicate) Predicate {
	return func(n string) bool { return p(n) && q(n) }
}

// Or accepts names accepted by either predicate.
func (p Predicate) Or(q Predicate) Predicate {
	return func(n string) bool { return p(n) || q(n) }
}

// Where wraps a plain function as a Predicate.
func Where(fn func(name string) bool) Predicate {
	return Predicate(fn)
}

// Only accepts exactly the given names. Unlike Names it does not reorder
// and ignores names the table lacks.
func Only(names ...string) Predicate {
	return func(n string) bool { return slices.Contains(names, n) }
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(n string) bool { return !p(n) }
}

// AllBut accepts every name except the given ones.
func AllBut(names ...string) Predicate {
	return Not(Only(names...))
}

// Matching accepts names that match pattern at their start. The pattern
// uses Perl/Python syntax, including lookarounds.
func Matching(pattern string) (Predicate, error) {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("column pattern %q: %w", pattern, err)
	}
	return func(n string) bool {
		ok, err := re.MatchString(n)
		return err == nil && ok
	}, nil
}
