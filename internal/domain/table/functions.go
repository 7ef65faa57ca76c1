package table

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/errors"
)

// Match is an equality condition on one column.
type Match struct {
	Name  string
	Value any
}

// Eq builds a Match.
func Eq(name string, value any) Match {
	return Match{Name: name, Value: value}
}

// FilterMask returns a mask of the rows satisfying every condition.
func (t *Table) FilterMask(conds ...Match) ([]bool, error) {
	n := t.numRows()
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	for _, cond := range conds {
		c, err := t.Column(cond.Name)
		if err != nil {
			return nil, err
		}
		probe, err := c.Probe(cond.Value)
		if err != nil {
			return nil, fmt.Errorf("filter on %s: %w", cond.Name, err)
		}
		for i := range mask {
			if mask[i] && probe.Compare(i) != 0 {
				mask[i] = false
			}
		}
	}
	return mask, nil
}

// Filter returns the sub-table of rows satisfying every condition.
func (t *Table) Filter(conds ...Match) (*Table, error) {
	mask, err := t.FilterMask(conds...)
	if err != nil {
		return nil, err
	}
	return t.Rows().Mask(mask)
}

// Find returns the single row satisfying every condition.
func (t *Table) Find(conds ...Match) (Row, error) {
	mask, err := t.FilterMask(conds...)
	if err != nil {
		return Row{}, err
	}
	var hits []int
	for i, ok := range mask {
		if ok {
			hits = append(hits, i)
		}
	}

	key := make([]any, len(conds))
	names := make([]string, len(conds))
	for i, cond := range conds {
		key[i], names[i] = cond.Value, cond.Name
	}
	switch len(hits) {
	case 0:
		return Row{}, errors.NewKeyNotFound(key)
	case 1:
		return t.Rows().At(hits[0])
	default:
		return Row{}, errors.NewUniqueViolation(names, key, hits)
	}
}

// Rename renames a column in place, keeping its position.
func (t *Table) Rename(old, name string) error {
	c, ok := t.cols[old]
	if !ok {
		return errors.NewColumnNotFound(old)
	}
	if old == name {
		return nil
	}
	if _, taken := t.cols[name]; taken {
		return fmt.Errorf("rename %s: column %q already exists", old, name)
	}

	names := slices.Clone(t.names)
	names[slices.Index(names, old)] = name
	cols := maps.Clone(t.cols)
	delete(cols, old)
	cols[name] = c

	t.names, t.cols = names, cols
	t.generation = uuid.New()
	return nil
}

// Const returns the columns whose value is the same in every row, mapped
// to that value. A table with no rows has no constant columns.
func (t *Table) Const() map[string]any {
	out := make(map[string]any)
	if t.numRows() == 0 {
		return out
	}
	for _, n := range t.names {
		c := t.cols[n]
		same := true
		for i := 1; i < c.Len() && same; i++ {
			same = c.Compare(0, i) == 0
		}
		if same {
			out[n] = c.At(0)
		}
	}
	return out
}

// RemoveConst removes the constant columns and returns them as Const does.
func (t *Table) RemoveConst() (map[string]any, error) {
	consts := t.Const()
	names := make([]string, 0, len(consts))
	for _, n := range t.names {
		if _, ok := consts[n]; ok {
			names = append(names, n)
		}
	}
	if err := t.Remove(names...); err != nil {
		return nil, err
	}
	return consts, nil
}

// Concat stacks tables row-wise. All tables must have the same column
// names in the same order, and matching element kinds.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return New()
	}
	first := tables[0]
	for _, other := range tables[1:] {
		for _, n := range first.names {
			c, err := other.Column(n)
			if err != nil {
				return nil, err
			}
			if k := first.cols[n].Kind(); c.Kind() != k {
				return nil, errors.NewTypeMismatch(n, k.String(), c.Kind().String())
			}
		}
		if other.NumCols() != first.NumCols() {
			return nil, fmt.Errorf("concat: tables have different columns (%v vs %v): %w",
				first.names, other.names, errors.ErrShape)
		}
	}

	cols := make(map[string]*column.Column, len(first.names))
	length := 0
	for _, n := range first.names {
		parts := make([]*column.Column, len(tables))
		for i, tbl := range tables {
			parts[i] = tbl.cols[n]
		}
		c, err := column.Concat(parts...)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", n, err)
		}
		cols[n], length = c, c.Len()
	}
	return fromColumns(slices.Clone(first.names), cols, length), nil
}

// FromRecords builds a table from mapping records that share the same
// keys. Columns are ordered by name.
func FromRecords(recs []map[string]any) (*Table, error) {
	if len(recs) == 0 {
		return New()
	}
	names := slices.Sorted(maps.Keys(recs[0]))
	vals := make([][]any, len(names))
	for r, rec := range recs {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("record %d has %d fields, expected %d: %w",
				r, len(rec), len(names), errors.ErrShape)
		}
		for i, n := range names {
			v, ok := rec[n]
			if !ok {
				return nil, fmt.Errorf("record %d: %w", r, errors.NewColumnNotFound(n))
			}
			vals[i] = append(vals[i], v)
		}
	}
	return fromValueColumns(names, vals)
}

// FromRowSeqs builds a table from column names and rows of values, one
// value per name in each row.
func FromRowSeqs(names []string, rows [][]any) (*Table, error) {
	vals := make([][]any, len(names))
	for i := range vals {
		vals[i] = make([]any, 0, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d values, expected %d: %w",
				r, len(row), len(names), errors.ErrShape)
		}
		for i, v := range row {
			vals[i] = append(vals[i], v)
		}
	}
	return fromValueColumns(names, vals)
}

func fromValueColumns(names []string, vals [][]any) (*Table, error) {
	defs := make([]Def, len(names))
	for i, n := range names {
		c, err := column.FromValues(vals[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", n, err)
		}
		defs[i] = Col(n, c)
	}
	return New(defs...)
}
