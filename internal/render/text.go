package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/table"
)

const maxNameWidth = 32

// Text writes a frame as aligned columns: a header line, an underline of
// '=' under index columns and '-' under the rest, then the rows. When rows
// are cut off by opts.MaxRows a closing line reports the total.
func Text(w io.Writer, f Frame, opts Options) error {
	n := f.NumRows()
	shown := opts.shown(n)

	cells := make([][]string, len(f.Columns))
	widths := make([]int, len(f.Columns))
	for j, col := range f.Columns {
		widths[j] = utf8.RuneCountInString(f.Names[j])
		cells[j] = make([]string, shown)
		for i := range shown {
			s := column.FormatValue(col.At(i))
			cells[j][i] = s
			widths[j] = max(widths[j], utf8.RuneCountInString(s))
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, strings.Join(f.Names, "\t"))
	rules := make([]string, len(widths))
	for j, width := range widths {
		ch := "-"
		if j < f.NumIndex {
			ch = "="
		}
		rules[j] = strings.Repeat(ch, width)
	}
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	row := make([]string, len(cells))
	for i := range shown {
		for j := range cells {
			row[j] = cells[j][i]
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var err error
	switch {
	case n == 0:
		_, err = fmt.Fprintln(w, "... empty table ...")
	case shown < n:
		_, err = fmt.Fprintf(w, "... %d rows total ...\n", n)
	}
	return err
}

// Row writes one "name: value" line per column with the names padded to a
// common width.
func Row(w io.Writer, r table.Row) error {
	width := 0
	for _, name := range r.Names() {
		width = max(width, utf8.RuneCountInString(name))
	}
	width = min(width, maxNameWidth)

	for name, v := range r.Items() {
		if _, err := fmt.Fprintf(w, "%-*s: %s\n", width, name, column.FormatValue(v)); err != nil {
			return err
		}
	}
	return nil
}
