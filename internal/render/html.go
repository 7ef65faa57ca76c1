package render

import (
	"html/template"
	"io"

	"github.com/leengari/tabular/internal/domain/column"
)

const css = `
.tab-table {
  border-collapse: collapse;
  border: none;
}
.tab-table thead {
  line-height: 120%;
}
.tab-table tbody {
  font-family: Consolas, monospace;
  font-size: 85%;
}
.tab-table tbody tr:nth-child(odd) {
  background: #f8f8f8;
}
`

var htmlTemplate = template.Must(template.New("table").Parse(`<style>{{.CSS}}</style>
<table class="{{.Class}}">
<thead>
<tr>{{range .Names}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- if .Empty}}
<tr><td colspan="{{len .Names}}" style="text-align: center">... empty ...</td></tr>
{{- end}}
{{- range .Rows}}
<tr>{{range .}}<td style="text-align: {{.Align}};">{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
{{- if .Truncated}}
<tfoot>
<tr><td colspan="{{len .Names}}" style="text-align: center">... {{.Total}} rows total ...</td></tr>
</tfoot>
{{- end}}
</table>
`))

type htmlCell struct {
	Text  string
	Align string
}

type htmlTable struct {
	CSS       template.CSS
	Class     string
	Names     []string
	Rows      [][]htmlCell
	Empty     bool
	Truncated bool
	Total     int
}

// HTML writes a frame as an HTML table. Text and boolean columns are left
// aligned, numbers and times right aligned.
func HTML(w io.Writer, f Frame, opts Options) error {
	n := f.NumRows()
	shown := opts.shown(n)

	data := htmlTable{
		CSS:       template.CSS(css),
		Class:     opts.CSSClass,
		Names:     f.Names,
		Rows:      make([][]htmlCell, shown),
		Empty:     n == 0,
		Truncated: shown < n,
		Total:     n,
	}
	if data.Class == "" {
		data.Class = "tab-table"
	}

	aligns := make([]string, len(f.Columns))
	for j, col := range f.Columns {
		switch col.Kind() {
		case column.String, column.Bool:
			aligns[j] = "left"
		default:
			aligns[j] = "right"
		}
	}
	for i := range shown {
		row := make([]htmlCell, len(f.Columns))
		for j, col := range f.Columns {
			row[j] = htmlCell{Text: column.FormatValue(col.At(i)), Align: aligns[j]}
		}
		data.Rows[i] = row
	}
	return htmlTemplate.Execute(w, data)
}
