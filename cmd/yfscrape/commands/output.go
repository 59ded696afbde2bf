package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"yfscrape/lib/extract"
	"yfscrape/lib/numtext"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FORMAT_TABLE    = "table"
	FORMAT_CSV      = "csv"
	FORMAT_MARKDOWN = "markdown"
	FORMAT_JSON     = "json"
)

// missing is printed in place of values the page does not have.
const missing = "N/A"

type output struct {
	format string
	w      io.Writer
}

func newOutput(w io.Writer, format string) (output, error) {
	switch format {
	case FORMAT_TABLE, FORMAT_CSV, FORMAT_MARKDOWN, FORMAT_JSON:
		return output{format: format, w: w}, nil
	}
	return output{}, fmt.Errorf("unknown format %q, expected one of table, csv, markdown, json", format)
}

func (o output) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(o.w)
	if title != "" && o.format == FORMAT_TABLE {
		t.SetTitle(title)
	}
	return t
}

// render prints one table. JSON output is an array of objects keyed by the
// header.
func (o output) render(title string, header table.Row, rows []table.Row) error {
	if o.format == FORMAT_JSON {
		objects := make([]map[string]any, len(rows))
		for i, row := range rows {
			obj := make(map[string]any, len(header))
			for j, name := range header {
				if j < len(row) {
					obj[fmt.Sprint(name)] = row[j]
				}
			}
			objects[i] = obj
		}
		encoder := json.NewEncoder(o.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(objects)
	}

	t := o.newTable(title)
	t.AppendHeader(header)
	t.AppendRows(rows)
	switch o.format {
	case FORMAT_CSV:
		t.RenderCSV()
	case FORMAT_MARKDOWN:
		t.RenderMarkdown()
	default:
		t.Render()
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fields collects label/value rows. Missing data becomes N/A, any other error
// is kept and stops collection.
type fields struct {
	rows []table.Row
	err  error
}

func (f *fields) add(label string, value string, err error) {
	if f.err != nil {
		return
	}
	if errors.Is(err, numtext.ErrNoData) {
		value = missing
	} else if err != nil {
		f.err = fmt.Errorf("%s: %w", label, err)
		return
	}
	f.rows = append(f.rows, table.Row{label, value})
}

func (f *fields) number(label string, value float64, err error) {
	f.add(label, formatNumber(value), err)
}

func (f *fields) render(o output, title string) error {
	if f.err != nil {
		return f.err
	}
	return o.render(title, table.Row{"Field", "Value"}, f.rows)
}

// pairRows turns extracted label/value pairs into rows prefixed by section.
func pairRows(section string, pairs []extract.Pair) []table.Row {
	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		rows[i] = table.Row{section, p.Label, p.Value}
	}
	return rows
}
