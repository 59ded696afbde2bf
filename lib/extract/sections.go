package extract

import (
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	startSpan = `span[class~="Fl(start)"]`
	endSpan   = `span[class~="Fl(end)"]`
)

// Section returns the container of the first heading whose text starts with
// heading. The container is the enclosing <section>, or the heading's parent.
func (d *Document) Section(heading string) (*goquery.Selection, error) {
	var found *goquery.Selection
	d.Leaves("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if textutil.HasPrefixName(htmlutil.TextWithout(h, "sup"), heading) {
			found = h
			return false
		}
		return true
	})
	if found == nil {
		return nil, layoutMismatch(d.Page, heading, "no section heading")
	}

	container := found.Closest("section")
	if container.Length() == 0 {
		container = found.Parent()
	}
	return container, nil
}

type Pair struct {
	Label string
	Value string
}

func nonEmpty(texts []string) []string {
	out := texts[:0]
	for _, t := range texts {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Pairs zips the label spans (Fl(start)) of a section with its value spans
// (Fl(end)). Empty spans, like the ones drawing bar charts, are skipped.
func (d *Document) Pairs(name string, section *goquery.Selection) ([]Pair, error) {
	labels := nonEmpty(Texts(Leaves(section.Find(startSpan), startSpan)))
	values := nonEmpty(Texts(Leaves(section.Find(endSpan), endSpan)))
	if len(labels) != len(values) {
		return nil, layoutMismatch(d.Page, name, "%d labels but %d values", len(labels), len(values))
	}

	pairs := make([]Pair, len(labels))
	for i := range labels {
		pairs[i] = Pair{Label: labels[i], Value: values[i]}
	}
	return pairs, nil
}

// StartTexts returns the non-empty Fl(start) span texts of a section.
func StartTexts(section *goquery.Selection) []string {
	return nonEmpty(Texts(Leaves(section.Find(startSpan), startSpan)))
}

// Group splits cells into rows of width cells.
func (d *Document) Group(name string, cells []string, width int) ([][]string, error) {
	if width <= 0 || len(cells)%width != 0 {
		return nil, layoutMismatch(d.Page, name, "%d cells do not form rows of %d", len(cells), width)
	}
	rows := make([][]string, 0, len(cells)/width)
	for i := 0; i < len(cells); i += width {
		rows = append(rows, cells[i:i+width])
	}
	return rows, nil
}
