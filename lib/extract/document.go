// Package extract locates fragments of a parsed page by position and label.
//
// Every positional lookup fails with ErrLayoutMismatch instead of returning a
// neighbouring value when the page no longer looks the way the lookup expects.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Document is a read-only snapshot of one fetched page.
type Document struct {
	Page string
	doc  *goquery.Document
}

func Parse(page string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return &Document{Page: page, doc: doc}, nil
}

func ParseBytes(page string, body []byte) (*Document, error) {
	return Parse(page, bytes.NewReader(body))
}

func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Leaves keeps only the nodes of sel that contain no descendant matching
// selector, so nested tables or spans are not counted twice.
func Leaves(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(selector).Length() == 0
	})
}

func (d *Document) Leaves(selector string) *goquery.Selection {
	return Leaves(d.doc.Find(selector), selector)
}

// Texts returns the cleaned text of every node in sel.
func Texts(sel *goquery.Selection) []string {
	out := make([]string, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		out[i] = htmlutil.Clean(htmlutil.GetText(s.Get(0)))
	})
	return out
}

func (d *Document) Table(index int) (*goquery.Selection, error) {
	tables := d.Leaves("table")
	if index < 0 || index >= tables.Length() {
		return nil, layoutMismatch(
			d.Page, fmt.Sprintf("table[%d]", index),
			"document has %d tables", tables.Length(),
		)
	}
	return tables.Eq(index), nil
}

// TableCells returns the text of the leaf td cells of the index-th leaf table.
func (d *Document) TableCells(index int) ([]string, error) {
	table, err := d.Table(index)
	if err != nil {
		return nil, err
	}
	return Texts(Leaves(table.Find("td"), "td")), nil
}

// Field names one value cell in a layout-stable table. When Label is set the
// cell right before Cell must start with it.
type Field struct {
	Name  string
	Table int
	Cell  int
	Label string
}

func (d *Document) Field(f Field) (string, error) {
	cells, err := d.TableCells(f.Table)
	if err != nil {
		return "", err
	}
	if f.Cell < 0 || f.Cell >= len(cells) {
		return "", layoutMismatch(
			d.Page, f.Name,
			"cell %d requested but table %d has %d cells", f.Cell, f.Table, len(cells),
		)
	}
	if f.Label != "" {
		if f.Cell == 0 {
			return "", layoutMismatch(d.Page, f.Name, "labelled field at cell 0")
		}
		found := cells[f.Cell-1]
		if !textutil.HasPrefixName(found, f.Label) {
			return "", layoutMismatch(
				d.Page, f.Name,
				"expected label %q before cell %d, found %q", f.Label, f.Cell, found,
			)
		}
	}
	return cells[f.Cell], nil
}
