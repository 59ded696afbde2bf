package yahoo

import (
	"errors"
	"fmt"
	"yfscrape/lib/extract"
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/numtext"

	"github.com/PuerkitoBio/goquery"
)

type Sheet string

const (
	SHEET_INCOME_STATEMENT Sheet = "financials"
	SHEET_BALANCE_SHEET    Sheet = "balance-sheet"
	SHEET_CASH_FLOW        Sheet = "cash-flow"
)

// ParseSheet accepts the page names of the statements, plus "income-statement"
// as an alias of "financials".
func ParseSheet(s string) (Sheet, error) {
	switch s {
	case "financials", "income-statement":
		return SHEET_INCOME_STATEMENT, nil
	case "balance-sheet":
		return SHEET_BALANCE_SHEET, nil
	case "cash-flow":
		return SHEET_CASH_FLOW, nil
	}
	return "", fmt.Errorf("unknown sheet %q, expected one of financials, income-statement, balance-sheet, cash-flow", s)
}

func (s Sheet) page() PageKind {
	switch s {
	case SHEET_BALANCE_SHEET:
		return PAGE_BALANCE_SHEET
	case SHEET_CASH_FLOW:
		return PAGE_CASH_FLOW
	default:
		return PAGE_FINANCIALS
	}
}

// Periods returns the columns of the sheet, most recent first. The balance
// sheet has no trailing twelve months column.
func (s Sheet) Periods() []Period {
	if s == SHEET_BALANCE_SHEET {
		return []Period{PERIOD_YEAR_1, PERIOD_YEAR_2, PERIOD_YEAR_3, PERIOD_YEAR_4}
	}
	return []Period{PERIOD_TTM, PERIOD_YEAR_1, PERIOD_YEAR_2, PERIOD_YEAR_3, PERIOD_YEAR_4}
}

type Period string

const (
	PERIOD_TTM    Period = "TTM"
	PERIOD_YEAR_1 Period = "year_1"
	PERIOD_YEAR_2 Period = "year_2"
	PERIOD_YEAR_3 Period = "year_3"
	PERIOD_YEAR_4 Period = "year_4"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PERIOD_TTM, PERIOD_YEAR_1, PERIOD_YEAR_2, PERIOD_YEAR_3, PERIOD_YEAR_4:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q, expected one of TTM, year_1, year_2, year_3, year_4", s)
}

// LineItem is one row of a statement, Cells holds the raw text of every
// period column in the order of Sheet.Periods.
type LineItem struct {
	Label string
	Cells []string
}

type Statement struct {
	Sheet Sheet
	items []LineItem
}

const (
	finRow = `div[data-test="fin-row"]`
	finCol = `div[data-test="fin-col"]`
)

// NewStatement reads every fin-row of a statement page. The label of a row is
// taken from its tokenized text, the values from its fin-col cells, or from
// the tokenized text when the cells are missing.
func NewStatement(doc *extract.Document, sheet Sheet) (*Statement, error) {
	columns := len(sheet.Periods())
	s := &Statement{Sheet: sheet}

	var err error
	doc.Find(finRow).EachWithBreak(func(i int, row *goquery.Selection) bool {
		var item LineItem
		item, err = lineItem(doc, row, columns)
		if err != nil {
			return false
		}
		s.items = append(s.items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(s.items) == 0 {
		return nil, &extract.LayoutMismatchError{Page: doc.Page, Field: "fin-row", Reason: "no statement rows"}
	}
	return s, nil
}

func lineItem(doc *extract.Document, row *goquery.Selection, columns int) (LineItem, error) {
	// an expanded row wraps its own cells in its first child and nests the
	// rows of its children after it
	line := row
	row.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if child.Find(finCol).Length() > 0 {
			line = child
			return false
		}
		return true
	})

	text := htmlutil.Clean(line.Text())
	tokens, err := numtext.Tokenize(text)
	if err != nil {
		return LineItem{}, &extract.LayoutMismatchError{Page: doc.Page, Field: "fin-row", Reason: err.Error()}
	}

	cells := extract.Texts(extract.Leaves(line.Find(finCol), finCol))
	if len(cells) == 0 {
		cells = tokens.Tokens()[1:]
	}
	if len(cells) != columns {
		return LineItem{}, &extract.LayoutMismatchError{
			Page:   doc.Page,
			Field:  tokens.Label,
			Reason: fmt.Sprintf("expected %d period columns, found %d", columns, len(cells)),
		}
	}
	return LineItem{Label: tokens.Label, Cells: cells}, nil
}

// LineItems returns the labels of every row in document order.
func (s *Statement) LineItems() []string {
	labels := make([]string, len(s.items))
	for i, item := range s.items {
		labels[i] = item.Label
	}
	return labels
}

// Items returns every row in document order.
func (s *Statement) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Statement) Lookup(label string) (LineItem, error) {
	i, err := extract.FindLabel("line item", s.LineItems(), label)
	if err != nil {
		return LineItem{}, err
	}
	return s.items[i], nil
}

func (s *Statement) column(period Period) (int, error) {
	for i, p := range s.Sheet.Periods() {
		if p == period {
			return i, nil
		}
	}
	if period == PERIOD_TTM {
		return -1, &extract.NoDataError{
			Slice:  string(period),
			Reason: "No TTM info for the balance-sheet",
		}
	}
	return -1, fmt.Errorf("unknown period %q", period)
}

// Value returns the value of a line item for one period.
func (s *Statement) Value(label string, period Period) (float64, error) {
	item, err := s.Lookup(label)
	if err != nil {
		return 0, err
	}
	col, err := s.column(period)
	if err != nil {
		var noData *extract.NoDataError
		if errors.As(err, &noData) {
			noData.Label = item.Label
		}
		return 0, err
	}

	value, err := numtext.ParseNumber(item.Cells[col])
	if errors.Is(err, numtext.ErrNoData) {
		return 0, &extract.NoDataError{Label: item.Label, Slice: string(period)}
	}
	if err != nil {
		return 0, &extract.LayoutMismatchError{Page: string(s.Sheet), Field: item.Label, Reason: err.Error()}
	}
	return value, nil
}

// Values returns the values of a line item for every period, in order.
func (s *Statement) Values(label string, periods ...Period) ([]float64, error) {
	out := make([]float64, len(periods))
	for i, p := range periods {
		v, err := s.Value(label, p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
