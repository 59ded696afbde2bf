package yahoo

import (
	"errors"
	"time"
	"yfscrape/lib/extract"
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/numtext"
)

// parseValue turns the text of a field into a number, sentinels become a
// NoDataError and anything else unparseable a layout mismatch.
func parseValue(doc *extract.Document, field, text string, parse func(string) (float64, error)) (float64, error) {
	value, err := parse(text)
	if errors.Is(err, numtext.ErrNoData) {
		return 0, &extract.NoDataError{Label: field, Slice: doc.Page}
	}
	if err != nil {
		return 0, &extract.LayoutMismatchError{Page: doc.Page, Field: field, Reason: err.Error()}
	}
	return value, nil
}

func currentPrice(doc *extract.Document, selector string) (float64, error) {
	prices := doc.Leaves(selector)
	if prices.Length() == 0 {
		return 0, &extract.LayoutMismatchError{Page: doc.Page, Field: "current price", Reason: "no price element"}
	}
	return parseValue(doc, "current price", htmlutil.Clean(prices.First().Text()), numtext.ParseNumber)
}

// Quote reads the summary of a benchmark index, a currency pair or a fund.
type Quote struct {
	doc    *extract.Document
	layout quoteLayout
}

func NewBenchmarkQuote(doc *extract.Document) *Quote {
	return &Quote{doc: doc, layout: benchmarkLayout}
}

func NewCurrencyQuote(doc *extract.Document) *Quote {
	return &Quote{doc: doc, layout: currencyLayout}
}

func (q *Quote) CurrentPrice() (float64, error) {
	return currentPrice(q.doc, q.layout.price)
}

func (q *Quote) PreviousClose() (float64, error) {
	text, err := q.doc.Field(q.layout.previousClose)
	if err != nil {
		return 0, err
	}
	return parseValue(q.doc, q.layout.previousClose.Name, text, numtext.ParseNumber)
}

func (q *Quote) rangeText(f extract.Field) (string, error) {
	text, err := q.doc.Field(f)
	if err != nil {
		return "", err
	}
	return numtext.StripSeparators(text), nil
}

func (q *Quote) rangeValues(f extract.Field) (numtext.Range, error) {
	text, err := q.doc.Field(f)
	if err != nil {
		return numtext.Range{}, err
	}
	r, err := numtext.ParseRange(text)
	if errors.Is(err, numtext.ErrNoData) {
		return numtext.Range{}, &extract.NoDataError{Label: f.Name, Slice: q.doc.Page}
	}
	if err != nil {
		return numtext.Range{}, &extract.LayoutMismatchError{Page: q.doc.Page, Field: f.Name, Reason: err.Error()}
	}
	return r, nil
}

// DayRange returns the day's range as "low - high" without thousands separators.
func (q *Quote) DayRange() (string, error) {
	return q.rangeText(q.layout.dayRange)
}

// Last52WeekRange returns the 52 week range as "low - high" without thousands separators.
func (q *Quote) Last52WeekRange() (string, error) {
	return q.rangeText(q.layout.yearRange)
}

func (q *Quote) DayRangeValues() (numtext.Range, error) {
	return q.rangeValues(q.layout.dayRange)
}

func (q *Quote) Last52WeekRangeValues() (numtext.Range, error) {
	return q.rangeValues(q.layout.yearRange)
}

// ETFSummary is the quote page of a fund, its text accessors keep unit
// markers like "B" or "%" and the ...Value accessors parse them.
type ETFSummary struct {
	Quote
}

func NewETFSummary(doc *extract.Document) *ETFSummary {
	return &ETFSummary{Quote: Quote{doc: doc, layout: summaryLayout}}
}

func (e *ETFSummary) NetAssets() (string, error) {
	return e.doc.Field(fieldNetAssets)
}

func (e *ETFSummary) NAV() (string, error) {
	return e.doc.Field(fieldNAV)
}

func (e *ETFSummary) ExpenseRatio() (string, error) {
	return e.doc.Field(fieldExpenseRatio)
}

func (e *ETFSummary) InceptionDate() (string, error) {
	return e.doc.Field(fieldInceptionDate)
}

func (e *ETFSummary) value(f extract.Field, parse func(string) (float64, error)) (float64, error) {
	text, err := e.doc.Field(f)
	if err != nil {
		return 0, err
	}
	return parseValue(e.doc, f.Name, text, parse)
}

func (e *ETFSummary) NetAssetsValue() (float64, error) {
	return e.value(fieldNetAssets, numtext.ParseAbbreviated)
}

func (e *ETFSummary) NAVValue() (float64, error) {
	return e.value(fieldNAV, numtext.ParseNumber)
}

func (e *ETFSummary) ExpenseRatioValue() (float64, error) {
	return e.value(fieldExpenseRatio, numtext.ParsePercent)
}

func (e *ETFSummary) InceptionTime() (time.Time, error) {
	text, err := e.InceptionDate()
	if err != nil {
		return time.Time{}, err
	}
	if numtext.IsSentinel(text) {
		return time.Time{}, &extract.NoDataError{Label: fieldInceptionDate.Name, Slice: e.doc.Page}
	}
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return time.Time{}, &extract.LayoutMismatchError{Page: e.doc.Page, Field: fieldInceptionDate.Name, Reason: err.Error()}
	}
	return t, nil
}
