package yahoo

import (
	"fmt"
	"net/url"
	"strings"
	"yfscrape/lib/browser"
	"yfscrape/lib/extract"
)

type PageKind int

const (
	PAGE_FINANCIALS PageKind = iota
	PAGE_BALANCE_SHEET
	PAGE_CASH_FLOW
	PAGE_PROFILE
	PAGE_STATISTICS
	PAGE_BENCHMARK
	PAGE_CURRENCY
	PAGE_SUMMARY
	PAGE_HOLDINGS
	PAGE_PERFORMANCE
	PAGE_RISK
	PAGE_SCREENER
)

var (
	stepDismissConsent = browser.Step{
		Name:     "dismiss consent",
		Selector: "button.reject-all",
		Optional: true,
	}
	stepExpandRows = browser.Step{
		Name:     "expand rows",
		Selector: "#Col1-1-Financials-Proxy > section > div:nth-of-type(2) > button",
	}
)

// page binds a page kind to the path it is served at and the steps that must
// run in a browser before its markup is complete.
type page struct {
	name  string
	path  func(ticker string) string
	steps []browser.Step
}

func subpage(section string) func(string) string {
	return func(ticker string) string {
		t := url.PathEscape(ticker)
		return fmt.Sprintf("/quote/%s/%s?p=%s", t, section, url.QueryEscape(ticker))
	}
}

// benchmarkSymbol turns "GSPC", "^GSPC" or "GSPC=X" into "GSPC".
func benchmarkSymbol(ticker string) string {
	symbol, _, _ := strings.Cut(ticker, "=")
	return strings.TrimPrefix(symbol, "^")
}

// currencySymbol turns "EURUSD=X" or "EURUSD" into "EURUSD".
func currencySymbol(ticker string) string {
	symbol, _, _ := strings.Cut(ticker, "=")
	return symbol
}

var pages = map[PageKind]page{
	PAGE_FINANCIALS: {
		name:  "financials",
		path:  subpage("financials"),
		steps: []browser.Step{stepDismissConsent, stepExpandRows},
	},
	PAGE_BALANCE_SHEET: {
		name:  "balance-sheet",
		path:  subpage("balance-sheet"),
		steps: []browser.Step{stepDismissConsent, stepExpandRows},
	},
	PAGE_CASH_FLOW: {
		name:  "cash-flow",
		path:  subpage("cash-flow"),
		steps: []browser.Step{stepDismissConsent, stepExpandRows},
	},
	PAGE_PROFILE: {
		name:  "profile",
		path:  subpage("profile"),
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_STATISTICS: {
		name:  "key-statistics",
		path:  subpage("key-statistics"),
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_BENCHMARK: {
		name: "benchmark",
		path: func(ticker string) string {
			symbol := url.PathEscape(benchmarkSymbol(ticker))
			return fmt.Sprintf("/quote/%%5E%s?p=%%5E%s", symbol, symbol)
		},
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_CURRENCY: {
		name: "currency",
		path: func(ticker string) string {
			symbol := url.PathEscape(currencySymbol(ticker))
			return fmt.Sprintf("/quote/%s%%3DX?p=%s%%3DX", symbol, symbol)
		},
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_SUMMARY: {
		name: "summary",
		path: func(ticker string) string {
			return fmt.Sprintf("/quote/%s?p=%s", url.PathEscape(ticker), url.QueryEscape(ticker))
		},
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_HOLDINGS: {
		name:  "holdings",
		path:  subpage("holdings"),
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_PERFORMANCE: {
		name:  "performance",
		path:  subpage("performance"),
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_RISK: {
		name:  "risk",
		path:  subpage("risk"),
		steps: []browser.Step{stepDismissConsent},
	},
	PAGE_SCREENER: {
		name: "screener",
		path: func(id string) string {
			return fmt.Sprintf("/screener/predefined/%s", url.PathEscape(id))
		},
		steps: []browser.Step{stepDismissConsent},
	},
}

func (k PageKind) String() string {
	p, ok := pages[k]
	if !ok {
		return fmt.Sprintf("PageKind(%d)", int(k))
	}
	return p.name
}

// Field maps of the layout-stable quote pages. The offsets index the leaf td
// cells of a leaf table, Label is the text expected in the cell right before.

type quoteLayout struct {
	price         string
	previousClose extract.Field
	dayRange      extract.Field
	yearRange     extract.Field
}

var benchmarkLayout = quoteLayout{
	price:         `fin-streamer[data-test="qsp-price"]`,
	previousClose: extract.Field{Name: "previous close", Table: 0, Cell: 1, Label: "Previous Close"},
	dayRange:      extract.Field{Name: "day range", Table: 1, Cell: 1, Label: "Day's Range"},
	yearRange:     extract.Field{Name: "52 week range", Table: 1, Cell: 3, Label: "52 Week Range"},
}

var currencyLayout = quoteLayout{
	price:         `fin-streamer[data-pricehint="4"]`,
	previousClose: benchmarkLayout.previousClose,
	dayRange:      benchmarkLayout.dayRange,
	yearRange:     benchmarkLayout.yearRange,
}

var summaryLayout = quoteLayout{
	price:         `fin-streamer[data-test="qsp-price"]`,
	previousClose: extract.Field{Name: "previous close", Table: 0, Cell: 1, Label: "Previous Close"},
	dayRange:      extract.Field{Name: "day range", Table: 0, Cell: 9, Label: "Day's Range"},
	yearRange:     extract.Field{Name: "52 week range", Table: 0, Cell: 11, Label: "52 Week Range"},
}

var (
	fieldNetAssets     = extract.Field{Name: "net assets", Table: 1, Cell: 1, Label: "Net Assets"}
	fieldNAV           = extract.Field{Name: "nav", Table: 1, Cell: 3, Label: "NAV"}
	fieldExpenseRatio  = extract.Field{Name: "expense ratio", Table: 1, Cell: 13, Label: "Expense Ratio"}
	fieldInceptionDate = extract.Field{Name: "inception date", Table: 1, Cell: 15, Label: "Inception Date"}
)
