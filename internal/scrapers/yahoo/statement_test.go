package yahoo

import (
	"errors"
	"testing"
	"yfscrape/lib/extract"
	"yfscrape/lib/numtext"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBalanceSheet(t *testing.T) {
	s, err := NewStatement(loadPage(t, "balance_sheet"), SHEET_BALANCE_SHEET)
	require.NoError(t, err)

	expectedItems := []string{
		"Total Assets",
		"Total Liabilities Net Minority Interest",
		"Current Liabilities",
		"Total Capitalization",
		"Common Stock Equity",
		"Net Debt",
	}
	if diff := cmp.Diff(expectedItems, s.LineItems()); diff != "" {
		t.Fatalf("line items (-want +got):\n%s", diff)
	}

	value, err := s.Value("Total Capitalization", PERIOD_YEAR_1)
	require.NoError(t, err)
	require.Equal(t, 219779000.0, value)

	values, err := s.Values("Total Capitalization", PERIOD_YEAR_1, PERIOD_YEAR_2, PERIOD_YEAR_3, PERIOD_YEAR_4)
	require.NoError(t, err)
	require.Equal(t, []float64{219779000, 216220000, 214810000, 300052000}, values)

	value, err = s.Value("net debt", PERIOD_YEAR_2)
	require.NoError(t, err)
	require.Equal(t, 152001000.0, value)
}

func TestBalanceSheetNoData(t *testing.T) {
	s, err := NewStatement(loadPage(t, "balance_sheet"), SHEET_BALANCE_SHEET)
	require.NoError(t, err)

	_, err = s.Value("Total Capitalization", PERIOD_TTM)
	require.ErrorIs(t, err, numtext.ErrNoData)
	require.EqualError(t, err, "No TTM info for the balance-sheet")

	var noData *extract.NoDataError
	require.True(t, errors.As(err, &noData))
	require.Equal(t, "Total Capitalization", noData.Label)

	_, err = s.Value("Net Debt", PERIOD_YEAR_1)
	require.ErrorIs(t, err, numtext.ErrNoData)

	for _, period := range SHEET_BALANCE_SHEET.Periods() {
		_, err = s.Value("Current Liabilities", period)
		require.ErrorIs(t, err, numtext.ErrNoData, "period %s", period)
	}
}

func TestStatementLabelNotFound(t *testing.T) {
	s, err := NewStatement(loadPage(t, "balance_sheet"), SHEET_BALANCE_SHEET)
	require.NoError(t, err)

	_, err = s.Value("Total Capitalisation", PERIOD_YEAR_1)
	require.ErrorIs(t, err, extract.ErrLabelNotFound)

	var notFound *extract.LabelNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "Total Capitalization", notFound.Suggestion)
}

func TestIncomeStatement(t *testing.T) {
	s, err := NewStatement(loadPage(t, "financials"), SHEET_INCOME_STATEMENT)
	require.NoError(t, err)

	value, err := s.Value("Total Revenue", PERIOD_TTM)
	require.NoError(t, err)
	require.Equal(t, 26788000.0, value)

	value, err = s.Value("Basic EPS", PERIOD_YEAR_3)
	require.NoError(t, err)
	require.Equal(t, -0.32, value)

	_, err = s.Value("Basic EPS", PERIOD_TTM)
	require.ErrorIs(t, err, numtext.ErrNoData)

	item, err := s.Lookup("net income common stockholders")
	require.NoError(t, err)
	require.Equal(t, []string{"1,908,000", "1,825,000", "5,641,000", "-258,000", "3,248,000"}, item.Cells)
}

func TestCashFlow(t *testing.T) {
	s, err := NewStatement(loadPage(t, "cash_flow"), SHEET_CASH_FLOW)
	require.NoError(t, err)

	values, err := s.Values("Investing Cash Flow", SHEET_CASH_FLOW.Periods()...)
	require.NoError(t, err)
	require.Equal(t, []float64{-7320000, -9012000, -10118000, -6863000, -6976000}, values)
}

func TestStatementFlatRows(t *testing.T) {
	doc := parsePage(t, "balance-sheet", `<html><body>
<div data-test="fin-row"><span>Total Capitalization219,779,000216,220,000214,810,000300,052,000</span></div>
<div data-test="fin-row"><span>Net Debt152,001,000148,316,000233,514,000-</span></div>
</body></html>`)

	s, err := NewStatement(doc, SHEET_BALANCE_SHEET)
	require.NoError(t, err)
	require.Equal(t, []string{"Total Capitalization", "Net Debt"}, s.LineItems())

	value, err := s.Value("Total Capitalization", PERIOD_YEAR_4)
	require.NoError(t, err)
	require.Equal(t, 300052000.0, value)

	value, err = s.Value("Net Debt", PERIOD_YEAR_1)
	require.NoError(t, err)
	require.Equal(t, 152001000.0, value)

	_, err = s.Value("Net Debt", PERIOD_YEAR_4)
	require.ErrorIs(t, err, numtext.ErrNoData)
}

func TestStatementLayoutMismatch(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
	}{
		{
			name: "missing column",
			markup: `<div data-test="fin-row"><div><span>Total Assets</span>` +
				`<div data-test="fin-col">1,484,955,000</div>` +
				`<div data-test="fin-col">1,464,449,000</div>` +
				`<div data-test="fin-col">1,461,952,000</div></div></div>`,
		},
		{
			name:   "no rows",
			markup: `<div><span>Breakdown</span></div>`,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			doc := parsePage(t, "balance-sheet", "<html><body>"+test.markup+"</body></html>")
			_, err := NewStatement(doc, SHEET_BALANCE_SHEET)
			require.ErrorIs(t, err, extract.ErrLayoutMismatch)
		})
	}
}

func TestParseSheetAndPeriod(t *testing.T) {
	sheet, err := ParseSheet("income-statement")
	require.NoError(t, err)
	require.Equal(t, SHEET_INCOME_STATEMENT, sheet)

	sheet, err = ParseSheet("balance-sheet")
	require.NoError(t, err)
	require.Equal(t, PAGE_BALANCE_SHEET, sheet.page())
	require.Len(t, sheet.Periods(), 4)

	_, err = ParseSheet("ledger")
	require.Error(t, err)

	period, err := ParsePeriod("year_3")
	require.NoError(t, err)
	require.Equal(t, PERIOD_YEAR_3, period)

	_, err = ParsePeriod("year_5")
	require.Error(t, err)
}
