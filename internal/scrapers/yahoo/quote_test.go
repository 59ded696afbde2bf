package yahoo

import (
	"strconv"
	"strings"
	"testing"
	"time"
	"yfscrape/lib/extract"
	"yfscrape/lib/numtext"

	"github.com/stretchr/testify/require"
)

func TestBenchmarkQuote(t *testing.T) {
	q := NewBenchmarkQuote(loadPage(t, "benchmark"))

	price, err := q.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 4369.71, price)

	previous, err := q.PreviousClose()
	require.NoError(t, err)
	require.Equal(t, 4376.86, previous)

	dayRange, err := q.DayRange()
	require.NoError(t, err)
	require.Equal(t, "4350.63 - 4393.35", dayRange)

	yearRange, err := q.Last52WeekRange()
	require.NoError(t, err)
	require.Equal(t, "3491.58 - 4607.07", yearRange)

	// the text form splits on the dash into two parseable bounds
	low, high, ok := strings.Cut(yearRange, "-")
	require.True(t, ok)
	lowValue, err := strconv.ParseFloat(strings.TrimSpace(low), 64)
	require.NoError(t, err)
	highValue, err := strconv.ParseFloat(strings.TrimSpace(high), 64)
	require.NoError(t, err)
	require.Less(t, lowValue, highValue)

	values, err := q.Last52WeekRangeValues()
	require.NoError(t, err)
	require.Equal(t, numtext.Range{Low: 3491.58, High: 4607.07}, values)
}

func TestCurrencyQuote(t *testing.T) {
	q := NewCurrencyQuote(loadPage(t, "currency"))

	price, err := q.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 1.0842, price)

	previous, err := q.PreviousClose()
	require.NoError(t, err)
	require.Equal(t, 1.0863, previous)

	dayRange, err := q.DayRangeValues()
	require.NoError(t, err)
	require.Equal(t, numtext.Range{Low: 1.0825, High: 1.0871}, dayRange)

	yearRange, err := q.Last52WeekRange()
	require.NoError(t, err)
	require.Equal(t, "1.0481 - 1.1275", yearRange)
}

func TestETFSummary(t *testing.T) {
	e := NewETFSummary(loadPage(t, "etf_summary"))

	price, err := e.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 83.46, price)

	previous, err := e.PreviousClose()
	require.NoError(t, err)
	require.Equal(t, 83.04, previous)

	dayRange, err := e.DayRange()
	require.NoError(t, err)
	require.Equal(t, "82.81 - 83.64", dayRange)

	yearRange, err := e.Last52WeekRange()
	require.NoError(t, err)
	require.Equal(t, "65.62 - 88.11", yearRange)

	texts := []struct {
		get      func() (string, error)
		expected string
	}{
		{get: e.NetAssets, expected: "161.16M"},
		{get: e.NAV, expected: "83.08"},
		{get: e.ExpenseRatio, expected: "0.35%"},
		{get: e.InceptionDate, expected: "2011-01-26"},
	}
	for _, test := range texts {
		value, err := test.get()
		require.NoError(t, err)
		require.Equal(t, test.expected, value)
	}

	netAssets, err := e.NetAssetsValue()
	require.NoError(t, err)
	require.InDelta(t, 161.16e6, netAssets, 1e-3)

	nav, err := e.NAVValue()
	require.NoError(t, err)
	require.Equal(t, 83.08, nav)

	expenseRatio, err := e.ExpenseRatioValue()
	require.NoError(t, err)
	require.Equal(t, 0.35, expenseRatio)

	inception, err := e.InceptionTime()
	require.NoError(t, err)
	require.Equal(t, time.Date(2011, time.January, 26, 0, 0, 0, 0, time.UTC), inception)
}

func TestQuoteLayoutMismatch(t *testing.T) {
	// a fund page read with the benchmark layout finds "Net Assets" where
	// the day's range label should be
	q := NewBenchmarkQuote(loadPage(t, "etf_summary"))
	_, err := q.DayRange()
	require.ErrorIs(t, err, extract.ErrLayoutMismatch)

	_, err = NewETFSummary(loadPage(t, "benchmark")).NetAssets()
	require.ErrorIs(t, err, extract.ErrLayoutMismatch)

	_, err = NewCurrencyQuote(loadPage(t, "profile")).CurrentPrice()
	require.ErrorIs(t, err, extract.ErrLayoutMismatch)
}

func TestQuoteNoData(t *testing.T) {
	doc := parsePage(t, "benchmark", `<html><body>
<fin-streamer data-test="qsp-price">--</fin-streamer>
<table><tr><td>Previous Close</td><td>N/A</td></tr></table>
<table><tr><td>Day's Range</td><td>- - -</td></tr><tr><td>52 Week Range</td><td>3,491.58 - 4,607.07</td></tr></table>
</body></html>`)
	q := NewBenchmarkQuote(doc)

	_, err := q.CurrentPrice()
	require.ErrorIs(t, err, numtext.ErrNoData)

	_, err = q.PreviousClose()
	require.ErrorIs(t, err, numtext.ErrNoData)

	_, err = q.DayRangeValues()
	require.ErrorIs(t, err, numtext.ErrNoData)
}

func TestProfile(t *testing.T) {
	p := NewProfile(loadPage(t, "profile"))

	name, err := p.Name()
	require.NoError(t, err)
	require.Equal(t, "Société Générale Société anonyme (GLE.PA)", name)

	price, err := p.CurrentPrice()
	require.NoError(t, err)
	require.Equal(t, 24.87, price)

	sector, err := p.Sector()
	require.NoError(t, err)
	require.Equal(t, "Financial Services", sector)

	industry, err := p.Industry()
	require.NoError(t, err)
	require.Equal(t, "Banks—Regional", industry)

	employees, err := p.FullTimeEmployees()
	require.NoError(t, err)
	require.Equal(t, 117576, employees)

	_, err = NewProfile(loadPage(t, "benchmark")).Sector()
	require.ErrorIs(t, err, extract.ErrLayoutMismatch)
}
