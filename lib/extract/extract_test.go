package extract

import (
	"errors"
	"testing"
	"yfscrape/lib/numtext"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const summaryPage = `<html><body>
<div>
  <table>
    <tr><td>Previous Close</td><td>1,234.50</td></tr>
    <tr><td>Day&#39;s Range</td><td>1,200.00 - 1,250.00</td></tr>
  </table>
</div>
<table>
  <tr><td><table><tr><td>nested</td><td>1</td></tr></table></td></tr>
</table>
<section>
  <h3><span>Top 3 Holdings</span></h3>
  <div><span class="Fl(start) Pend(10px)">Apple Inc</span><span class="Fl(end)">7.01%</span></div>
  <div><span class="Fl(start)">Microsoft Corp</span><span class="Fl(end)">6.12%</span></div>
  <div><span class="Fl(start)"></span><span class="Fl(end)"></span></div>
</section>
<section>
  <h3>Broken</h3>
  <span class="Fl(start)">A</span><span class="Fl(start)">B</span><span class="Fl(end)">1</span>
</section>
</body></html>`

func parse(t *testing.T) *Document {
	doc, err := ParseBytes("summary", []byte(summaryPage))
	require.NoError(t, err)
	return doc
}

func TestLeafTables(t *testing.T) {
	doc := parse(t)
	require.Equal(t, 2, doc.Leaves("table").Length())

	cells, err := doc.TableCells(0)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(
		[]string{"Previous Close", "1,234.50", "Day's Range", "1,200.00 - 1,250.00"},
		cells,
	))

	cells, err = doc.TableCells(1)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]string{"nested", "1"}, cells))

	_, err = doc.TableCells(2)
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestField(t *testing.T) {
	doc := parse(t)

	cases := []struct {
		name     string
		field    Field
		expected string
		mismatch bool
	}{
		{
			name:     "labelled",
			field:    Field{Name: "day range", Table: 0, Cell: 3, Label: "Day's Range"},
			expected: "1,200.00 - 1,250.00",
		},
		{
			name:     "unlabelled",
			field:    Field{Name: "previous close", Table: 0, Cell: 1},
			expected: "1,234.50",
		},
		{
			name:     "wrong label",
			field:    Field{Name: "day range", Table: 0, Cell: 1, Label: "Day's Range"},
			mismatch: true,
		},
		{
			name:     "offset out of range",
			field:    Field{Name: "net assets", Table: 0, Cell: 9},
			mismatch: true,
		},
		{
			name:     "table out of range",
			field:    Field{Name: "nav", Table: 5, Cell: 1},
			mismatch: true,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			value, err := doc.Field(test.field)
			if test.mismatch {
				require.ErrorIs(t, err, ErrLayoutMismatch)
				var mismatch *LayoutMismatchError
				require.True(t, errors.As(err, &mismatch))
				require.Equal(t, "summary", mismatch.Page)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, value)
		})
	}
}

func TestFindLabel(t *testing.T) {
	labels := []string{"Total Revenue", "Cost of Revenue", "Gross Profit"}

	i, err := FindLabel("line item", labels, "gross  profit")
	require.NoError(t, err)
	require.Equal(t, 2, i)

	_, err = FindLabel("line item", labels, "Total Revenu")
	require.ErrorIs(t, err, ErrLabelNotFound)
	var notFound *LabelNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "Total Revenue", notFound.Suggestion)

	_, err = FindLabel("line item", labels, "Shares Outstanding")
	require.ErrorIs(t, err, ErrLabelNotFound)
	require.True(t, errors.As(err, &notFound))
	require.Empty(t, notFound.Suggestion)
}

func TestSectionPairs(t *testing.T) {
	doc := parse(t)

	section, err := doc.Section("Top 3 Holdings")
	require.NoError(t, err)
	pairs, err := doc.Pairs("top holdings", section)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]Pair{
		{Label: "Apple Inc", Value: "7.01%"},
		{Label: "Microsoft Corp", Value: "6.12%"},
	}, pairs))

	section, err = doc.Section("Broken")
	require.NoError(t, err)
	_, err = doc.Pairs("broken", section)
	require.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = doc.Section("Sector Weightings")
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestGroup(t *testing.T) {
	doc := parse(t)

	rows, err := doc.Group("risk", []string{"a", "1", "2", "b", "3", "4"}, 3)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][]string{{"a", "1", "2"}, {"b", "3", "4"}}, rows))

	_, err = doc.Group("risk", []string{"a", "1"}, 3)
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestNoDataError(t *testing.T) {
	err := &NoDataError{Label: "Total Assets", Slice: "TTM", Reason: "No TTM info for the balance-sheet"}
	require.ErrorIs(t, err, numtext.ErrNoData)
	require.Equal(t, "No TTM info for the balance-sheet", err.Error())
}

func TestTextsJoinLineBrokenWords(t *testing.T) {
	doc, err := ParseBytes("statistics", []byte("<table><tr><td><span>Profit\nMargin</span></td><td>19.89%</td></tr></table>"))
	require.NoError(t, err)
	require.Equal(t, []string{"Profit Margin", "19.89%"}, Texts(doc.Find("td")))
}
