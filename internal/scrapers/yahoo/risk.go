package yahoo

import (
	"yfscrape/lib/extract"
	"yfscrape/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const sectionRisk = "Risk Statistics"

const riskCell = `div[class~="Fl(start)"]`

type RiskRow struct {
	Name      string
	ThreeYear string
	FiveYear  string
	TenYear   string
}

// Risk reads the risk statistics of a fund. Each statistic is rendered as
// four Fl(start) divs: the name, then the 3, 5 and 10 year values.
type Risk struct {
	rows []RiskRow
}

func NewRisk(doc *extract.Document) (*Risk, error) {
	section, err := doc.Section(sectionRisk)
	if err != nil {
		return nil, err
	}

	var cells []string
	extract.Leaves(section.Find(riskCell), riskCell).Each(func(_ int, div *goquery.Selection) {
		span := div.Find("span")
		if span.Length() == 0 {
			return
		}
		cells = append(cells, htmlutil.Clean(span.First().Text()))
	})

	groups, err := doc.Group(sectionRisk, cells, 4)
	if err != nil {
		return nil, err
	}
	r := &Risk{rows: make([]RiskRow, len(groups))}
	for i, g := range groups {
		r.rows[i] = RiskRow{Name: g[0], ThreeYear: g[1], FiveYear: g[2], TenYear: g[3]}
	}
	return r, nil
}

func (r *Risk) Statistics() []string {
	names := make([]string, len(r.rows))
	for i, row := range r.rows {
		names[i] = row.Name
	}
	return names
}

func (r *Risk) Statistic(name string) (RiskRow, error) {
	i, err := extract.FindLabel("risk statistic", r.Statistics(), name)
	if err != nil {
		return RiskRow{}, err
	}
	return r.rows[i], nil
}

func (r *Risk) Rows() []RiskRow {
	return r.rows
}
