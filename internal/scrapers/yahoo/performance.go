package yahoo

import (
	"yfscrape/lib/extract"
)

const (
	sectionOverview    = "Performance Overview"
	sectionTrailing    = "Trailing Returns"
	sectionAnnualTotal = "Annual Total Return"
)

// ReturnRow is one period of a fund's returns next to its benchmark's.
type ReturnRow struct {
	Label     string
	Fund      string
	Benchmark string
}

type Performance struct {
	doc *extract.Document
}

func NewPerformance(doc *extract.Document) *Performance {
	return &Performance{doc: doc}
}

func (p *Performance) Overview() ([]extract.Pair, error) {
	section, err := p.doc.Section(sectionOverview)
	if err != nil {
		return nil, err
	}
	return p.doc.Pairs(sectionOverview, section)
}

// returns reads a section laid out as rows of three Fl(start) spans:
// period, fund, benchmark.
func (p *Performance) returns(heading string) ([]ReturnRow, error) {
	section, err := p.doc.Section(heading)
	if err != nil {
		return nil, err
	}
	rows, err := p.doc.Group(heading, extract.StartTexts(section), 3)
	if err != nil {
		return nil, err
	}
	out := make([]ReturnRow, len(rows))
	for i, r := range rows {
		out[i] = ReturnRow{Label: r[0], Fund: r[1], Benchmark: r[2]}
	}
	return out, nil
}

func returnLabels(rows []ReturnRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func (p *Performance) find(heading, kind, label string) (ReturnRow, error) {
	rows, err := p.returns(heading)
	if err != nil {
		return ReturnRow{}, err
	}
	i, err := extract.FindLabel(kind, returnLabels(rows), label)
	if err != nil {
		return ReturnRow{}, err
	}
	return rows[i], nil
}

// TrailingPeriods returns the trailing periods available, like "1-Month" or "YTD".
func (p *Performance) TrailingPeriods() ([]string, error) {
	rows, err := p.returns(sectionTrailing)
	if err != nil {
		return nil, err
	}
	return returnLabels(rows), nil
}

func (p *Performance) TrailingReturn(period string) (ReturnRow, error) {
	return p.find(sectionTrailing, "trailing period", period)
}

func (p *Performance) TotalReturnYears() ([]string, error) {
	rows, err := p.returns(sectionAnnualTotal)
	if err != nil {
		return nil, err
	}
	return returnLabels(rows), nil
}

func (p *Performance) TotalReturn(year string) (ReturnRow, error) {
	return p.find(sectionAnnualTotal, "total return year", year)
}
