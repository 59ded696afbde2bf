package yahoo

import (
	"yfscrape/lib/extract"
)

const (
	sectionComposition = "Overall Portfolio Composition"
	sectionSectors     = "Sector Weightings"
	sectionEquity      = "Equity Holdings"
	sectionBonds       = "Bond Ratings"
)

type Holding struct {
	Name   string
	Symbol string
	Assets string
}

// Holdings reads the holdings page of a fund. Every accessor returns pairs
// in document order.
type Holdings struct {
	doc *extract.Document
}

func NewHoldings(doc *extract.Document) *Holdings {
	return &Holdings{doc: doc}
}

// TopHoldings reads the first table of the page, three cells per holding.
func (h *Holdings) TopHoldings() ([]Holding, error) {
	cells, err := h.doc.TableCells(0)
	if err != nil {
		return nil, err
	}
	rows, err := h.doc.Group("top holdings", cells, 3)
	if err != nil {
		return nil, err
	}
	out := make([]Holding, len(rows))
	for i, r := range rows {
		out[i] = Holding{Name: r[0], Symbol: r[1], Assets: r[2]}
	}
	return out, nil
}

func (h *Holdings) pairs(heading string) ([]extract.Pair, error) {
	section, err := h.doc.Section(heading)
	if err != nil {
		return nil, err
	}
	return h.doc.Pairs(heading, section)
}

func (h *Holdings) PortfolioComposition() ([]extract.Pair, error) {
	return h.pairs(sectionComposition)
}

// SectorWeightings pairs every sector with the fund's weight. Both are
// rendered as Fl(start) spans, the Fl(end) spans hold the category average.
func (h *Holdings) SectorWeightings() ([]extract.Pair, error) {
	section, err := h.doc.Section(sectionSectors)
	if err != nil {
		return nil, err
	}
	rows, err := h.doc.Group(sectionSectors, extract.StartTexts(section), 2)
	if err != nil {
		return nil, err
	}
	out := make([]extract.Pair, len(rows))
	for i, r := range rows {
		out[i] = extract.Pair{Label: r[0], Value: r[1]}
	}
	return out, nil
}

func (h *Holdings) EquityHoldings() ([]extract.Pair, error) {
	return h.pairs(sectionEquity)
}

func (h *Holdings) BondRatings() ([]extract.Pair, error) {
	return h.pairs(sectionBonds)
}
