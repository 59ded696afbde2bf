package yahoo

import (
	"sort"
	"strings"
	"yfscrape/lib/extract"
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/numtext"
)

const (
	profileSector    = "Sector(s):"
	profileIndustry  = "Industry:"
	profileEmployees = "Full Time Employees:"
)

var profileLabels = []string{profileSector, profileIndustry, profileEmployees}

type Profile struct {
	doc *extract.Document
}

func NewProfile(doc *extract.Document) *Profile {
	return &Profile{doc: doc}
}

func (p *Profile) CurrentPrice() (float64, error) {
	return currentPrice(p.doc, `fin-streamer[data-test="qsp-price"]`)
}

// Name returns the company name heading of the page.
func (p *Profile) Name() (string, error) {
	headings := p.doc.Leaves("h1")
	if headings.Length() == 0 {
		return "", &extract.LayoutMismatchError{Page: p.doc.Page, Field: "name", Reason: "no h1 heading"}
	}
	return htmlutil.Clean(headings.First().Text()), nil
}

// segment returns the text between label and the next known label of the
// profile block, "Sector(s): Financial Services Industry: ..." gives
// "Financial Services" for the sector.
func (p *Profile) segment(label string) (string, error) {
	blocks := p.doc.Leaves(`div[data-test="qsp-profile"]`)
	if blocks.Length() == 0 {
		return "", &extract.LayoutMismatchError{Page: p.doc.Page, Field: "qsp-profile", Reason: "no profile block"}
	}
	text := htmlutil.Clean(blocks.First().Text())

	start := strings.Index(text, label)
	if start < 0 {
		return "", &extract.LabelNotFoundError{Kind: "profile field", Label: label}
	}
	start += len(label)

	var next []int
	for _, other := range profileLabels {
		if i := strings.Index(text[start:], other); i >= 0 {
			next = append(next, start+i)
		}
	}
	end := len(text)
	if len(next) > 0 {
		sort.Ints(next)
		end = next[0]
	}
	return strings.TrimSpace(text[start:end]), nil
}

func (p *Profile) Sector() (string, error) {
	return p.segment(profileSector)
}

func (p *Profile) Industry() (string, error) {
	return p.segment(profileIndustry)
}

func (p *Profile) FullTimeEmployees() (int, error) {
	text, err := p.segment(profileEmployees)
	if err != nil {
		return 0, err
	}
	n, err := parseValue(p.doc, "full time employees", text, numtext.ParseNumber)
	return int(n), err
}
