package yahoo

import (
	"strings"
	"yfscrape/lib/extract"
	"yfscrape/lib/htmlutil"
	"yfscrape/lib/numtext"

	"github.com/PuerkitoBio/goquery"
)

type statCategory struct {
	name  string
	cells []string
}

// Statistics reads the key statistics page, where every table belongs to the
// closest h2 or h3 heading before it.
type Statistics struct {
	doc        *extract.Document
	categories []statCategory
}

func NewStatistics(doc *extract.Document) (*Statistics, error) {
	s := &Statistics{doc: doc}

	// goquery returns matches of a selector group in document order
	heading := ""
	owner := -1
	doc.Find("h2, h3, table").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h2", "h3":
			if sel.Find("h2, h3").Length() > 0 {
				return
			}
			heading = htmlutil.TextWithout(sel, "sup")
			owner = -1
		case "table":
			if heading == "" || sel.Find("table").Length() > 0 {
				return
			}
			if owner < 0 {
				s.categories = append(s.categories, statCategory{name: heading})
				owner = len(s.categories) - 1
			}
			tds := extract.Leaves(sel.Find("td"), "td")
			tds.Each(func(i int, td *goquery.Selection) {
				text := htmlutil.Clean(td.Text())
				// only labels carry footnotes
				if i%2 == 0 {
					text = htmlutil.TextWithout(td, "sup")
				}
				s.categories[owner].cells = append(s.categories[owner].cells, text)
			})
		}
	})

	for _, c := range s.categories {
		if len(c.cells)%2 != 0 {
			return nil, &extract.LayoutMismatchError{
				Page:   doc.Page,
				Field:  c.name,
				Reason: "statistics table has an odd number of cells",
			}
		}
	}
	return s, nil
}

// Categories returns the headings owning at least one table, in document order.
func (s *Statistics) Categories() []string {
	names := make([]string, len(s.categories))
	for i, c := range s.categories {
		names[i] = c.name
	}
	return names
}

func (s *Statistics) category(name string) (statCategory, error) {
	i, err := extract.FindLabel("statistics category", s.Categories(), name)
	if err != nil {
		return statCategory{}, err
	}
	return s.categories[i], nil
}

// Labels returns the statistic labels of a category in document order.
func (s *Statistics) Labels(category string) ([]string, error) {
	c, err := s.category(category)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(c.cells)/2)
	for i := 0; i < len(c.cells); i += 2 {
		labels = append(labels, c.cells[i])
	}
	return labels, nil
}

// Statistic returns the text of a statistic, "N/A" becomes a NoDataError.
func (s *Statistics) Statistic(category, label string) (string, error) {
	c, err := s.category(category)
	if err != nil {
		return "", err
	}
	labels, _ := s.Labels(category)
	i, err := extract.FindLabel("statistic", labels, label)
	if err != nil {
		return "", err
	}

	value := c.cells[2*i+1]
	if numtext.IsSentinel(value) {
		return "", &extract.NoDataError{Label: labels[i], Slice: c.name}
	}
	return value, nil
}

// StatisticValue parses a statistic, "19.89%" gives 19.89 and "2.76B" gives 2.76e9.
func (s *Statistics) StatisticValue(category, label string) (float64, error) {
	text, err := s.Statistic(category, label)
	if err != nil {
		return 0, err
	}
	if strings.HasSuffix(text, "%") {
		return parseValue(s.doc, label, text, numtext.ParsePercent)
	}
	return parseValue(s.doc, label, text, numtext.ParseAbbreviated)
}
