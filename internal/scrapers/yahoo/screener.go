package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"yfscrape/lib/extract"
)

const report_client_screen = "client.screen"

const (
	screenerPageSize     = 25
	defaultScreenerLimit = 100
)

// predefined screeners listing every asset type.
var defaultScreeners = map[string]string{
	"stock":      "most_actives",
	"etf":        "top_etfs_us",
	"mutualfund": "top_mutual_funds",
}

type ScreenerRow struct {
	Symbol    string
	Name      string
	MarketCap string
}

type ScreenerQuery struct {
	// Asset is one of stock, etf or mutualfund, used when neither Predefined
	// nor URL is set.
	Asset string
	// Predefined is the id of a predefined screener, like "day_gainers".
	Predefined string
	// URL is the address of a saved screener, it overrides Predefined.
	URL string
	// Limit is the most rows returned, zero means 100.
	Limit int
}

// ParseScreener reads the result table of one screener page.
func ParseScreener(doc *extract.Document) ([]ScreenerRow, error) {
	symbols := extract.Texts(doc.Find(`td[aria-label="Symbol"]`))
	names := extract.Texts(doc.Find(`td[aria-label="Name"]`))
	caps := extract.Texts(doc.Find(`td[aria-label="Market Cap"]`))
	if len(names) != len(symbols) || len(caps) != len(symbols) {
		return nil, &extract.LayoutMismatchError{
			Page:  doc.Page,
			Field: "screener results",
			Reason: fmt.Sprintf(
				"%d symbols, %d names and %d market caps",
				len(symbols), len(names), len(caps),
			),
		}
	}

	rows := make([]ScreenerRow, len(symbols))
	for i := range symbols {
		rows[i] = ScreenerRow{Symbol: symbols[i], Name: names[i], MarketCap: caps[i]}
	}
	return rows, nil
}

func (c *Client) screenerURL(q ScreenerQuery) (*url.URL, error) {
	raw := q.URL
	if raw == "" {
		id := q.Predefined
		if id == "" {
			asset := q.Asset
			if asset == "" {
				asset = "stock"
			}
			var ok bool
			id, ok = defaultScreeners[asset]
			if !ok {
				return nil, fmt.Errorf("unknown asset type %q, expected one of stock, etf, mutualfund", q.Asset)
			}
		}
		raw = c.URL(PAGE_SCREENER, id)
	}
	return url.Parse(raw)
}

// Screen pages through a screener until Limit rows are read or a page comes
// back short.
func (c *Client) Screen(ctx context.Context, q ScreenerQuery) ([]ScreenerRow, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultScreenerLimit
	}
	u, err := c.screenerURL(q)
	if err != nil {
		return nil, err
	}

	var out []ScreenerRow
	for offset := 0; len(out) < limit; offset += screenerPageSize {
		query := u.Query()
		query.Set("count", strconv.Itoa(screenerPageSize))
		query.Set("offset", strconv.Itoa(offset))
		u.RawQuery = query.Encode()

		doc, err := c.load(ctx, pages[PAGE_SCREENER], u.String(), c.tel.With("offset", offset))
		if err != nil {
			return nil, err
		}
		rows, err := ParseScreener(doc)
		if err != nil {
			c.tel.ReportBroken(report_client_screen, err)
			return nil, err
		}
		out = append(out, rows...)
		if len(rows) < screenerPageSize {
			break
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	c.tel.ReportCount(report_client_screen, int64(len(out)))
	return out, nil
}
