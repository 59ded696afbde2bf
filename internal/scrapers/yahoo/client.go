// Package yahoo extracts quotes, statements, statistics and fund data from
// the rendered pages of Yahoo Finance.
//
// Loading a page and extracting from it are separate: Client.Load returns a
// prepared document, and every New... constructor is a pure function over a
// document, so captured pages can be parsed without a network or a browser.
package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"
	"yfscrape/internal/components/assert"
	"yfscrape/internal/components/telemetry"
	"yfscrape/lib/browser"
	"yfscrape/lib/extract"
)

const (
	report_client_load    = "client.load"
	report_client_extract = "client.extract"
)

const DefaultBaseURL = "https://finance.yahoo.com"

// Fetcher returns the raw markup served at a url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Renderer returns the markup of a url after running steps in a browser.
type Renderer interface {
	Render(ctx context.Context, url string, steps []browser.Step) (string, error)
}

type Options struct {
	BaseURL string
	Fetcher Fetcher
	// Renderer is optional, when set every page is loaded through it so the
	// consent dialog is dismissed and collapsed rows are expanded.
	Renderer Renderer
	// WaitTimeout bounds every precondition step, zero keeps browser.DefaultTimeout.
	WaitTimeout time.Duration
}

type Client struct {
	baseURL     string
	fetcher     Fetcher
	renderer    Renderer
	waitTimeout time.Duration
	tel         telemetry.ScopedAPI
}

func NewClient(opts Options, tel telemetry.API) *Client {
	assert.NotNil(tel)
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Renderer == nil {
		assert.NotNil(opts.Fetcher)
	}

	return &Client{
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		fetcher:     opts.Fetcher,
		renderer:    opts.Renderer,
		waitTimeout: opts.WaitTimeout,
		tel:         telemetry.NewScopedAPI("yahoo", tel),
	}
}

// URL returns the address of the page of the given kind for ticker.
func (c *Client) URL(kind PageKind, ticker string) string {
	return c.baseURL + pages[kind].path(ticker)
}

func (c *Client) steps(steps []browser.Step) []browser.Step {
	out := make([]browser.Step, len(steps))
	for i, s := range steps {
		if s.Timeout == 0 {
			s.Timeout = c.waitTimeout
		}
		out[i] = s
	}
	return out
}

// Load fetches (or renders) the page of the given kind for ticker.
func (c *Client) Load(ctx context.Context, kind PageKind, ticker string) (*extract.Document, error) {
	p, ok := pages[kind]
	if !ok {
		return nil, fmt.Errorf("unknown page kind %d", kind)
	}
	return c.load(ctx, p, c.URL(kind, ticker), c.tel.With("ticker", ticker))
}

func (c *Client) load(ctx context.Context, p page, url string, tel telemetry.ScopedAPI) (*extract.Document, error) {
	tel = tel.With("page", p.name)
	tel.ReportDebug(report_client_load, url)

	if c.renderer != nil {
		markup, err := c.renderer.Render(ctx, url, c.steps(p.steps))
		if err != nil {
			tel.ReportBroken(report_client_load, err)
			return nil, fmt.Errorf("render %s: %w", p.name, err)
		}
		return extract.Parse(p.name, strings.NewReader(markup))
	}

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		tel.ReportBroken(report_client_load, err)
		return nil, fmt.Errorf("fetch %s: %w", p.name, err)
	}
	return extract.ParseBytes(p.name, body)
}

// extracted reports extraction failures, which mostly mean the page layout
// changed.
func extracted[T any](c *Client, value T, err error) (T, error) {
	if err != nil {
		c.tel.ReportBroken(report_client_extract, err)
	}
	return value, err
}

func (c *Client) Statement(ctx context.Context, ticker string, sheet Sheet) (*Statement, error) {
	doc, err := c.Load(ctx, sheet.page(), ticker)
	if err != nil {
		return nil, err
	}
	s, err := NewStatement(doc, sheet)
	return extracted(c, s, err)
}

func (c *Client) Profile(ctx context.Context, ticker string) (*Profile, error) {
	doc, err := c.Load(ctx, PAGE_PROFILE, ticker)
	if err != nil {
		return nil, err
	}
	return NewProfile(doc), nil
}

func (c *Client) Statistics(ctx context.Context, ticker string) (*Statistics, error) {
	doc, err := c.Load(ctx, PAGE_STATISTICS, ticker)
	if err != nil {
		return nil, err
	}
	s, err := NewStatistics(doc)
	return extracted(c, s, err)
}

func (c *Client) Benchmark(ctx context.Context, ticker string) (*Quote, error) {
	doc, err := c.Load(ctx, PAGE_BENCHMARK, ticker)
	if err != nil {
		return nil, err
	}
	return NewBenchmarkQuote(doc), nil
}

func (c *Client) Currency(ctx context.Context, ticker string) (*Quote, error) {
	doc, err := c.Load(ctx, PAGE_CURRENCY, ticker)
	if err != nil {
		return nil, err
	}
	return NewCurrencyQuote(doc), nil
}

func (c *Client) ETFSummary(ctx context.Context, ticker string) (*ETFSummary, error) {
	doc, err := c.Load(ctx, PAGE_SUMMARY, ticker)
	if err != nil {
		return nil, err
	}
	return NewETFSummary(doc), nil
}

func (c *Client) Holdings(ctx context.Context, ticker string) (*Holdings, error) {
	doc, err := c.Load(ctx, PAGE_HOLDINGS, ticker)
	if err != nil {
		return nil, err
	}
	return NewHoldings(doc), nil
}

func (c *Client) Performance(ctx context.Context, ticker string) (*Performance, error) {
	doc, err := c.Load(ctx, PAGE_PERFORMANCE, ticker)
	if err != nil {
		return nil, err
	}
	return NewPerformance(doc), nil
}

func (c *Client) Risk(ctx context.Context, ticker string) (*Risk, error) {
	doc, err := c.Load(ctx, PAGE_RISK, ticker)
	if err != nil {
		return nil, err
	}
	r, err := NewRisk(doc)
	return extracted(c, r, err)
}
