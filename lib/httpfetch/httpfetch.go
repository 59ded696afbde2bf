// Package httpfetch fetches raw page markup over plain HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/cookiejar"
	"time"
	"yfscrape/internal/components/assert"
	"yfscrape/internal/components/telemetry"

	"dario.cat/mergo"
	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	fakeua "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const report_fetcher_fetch = "fetcher.fetch"

type Options struct {
	// UserAgent is sent with every request, a random Chrome user agent is
	// picked when it is empty.
	UserAgent string
	// Timeout bounds a single request, defaults to 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond limits the request rate, zero or less means unlimited.
	RequestsPerSecond float64
	Headers           map[string]string
	// DumpDir, when set, receives a copy of every response, see Dump.
	DumpDir string
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

type Fetcher struct {
	http *resty.Client
	tel  telemetry.API
}

func New(opts Options, tel telemetry.API) (*Fetcher, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("httpfetch", tel)

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	headers, err := requestHeaders(opts)
	if err != nil {
		return nil, err
	}
	client.SetHeaders(headers)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		// burst >= the rate just means that no requests will be dropped
		burst = int(math.Ceil(opts.RequestsPerSecond))
	}
	rateLimiter := rate.NewLimiter(limit, burst)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "yfscrape/httpfetch", tel)

	if opts.DumpDir != "" {
		dump, err := NewDump(opts.DumpDir, tel)
		if err != nil {
			return nil, err
		}
		dump.instrument(client)
	}

	return &Fetcher{http: client, tel: tel}, nil
}

// requestHeaders returns the headers sent with every request, the configured
// headers take precedence over the defaults.
func requestHeaders(opts Options) (map[string]string, error) {
	configured := make(map[string]string, len(opts.Headers))
	for key, value := range opts.Headers {
		configured[http.CanonicalHeaderKey(key)] = value
	}

	userAgent := opts.UserAgent
	if userAgent == "" && configured["User-Agent"] == "" {
		userAgent = fakeua.Chrome()
	}
	headers := map[string]string{
		"User-Agent":      userAgent,
		"Accept-Language": "en-US,en;q=0.9",
	}
	err := mergo.Merge(&headers, configured, mergo.WithOverride)
	if err != nil {
		return nil, fmt.Errorf("merge headers: %w", err)
	}
	return headers, nil
}

// Fetch performs a single GET of url and returns the raw body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		f.tel.ReportBroken(report_fetcher_fetch, err, url)
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if !res.IsSuccess() {
		err := &StatusError{URL: url, Code: res.StatusCode()}
		f.tel.ReportBroken(report_fetcher_fetch, err)
		return nil, err
	}
	return res.Body(), nil
}
