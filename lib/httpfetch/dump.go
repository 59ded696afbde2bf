package httpfetch

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"yfscrape/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const report_dump_write = "dump.write"

// Dump writes every response a Fetcher receives to a directory. Each exchange
// becomes two files sharing a numbered prefix: <n>-<path>.http with the
// request and response headers, and <n>-<path>.html with the raw body, which
// can be parsed later like any captured page.
type Dump struct {
	dir     string
	counter atomic.Uint64
	tel     telemetry.API
}

func NewDump(dir string, tel telemetry.API) (*Dump, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create dump dir: %w", err)
	}
	return &Dump{dir: dir, tel: tel}, nil
}

func (d *Dump) instrument(client *resty.Client) {
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		d.record(res)
		return nil
	})
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

// dumpName turns "https://host/quote/GLE.PA/balance-sheet?p=GLE.PA" into
// "quote-GLE-PA-balance-sheet".
func dumpName(raw string) string {
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	name := strings.Trim(nonWord.ReplaceAllString(path, "-"), "-")
	if name == "" {
		name = "index"
	}
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

// 1: request method
// 2: request url
// 3: request headers
// 4: response status
// 5: response headers
const exchangeTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%s

%s
`

func formatExchange(res *resty.Response) string {
	var requestHeaders http.Header
	if res.Request.RawRequest != nil {
		requestHeaders = res.Request.RawRequest.Header
	}
	return fmt.Sprintf(
		exchangeTemplate,
		res.Request.Method, res.Request.URL,
		formatHeaders(requestHeaders),
		res.Status(),
		formatHeaders(res.Header()),
	)
}

func (d *Dump) write(name string, contents []byte) {
	err := os.WriteFile(filepath.Join(d.dir, name), contents, 0o644)
	if err != nil {
		d.tel.ReportWarning(report_dump_write, name, err)
	}
}

func (d *Dump) record(res *resty.Response) {
	prefix := fmt.Sprintf("%03d-%s", d.counter.Add(1), dumpName(res.Request.URL))
	d.write(prefix+".http", []byte(formatExchange(res)))
	d.write(prefix+".html", res.Body())
}
