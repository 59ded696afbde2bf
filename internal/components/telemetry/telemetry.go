package telemetry

import (
	"fmt"
	"log/slog"
)

// API is how components report what happens while pages are loaded and read.
// Components take an API instead of logging directly so tests can assert on
// the reports with a Recorder.
type API interface {
	// ReportBroken reports a component that failed in a way a user has to act
	// on: a page that would not load, a layout that no longer matches.
	//
	// The id names the component (`client.load`), not the detail of what went
	// wrong (`client.load-http-404`). Details go in params, errors included.
	// Ids are lowercase `<struct or interface>.<method>` strings declared as
	// `report_...` constants next to the code that reports them.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that was worked around, like an optional
	// precondition step that was skipped. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress that is only shown with verbose output.
	ReportDebug(msg string, params ...any)

	// ReportCount reports how many of something a call produced, like the rows
	// read from a screener. Counts are samples, not running totals.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace and adds a fixed set of
// attributes to every report, the way slog.Logger.With does.
//
//	tel := NewScopedAPI("yahoo", inner).With("ticker", "GLE.PA")
//	tel.ReportBroken("client.load", err) // id "yahoo: client.load", ticker=GLE.PA
type ScopedAPI struct {
	namespace string
	attrs     []any
	inner     API
}

// NewScopedAPI scopes inner under namespace. Scoping a ScopedAPI again nests
// the namespaces, "yahoo" then "screener" gives "yahoo/screener".
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if parent, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{
			namespace: parent.namespace + "/" + namespace,
			attrs:     parent.attrs,
			inner:     parent.inner,
		}
	}
	return ScopedAPI{namespace: namespace, inner: inner}
}

// With returns a copy of s that adds the given key/value pairs to every
// report except counts. A trailing key without a value is dropped.
func (s ScopedAPI) With(keyvals ...any) ScopedAPI {
	attrs := make([]any, len(s.attrs), len(s.attrs)+len(keyvals)/2)
	copy(attrs, s.attrs)
	for i := 0; i+1 < len(keyvals); i += 2 {
		attrs = append(attrs, slog.Any(fmt.Sprint(keyvals[i]), keyvals[i+1]))
	}
	s.attrs = attrs
	return s
}

func (s ScopedAPI) id(id string) string {
	return fmt.Sprintf("%s: %s", s.namespace, id)
}

func (s ScopedAPI) params(params []any) []any {
	if len(s.attrs) == 0 {
		return params
	}
	out := make([]any, 0, len(params)+len(s.attrs))
	out = append(out, params...)
	return append(out, s.attrs...)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.id(id), s.params(params)...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.id(id), s.params(params)...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.id(msg), s.params(params)...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.id(id), count)
}
