package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SlogAPI writes reports to Logger, or to the default slog logger when
// Logger is nil.
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// attrs turns report params into slog attributes. Attributes added with
// ScopedAPI.With keep their key, errors go under "err" and anything else is
// numbered in order.
func attrs(id string, params []any) []slog.Attr {
	out := make([]slog.Attr, 0, len(params)+1)
	if id != "" {
		out = append(out, slog.String("id", id))
	}
	n := 0
	for _, p := range params {
		switch p := p.(type) {
		case slog.Attr:
			out = append(out, p)
		case error:
			out = append(out, slog.String("err", p.Error()))
		default:
			out = append(out, slog.Any(fmt.Sprintf("params.%d", n), p))
			n++
		}
	}
	return out
}

func (s SlogAPI) log(level slog.Level, msg string, attrs []slog.Attr) {
	s.logger().LogAttrs(context.Background(), level, msg, attrs...)
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log(slog.LevelError, "broken component", attrs(id, params))
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log(slog.LevelWarn, "warning", attrs(id, params))
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.log(slog.LevelDebug, message, attrs("", params))
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log(slog.LevelDebug, "count", []slog.Attr{slog.String("id", id), slog.Int64("n", count)})
}

// InitSlog installs a text handler writing to w as the default slog logger.
func InitSlog(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}
