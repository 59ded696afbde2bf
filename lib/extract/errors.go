package extract

import (
	"errors"
	"fmt"
	"yfscrape/lib/numtext"
	"yfscrape/lib/textutil"
)

var (
	// ErrLabelNotFound means the requested label or category is absent from the document.
	ErrLabelNotFound = errors.New("label not found")
	// ErrLayoutMismatch means a positional assumption about the page no longer holds.
	ErrLayoutMismatch = errors.New("layout mismatch")
)

type LabelNotFoundError struct {
	Kind       string
	Label      string
	Suggestion string
}

func (e *LabelNotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Label)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *LabelNotFoundError) Is(target error) bool {
	return target == ErrLabelNotFound
}

type LayoutMismatchError struct {
	Page   string
	Field  string
	Reason string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: layout mismatch: %s", e.Page, e.Field, e.Reason)
}

func (e *LayoutMismatchError) Is(target error) bool {
	return target == ErrLayoutMismatch
}

func layoutMismatch(page, field, format string, args ...any) error {
	return &LayoutMismatchError{Page: page, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NoDataError is returned when a label exists but the requested slice of it
// holds no value. It matches numtext.ErrNoData.
type NoDataError struct {
	Label  string
	Slice  string
	Reason string
}

func (e *NoDataError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("no data for %q (%s)", e.Label, e.Slice)
}

func (e *NoDataError) Is(target error) bool {
	return target == numtext.ErrNoData
}

// FindLabel returns the index of want in labels, comparing normalized text.
func FindLabel(kind string, labels []string, want string) (int, error) {
	normalized := textutil.NormalizeName(want)
	for i, label := range labels {
		if textutil.NormalizeName(label) == normalized {
			return i, nil
		}
	}
	return -1, &LabelNotFoundError{
		Kind:       kind,
		Label:      want,
		Suggestion: textutil.Closest(want, labels),
	}
}
