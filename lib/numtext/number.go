// Package numtext turns the loosely formatted numeric text rendered by quote pages into typed values.
package numtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoData is returned when a field holds a placeholder instead of a value.
var ErrNoData = errors.New("no data")

var sentinels = map[string]struct{}{
	"-":   {},
	"--":  {},
	"N/A": {},
	"NaN": {},
}

// IsSentinel reports whether s is a missing-value placeholder: a dash, "N/A",
// or a run of two or more zeros padded to the field width.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if _, ok := sentinels[s]; ok {
		return true
	}
	if len(s) < 2 {
		return false
	}
	return strings.Trim(s, "0") == ""
}

func StripSeparators(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// ParseNumber parses a number that may contain thousands separators.
func ParseNumber(s string) (float64, error) {
	if IsSentinel(s) {
		return 0, ErrNoData
	}
	clean := strings.TrimPrefix(StripSeparators(s), "+")
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return value, nil
}

// ParsePercent parses "19.89%" into 19.89.
func ParsePercent(s string) (float64, error) {
	if IsSentinel(s) {
		return 0, ErrNoData
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "%") {
		return 0, fmt.Errorf("parse percent %q: missing %% suffix", s)
	}
	return ParseNumber(strings.TrimSuffix(trimmed, "%"))
}

var magnitudes = map[byte]float64{
	'k': 1e3,
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseAbbreviated parses values like "2.76B" or "345.1k". Values without a
// magnitude suffix are parsed as plain numbers.
func ParseAbbreviated(s string) (float64, error) {
	if IsSentinel(s) {
		return 0, ErrNoData
	}
	trimmed := strings.TrimSpace(s)
	scale := 1.0
	if m, ok := magnitudes[trimmed[len(trimmed)-1]]; ok {
		scale = m
		trimmed = trimmed[:len(trimmed)-1]
	}
	value, err := ParseNumber(trimmed)
	if err != nil {
		return 0, err
	}
	return value * scale, nil
}

type Range struct {
	Low  float64
	High float64
}

func (r Range) String() string {
	return fmt.Sprintf(
		"%s - %s",
		strconv.FormatFloat(r.Low, 'f', -1, 64),
		strconv.FormatFloat(r.High, 'f', -1, 64),
	)
}

// ParseRange parses "1,234.50 - 2,345.60". Bounds may be negative.
func ParseRange(s string) (Range, error) {
	low, high, ok := splitRange(StripSeparators(s))
	if !ok {
		return Range{}, fmt.Errorf("parse range %q: no separator", s)
	}
	lowValue, err := ParseNumber(low)
	if err != nil {
		return Range{}, err
	}
	highValue, err := ParseNumber(high)
	if err != nil {
		return Range{}, err
	}
	return Range{Low: lowValue, High: highValue}, nil
}

func splitRange(s string) (string, string, bool) {
	if low, high, ok := strings.Cut(s, " - "); ok {
		return low, high, true
	}
	// skip a leading sign so "-1.5-2.0" splits after the first bound
	idx := strings.Index(s[min(1, len(s)):], "-")
	if idx < 0 {
		return "", "", false
	}
	idx++
	return s[:idx], s[idx+1:], true
}
