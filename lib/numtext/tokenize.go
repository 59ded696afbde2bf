package numtext

import (
	"fmt"
	"strings"
	"unicode"
)

// Options tunes Tokenize.
type Options struct {
	// FractionDigits is the most digits read after a decimal point before the
	// next field is assumed to begin. Zero means 2.
	FractionDigits int
}

// Field is one numeric field of a row as rendered, separators included.
type Field struct {
	Raw     string
	Missing bool
}

// Value parses the field, returning ErrNoData for placeholders.
func (f Field) Value() (float64, error) {
	if f.Missing {
		return 0, ErrNoData
	}
	return ParseNumber(f.Raw)
}

// Row is a label followed by its per-period fields, most recent first.
type Row struct {
	Label  string
	Fields []Field
}

// Tokens returns the label followed by the raw fields. Joined, they give back
// the tokenized text without the whitespace around the label and between
// fields, which Tokenize drops.
func (r Row) Tokens() []string {
	tokens := make([]string, 0, len(r.Fields)+1)
	tokens = append(tokens, r.Label)
	for _, f := range r.Fields {
		tokens = append(tokens, f.Raw)
	}
	return tokens
}

type TokenizeError struct {
	Text   string
	Offset int
	Reason string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize %q at offset %d: %s", e.Text, e.Offset, e.Reason)
}

type tokenizerState int

const (
	seekingLabel tokenizerState = iota
	seekingSeparator
	seekingDecimalDigits
	flushingField
)

type tokenizer struct {
	text  string
	runes []rune
	pos   int
	opts  Options
	state tokenizerState

	label strings.Builder
	row   Row

	field    strings.Builder
	missing  bool
	leading  int
	group    int
	fraction bool
}

// Tokenize splits the text of a labeled row, where the label and every
// comma-grouped value are concatenated with no delimiter, into a Row.
//
//	"Total Capitalization219,779,000216,220,000" -> {"Total Capitalization", ["219,779,000", "216,220,000"]}
func Tokenize(text string) (Row, error) {
	return TokenizeWith(text, Options{})
}

func TokenizeWith(text string, opts Options) (Row, error) {
	if opts.FractionDigits <= 0 {
		opts.FractionDigits = 2
	}
	t := &tokenizer{text: text, runes: []rune(text), opts: opts}

	for t.pos < len(t.runes) {
		var err error
		switch t.state {
		case seekingLabel:
			t.seekLabel()
		case seekingSeparator:
			err = t.seekSeparator()
		case seekingDecimalDigits:
			err = t.seekDecimalDigits()
		case flushingField:
			err = t.flush()
		}
		if err != nil {
			return Row{}, err
		}
	}
	return t.finish()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (t *tokenizer) peek(offset int) (rune, bool) {
	i := t.pos + offset
	if i >= len(t.runes) {
		return 0, false
	}
	return t.runes[i], true
}

func (t *tokenizer) digitsAhead(offset, n int) bool {
	for i := 0; i < n; i++ {
		r, ok := t.peek(offset + i)
		if !ok || !isDigit(r) {
			return false
		}
	}
	return true
}

func (t *tokenizer) startsField(i int) bool {
	r := t.runes[i]
	if isDigit(r) {
		return true
	}
	if r != '-' {
		return false
	}
	if i+1 == len(t.runes) {
		return true
	}
	next := t.runes[i+1]
	return isDigit(next) || next == '-' || next == '.'
}

func (t *tokenizer) write() {
	t.field.WriteRune(t.runes[t.pos])
	t.pos++
}

func (t *tokenizer) errorf(format string, args ...any) error {
	return &TokenizeError{Text: t.text, Offset: t.pos, Reason: fmt.Sprintf(format, args...)}
}

func (t *tokenizer) seekLabel() {
	if t.startsField(t.pos) {
		t.row.Label = strings.TrimSpace(t.label.String())
		t.state = seekingSeparator
		return
	}
	t.label.WriteRune(t.runes[t.pos])
	t.pos++
}

func (t *tokenizer) seekSeparator() error {
	r, _ := t.peek(0)
	switch {
	case t.field.Len() == 0 && r == '-':
		next, ok := t.peek(1)
		t.write()
		if !ok || !(isDigit(next) || next == '.') {
			t.missing = true
			t.state = flushingField
		}
	case t.field.Len() == 0 && r == '0' && t.digitsAhead(1, 1) && t.runes[t.pos+1] == '0':
		for t.pos < len(t.runes) && t.runes[t.pos] == '0' {
			t.write()
		}
		t.missing = true
		t.state = flushingField
	case isDigit(r):
		t.write()
		t.leading++
	case r == ',' && t.leading > 0 && t.digitsAhead(1, 3):
		if t.leading > 3 {
			t.splitOverflow()
		}
		t.write()
		t.group = 0
		t.fraction = false
		t.state = seekingDecimalDigits
	case r == '.' && t.digitsAhead(1, 1):
		t.write()
		t.group = 0
		t.fraction = true
		t.state = seekingDecimalDigits
	case t.leading == 0:
		return t.errorf("expected digits, found %q", r)
	case r == '%':
		t.write()
		t.state = flushingField
	default:
		t.state = flushingField
	}
	return nil
}

// splitOverflow handles a leading digit run longer than a thousands group:
// the digits before the last three belong to the previous field.
func (t *tokenizer) splitOverflow() {
	raw := t.field.String()
	cut := len(raw) - 3
	t.row.Fields = append(t.row.Fields, Field{Raw: raw[:cut], Missing: IsSentinel(raw[:cut])})
	t.field.Reset()
	t.field.WriteString(raw[cut:])
	t.leading = 3
}

func (t *tokenizer) seekDecimalDigits() error {
	r, _ := t.peek(0)
	limit := 3
	if t.fraction {
		limit = t.opts.FractionDigits
	}
	switch {
	case isDigit(r) && t.group < limit:
		t.write()
		t.group++
	case !t.fraction && t.group < 3:
		return t.errorf("thousands group has %d digits", t.group)
	case !t.fraction && r == ',' && t.digitsAhead(1, 3):
		t.write()
		t.group = 0
	case !t.fraction && r == '.' && t.digitsAhead(1, 1):
		t.write()
		t.group = 0
		t.fraction = true
	case r == '%':
		t.write()
		t.state = flushingField
	default:
		t.state = flushingField
	}
	return nil
}

func (t *tokenizer) emit() {
	raw := t.field.String()
	t.row.Fields = append(t.row.Fields, Field{Raw: raw, Missing: t.missing || IsSentinel(raw)})
	t.field.Reset()
	t.missing = false
	t.leading = 0
	t.group = 0
	t.fraction = false
}

func (t *tokenizer) flush() error {
	t.emit()
	for t.pos < len(t.runes) && unicode.IsSpace(t.runes[t.pos]) {
		t.pos++
	}
	if t.pos < len(t.runes) && !t.startsField(t.pos) {
		return t.errorf("unexpected %q after field", t.runes[t.pos])
	}
	t.state = seekingSeparator
	return nil
}

func (t *tokenizer) finish() (Row, error) {
	switch t.state {
	case seekingLabel:
		t.row.Label = strings.TrimSpace(t.label.String())
	case seekingSeparator:
		if t.field.Len() > 0 {
			t.emit()
		}
	case seekingDecimalDigits:
		if !t.fraction && t.group < 3 {
			return Row{}, t.errorf("thousands group has %d digits", t.group)
		}
		t.emit()
	case flushingField:
		t.emit()
	}
	return t.row, nil
}
