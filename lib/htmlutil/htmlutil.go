package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, the same way a browser's
// textContent does.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var whitespaceRun = regexp.MustCompile(` {2,}`)

// normalizeRune turns every kind of whitespace into a plain space and drops
// the remaining non-printable runes.
func normalizeRune(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	if !unicode.IsPrint(r) {
		return -1
	}
	return r
}

// Clean turns whitespace (non-breaking spaces and line breaks included) into
// single spaces and drops non-printable runes.
func Clean(s string) string {
	s = strings.Map(normalizeRune, s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TextWithout returns the cleaned text of sel, ignoring anything matched by
// exclude, usually footnote markers like <sup>.
func TextWithout(sel *goquery.Selection, exclude string) string {
	clone := sel.Clone()
	clone.Find(exclude).Remove()
	var text strings.Builder
	for _, node := range clone.Nodes {
		text.WriteString(GetText(node))
	}
	return Clean(text.String())
}
