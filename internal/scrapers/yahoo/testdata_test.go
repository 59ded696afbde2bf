package yahoo

import (
	"embed"
	"strings"
	"testing"
	"yfscrape/lib/extract"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.html
var testdata embed.FS

func readPage(t *testing.T, name string) []byte {
	t.Helper()
	body, err := testdata.ReadFile("testdata/" + name + ".html")
	require.NoError(t, err)
	return body
}

func loadPage(t *testing.T, name string) *extract.Document {
	t.Helper()
	doc, err := extract.ParseBytes(name, readPage(t, name))
	require.NoError(t, err)
	return doc
}

func parsePage(t *testing.T, name, markup string) *extract.Document {
	t.Helper()
	doc, err := extract.Parse(name, strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}
