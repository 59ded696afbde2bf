package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and removes all whitespace so labels compare
// equal regardless of how the page wraps them.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// HasPrefixName reports whether name starts with prefix once both are normalized.
func HasPrefixName(name, prefix string) bool {
	return strings.HasPrefix(NormalizeName(name), NormalizeName(prefix))
}

// minSimilarity is the Jaro-Winkler score below which Closest gives up.
const minSimilarity = 0.8

// Closest returns the candidate most similar to name, or "" if nothing is
// similar enough to be a useful suggestion.
func Closest(name string, candidates []string) string {
	normalized := NormalizeName(name)

	var best string
	var bestScore float64
	for _, c := range candidates {
		score := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < minSimilarity {
		return ""
	}
	return best
}
