package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/suggestor/core"
)

var fallbackSuffixes = []string{"décret", "loi", "arrêté", "règlement", "ministère"}

// Fallback returns the templated suggestions used when ranking cannot produce
// real candidates. Only templates longer than the query by more than two
// characters are kept, truncated to limit.
func Fallback(query string, limit int) []*core.Suggestion {
	q := strings.TrimSpace(query)
	minLen := utf8.RuneCountInString(q) + 2

	results := make([]*core.Suggestion, 0, len(fallbackSuffixes))
	for _, suffix := range fallbackSuffixes {
		text := q + " " + suffix
		if utf8.RuneCountInString(text) <= minLen {
			continue
		}
		results = append(results, &core.Suggestion{
			Text:     text,
			Kind:     core.SourceKindPopular,
			Category: "fallback",
		})
		if len(results) == limit {
			break
		}
	}
	return results
}
