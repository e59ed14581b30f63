package sources

import (
	"context"
	"slices"
	"strings"

	"github.com/poiesic/suggestor/core"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Raw scores assigned by the popular source.
const (
	popularPrefixScore   = 0.9
	popularContainsScore = 0.6
	popularFoldedScore   = 0.3
)

// PopularTerm is an entry in the curated vocabulary.
type PopularTerm struct {
	Text     string
	Category string
}

type popularEntry struct {
	PopularTerm
	key    string
	folded string
}

// Popular matches the query against a fixed vocabulary. Terms starting with
// the query score 0.9, terms containing it 0.6, and terms that only match once
// accents are folded away 0.3.
type Popular struct {
	entries []popularEntry
	trie    *patricia.Trie
}

var _ Source = (*Popular)(nil)

// NewPopular builds a popular source from vocabulary. Duplicate terms (after
// normalization) keep their first occurrence.
func NewPopular(vocabulary []PopularTerm) *Popular {
	p := &Popular{trie: patricia.NewTrie()}
	for _, term := range vocabulary {
		key := core.Normalize(term.Text)
		if key == "" {
			continue
		}
		if !p.trie.Insert(patricia.Prefix(key), len(p.entries)) {
			continue
		}
		p.entries = append(p.entries, popularEntry{
			PopularTerm: term,
			key:         key,
			folded:      core.FoldAccents(key),
		})
	}
	return p
}

func (p *Popular) Name() string          { return "popular" }
func (p *Popular) Kind() core.SourceKind { return core.SourceKindPopular }

// Size returns the number of distinct vocabulary terms.
func (p *Popular) Size() int {
	return len(p.entries)
}

// Suggest returns matching vocabulary terms in vocabulary order.
func (p *Popular) Suggest(ctx context.Context, query string) ([]*core.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := core.Normalize(query)
	if q == "" {
		return nil, nil
	}

	var prefixed []int
	err := p.trie.VisitSubtree(patricia.Prefix(q), func(_ patricia.Prefix, item patricia.Item) error {
		prefixed = append(prefixed, item.(int))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(prefixed)

	foldedQuery := core.FoldAccents(q)
	var results []*core.Suggestion
	for i, entry := range p.entries {
		var score float64
		switch {
		case containsSorted(prefixed, i):
			score = popularPrefixScore
		case strings.Contains(entry.key, q):
			score = popularContainsScore
		case strings.Contains(entry.folded, foldedQuery):
			score = popularFoldedScore
		default:
			continue
		}
		results = append(results, &core.Suggestion{
			Text:     entry.Text,
			Kind:     core.SourceKindPopular,
			RawScore: score,
			Category: entry.Category,
		})
	}
	return results, nil
}

func containsSorted(sorted []int, v int) bool {
	_, found := slices.BinarySearch(sorted, v)
	return found
}
