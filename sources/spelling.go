package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/suggestor/core"
)

const spellingScore = 0.8

// Correction maps a common misspelling to its correct form.
type Correction struct {
	Misspelling string
	Correct     string
}

// Spelling rewrites queries that contain a known misspelling.
type Spelling struct {
	corrections []Correction
}

var _ Source = (*Spelling)(nil)

// NewSpelling creates a spelling source. Misspellings are normalized; entries
// that normalize to nothing are ignored.
func NewSpelling(corrections []Correction) *Spelling {
	s := &Spelling{corrections: make([]Correction, 0, len(corrections))}
	for _, c := range corrections {
		wrong := core.Normalize(c.Misspelling)
		if wrong == "" || c.Correct == "" {
			continue
		}
		s.corrections = append(s.corrections, Correction{Misspelling: wrong, Correct: c.Correct})
	}
	return s
}

func (s *Spelling) Name() string          { return "spelling" }
func (s *Spelling) Kind() core.SourceKind { return core.SourceKindSemantic }

// Suggest emits the normalized query with each matching misspelling replaced.
func (s *Spelling) Suggest(ctx context.Context, query string) ([]*core.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := core.Normalize(query)
	if q == "" {
		return nil, nil
	}

	var results []*core.Suggestion
	seen := make(map[string]struct{})
	for _, c := range s.corrections {
		if !strings.Contains(q, c.Misspelling) {
			continue
		}
		fixed := strings.ReplaceAll(q, c.Misspelling, c.Correct)
		if fixed == q {
			continue
		}
		if _, dup := seen[fixed]; dup {
			continue
		}
		seen[fixed] = struct{}{}
		results = append(results, &core.Suggestion{
			Text:        fixed,
			Kind:        core.SourceKindSemantic,
			RawScore:    spellingScore,
			Category:    "spelling",
			ContextNote: fmt.Sprintf("did you mean %q", c.Correct),
		})
	}
	return results, nil
}
