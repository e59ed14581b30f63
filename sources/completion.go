package sources

import (
	"context"
	"fmt"

	"github.com/poiesic/suggestor/core"
)

// DefaultLookupLimit bounds the number of filenames requested from the index.
const DefaultLookupLimit = 10

// CompletionIndex is the document index consulted for filename completions.
// Implementations may be slow or fail; callers bound them with a context.
type CompletionIndex interface {
	LookupFilenames(ctx context.Context, prefix, scope string, limit int) ([]string, error)
}

// Completion suggests document filenames whose normalized form starts with the query.
type Completion struct {
	index CompletionIndex
	limit int
}

var _ Source = (*Completion)(nil)

// NewCompletion creates a completion source over index.
// A limit of zero selects DefaultLookupLimit.
func NewCompletion(index CompletionIndex, limit int) (*Completion, error) {
	if index == nil {
		return nil, ErrCompletionIndexRequired
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = DefaultLookupLimit
	}
	return &Completion{index: index, limit: limit}, nil
}

func (c *Completion) Name() string          { return "completion" }
func (c *Completion) Kind() core.SourceKind { return core.SourceKindCompletion }

// Suggest emits one suggestion per distinct filename, each with raw score 1.0.
func (c *Completion) Suggest(ctx context.Context, query string) ([]*core.Suggestion, error) {
	prefix := core.Normalize(query)
	if prefix == "" {
		return nil, nil
	}

	filenames, err := c.index.LookupFilenames(ctx, prefix, ScopeFromContext(ctx), c.limit)
	if err != nil {
		return nil, fmt.Errorf("looking up filenames for %q: %w", prefix, err)
	}

	seen := make(map[string]struct{}, len(filenames))
	results := make([]*core.Suggestion, 0, len(filenames))
	for _, name := range filenames {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		results = append(results, &core.Suggestion{
			Text:     name,
			Kind:     core.SourceKindCompletion,
			RawScore: 1.0,
			Category: "document",
		})
	}
	return results, nil
}
