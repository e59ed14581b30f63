package sources

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/relevance"
	"github.com/poiesic/suggestor/storage"
)

const (
	// DefaultLearnedLimit is the number of learned matches kept per query.
	DefaultLearnedLimit = 5

	// variantPenalty scales matches found only through a display variant.
	variantPenalty = 0.8
)

// Learned suggests terms from the learned library. Terms whose key starts
// with the normalized query are scored with relevance.LearnedScore; terms
// that only match through a display variant are scored at 80% of that.
type Learned struct {
	terms storage.TermRepository
	limit int
	now   func() time.Time
}

var _ Source = (*Learned)(nil)

// LearnedOption configures a Learned source.
type LearnedOption func(*Learned) error

// WithLearnedLimit sets how many matches are returned.
// Default is DefaultLearnedLimit.
func WithLearnedLimit(limit int) LearnedOption {
	return func(l *Learned) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		l.limit = limit
		return nil
	}
}

// WithLearnedClock overrides the time source used for recency scoring.
func WithLearnedClock(now func() time.Time) LearnedOption {
	return func(l *Learned) error {
		if now != nil {
			l.now = now
		}
		return nil
	}
}

// NewLearned creates a learned-library source.
func NewLearned(terms storage.TermRepository, opts ...LearnedOption) (*Learned, error) {
	if terms == nil {
		return nil, ErrTermRepositoryRequired
	}

	l := &Learned{
		terms: terms,
		limit: DefaultLearnedLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Learned) Name() string          { return "learned" }
func (l *Learned) Kind() core.SourceKind { return core.SourceKindLearned }

type learnedMatch struct {
	term  *core.Term
	text  string
	score float64
}

func (l *Learned) Suggest(ctx context.Context, query string) ([]*core.Suggestion, error) {
	key := core.Normalize(query)
	if utf8.RuneCountInString(key) < core.MinKeyLength {
		return nil, nil
	}

	now := l.now()
	var matches []learnedMatch

	for term, err := range l.terms.ScanPrefix(ctx, key) {
		if err != nil {
			return nil, fmt.Errorf("scanning learned prefix %q: %w", key, err)
		}
		matches = append(matches, learnedMatch{
			term:  term,
			text:  term.DisplayText(),
			score: relevance.LearnedScore(term, key, now),
		})
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	for term, err := range l.terms.ScanAll(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scanning learned variants: %w", err)
		}
		if strings.HasPrefix(term.Key, key) {
			continue
		}
		variant, ok := matchingVariant(term, lowered, key)
		if !ok {
			continue
		}
		matches = append(matches, learnedMatch{
			term:  term,
			text:  variant,
			score: relevance.LearnedScore(term, key, now) * variantPenalty,
		})
	}

	slices.SortStableFunc(matches, func(a, b learnedMatch) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(matches) > l.limit {
		matches = matches[:l.limit]
	}

	results := make([]*core.Suggestion, 0, len(matches))
	for _, m := range matches {
		results = append(results, &core.Suggestion{
			Text:       m.text,
			Kind:       core.SourceKindLearned,
			RawScore:   m.score,
			Category:   "learned",
			UsageCount: m.term.Frequency,
		})
	}
	return results, nil
}

// matchingVariant returns the first display variant containing the query,
// compared either lower-cased or normalized.
func matchingVariant(term *core.Term, lowered, key string) (string, bool) {
	for _, v := range term.DisplayVariants {
		if strings.Contains(strings.ToLower(v), lowered) || strings.Contains(core.Normalize(v), key) {
			return v, true
		}
	}
	return "", false
}
