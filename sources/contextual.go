package sources

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/suggestor/core"
)

const contextualScore = 0.7

// ContextRule relates queries matching Pattern to a list of phrases.
type ContextRule struct {
	Pattern string
	Phrases []string
	Note    string
}

type compiledRule struct {
	trigger *regexp.Regexp
	phrases []string
	keys    []string
	note    string
}

// Contextual expands a query into related phrases when it matches a trigger
// pattern. Only phrases that contain the query itself are emitted.
type Contextual struct {
	rules []compiledRule
}

var _ Source = (*Contextual)(nil)

// NewContextual compiles rules. Patterns are matched against the normalized
// query, so they should be written in lower case.
func NewContextual(rules []ContextRule) (*Contextual, error) {
	c := &Contextual{rules: make([]compiledRule, 0, len(rules))}
	for _, rule := range rules {
		trigger, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, rule.Pattern, err)
		}
		keys := make([]string, len(rule.Phrases))
		for i, phrase := range rule.Phrases {
			keys[i] = core.Normalize(phrase)
		}
		c.rules = append(c.rules, compiledRule{
			trigger: trigger,
			phrases: rule.Phrases,
			keys:    keys,
			note:    rule.Note,
		})
	}
	return c, nil
}

func (c *Contextual) Name() string          { return "contextual" }
func (c *Contextual) Kind() core.SourceKind { return core.SourceKindSemantic }

func (c *Contextual) Suggest(ctx context.Context, query string) ([]*core.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := core.Normalize(query)
	if q == "" {
		return nil, nil
	}

	var results []*core.Suggestion
	for _, rule := range c.rules {
		if !rule.trigger.MatchString(q) {
			continue
		}
		for i, phrase := range rule.phrases {
			if !strings.Contains(rule.keys[i], q) {
				continue
			}
			results = append(results, &core.Suggestion{
				Text:        phrase,
				Kind:        core.SourceKindSemantic,
				RawScore:    contextualScore,
				Category:    "contextual",
				ContextNote: rule.note,
			})
		}
	}
	return results, nil
}
