package sources

import (
	"context"
	"testing"

	"github.com/poiesic/suggestor/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextual_EmitsPhrasesContainingQuery(t *testing.T) {
	c, err := NewContextual([]ContextRule{{
		Pattern: `^budg`,
		Phrases: []string{"Budget de l'État", "budget annexe", "finances publiques"},
		Note:    "finances publiques",
	}})
	require.NoError(t, err)

	results, err := c.Suggest(context.Background(), "budget")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Budget de l'État", results[0].Text)
	assert.Equal(t, "budget annexe", results[1].Text)
	for _, r := range results {
		assert.Equal(t, core.SourceKindSemantic, r.Kind)
		assert.Equal(t, 0.7, r.RawScore)
		assert.Equal(t, "finances publiques", r.ContextNote)
		assert.Equal(t, "contextual", r.Category)
	}
}

func TestContextual_TriggerMustMatch(t *testing.T) {
	c, err := NewContextual([]ContextRule{{
		Pattern: `^loi`,
		Phrases: []string{"projet de loi"},
	}})
	require.NoError(t, err)

	// "de loi" is contained in the phrase but doesn't trigger the rule
	results, err := c.Suggest(context.Background(), "de loi")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestContextual_InvalidPattern(t *testing.T) {
	_, err := NewContextual([]ContextRule{{Pattern: `(unclosed`}})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestContextual_DefaultRulesCompile(t *testing.T) {
	c, err := NewContextual(DefaultContextRules)
	require.NoError(t, err)

	results, err := c.Suggest(context.Background(), "Décret")
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}
