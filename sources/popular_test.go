package sources

import (
	"context"
	"testing"

	"github.com/poiesic/suggestor/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoresByText(results []*core.Suggestion) map[string]float64 {
	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.Text] = r.RawScore
	}
	return scores
}

func TestPopular_ScoreTiers(t *testing.T) {
	p := NewPopular([]PopularTerm{
		{Text: "Décret", Category: "texte"},
		{Text: "décret-loi", Category: "texte"},
		{Text: "projet de décret", Category: "texte"},
		{Text: "budget", Category: "finances"},
	})

	results, err := p.Suggest(context.Background(), "décret")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"Décret":           0.9,
		"décret-loi":       0.9,
		"projet de décret": 0.6,
	}, scoresByText(results))
	for _, r := range results {
		assert.Equal(t, core.SourceKindPopular, r.Kind)
		assert.Equal(t, "texte", r.Category)
	}
}

func TestPopular_AccentFoldedMatch(t *testing.T) {
	p := NewPopular([]PopularTerm{
		{Text: "décret"},
		{Text: "arrêté préfectoral"},
	})

	results, err := p.Suggest(context.Background(), "decret")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"décret": 0.3}, scoresByText(results))

	results, err = p.Suggest(context.Background(), "prefectoral")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"arrêté préfectoral": 0.3}, scoresByText(results))
}

func TestPopular_VocabularyOrderAndDuplicates(t *testing.T) {
	p := NewPopular([]PopularTerm{
		{Text: "loi organique"},
		{Text: "projet de loi"},
		{Text: "loi"},
		{Text: "LOI"},
		{Text: "!!"},
	})
	assert.Equal(t, 3, p.Size())

	results, err := p.Suggest(context.Background(), "Loi")
	require.NoError(t, err)
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	assert.Equal(t, []string{"loi organique", "projet de loi", "loi"}, texts)
}

func TestPopular_NoMatch(t *testing.T) {
	p := NewPopular(DefaultPopularTerms)

	results, err := p.Suggest(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = p.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPopular_CancelledContext(t *testing.T) {
	p := NewPopular(DefaultPopularTerms)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Suggest(ctx, "budget")
	assert.ErrorIs(t, err, context.Canceled)
}
