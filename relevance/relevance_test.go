package relevance

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/suggestor/core"
	"github.com/stretchr/testify/assert"
)

func TestRelevance(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		query     string
		want      float64
	}{
		{"exact", "décret", "décret", 1.0},
		{"exact ignoring case", "Décret", "DÉCRET", 1.0},
		{"prefix", "décret ministériel", "décret", 0.9},
		{"prefix ignoring case", "Décret ministériel", "déc", 0.9},
		{"contains", "projet de loi", "loi", 0.7},
		{"one substitution", "loi", "lai", 1 - 1.0/3},
		{"nothing in common", "abc", "xyz", 0},
		{"both empty", "", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Relevance(tt.candidate, tt.query), 1e-9)
		})
	}
}

func TestRelevance_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"budget", "bugdet"},
		{"a", "zzzzzzzzzz"},
		{"arrêté", "arrete"},
		{"", "loi"},
	}
	for _, p := range pairs {
		score := Relevance(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"arrêté", "arrete", 2},
		{"décret", "decret", 1},
		{"œuvre", "oeuvre", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "%q vs %q", tt.b, tt.a)
	}
}

func TestLevenshtein_WideAlphabet(t *testing.T) {
	var sb strings.Builder
	for r := rune(0x4e00); r < 0x4e00+200; r++ {
		sb.WriteRune(r)
	}
	wide := sb.String()

	assert.Equal(t, 0, Levenshtein(wide, wide))
	assert.Positive(t, Levenshtein(wide, "loi"))
}

func TestLearnedScore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh frequent exact match", func(t *testing.T) {
		term := &core.Term{Key: "décret", Frequency: 20, LastUsedAt: now}
		// 1*0.6 + 1*0.4 + 0.2
		assert.InDelta(t, 1.2, LearnedScore(term, "décret", now), 1e-9)
	})

	t.Run("frequency saturates at ten", func(t *testing.T) {
		a := &core.Term{Key: "décret", Frequency: 10, LastUsedAt: now}
		b := &core.Term{Key: "décret", Frequency: 500, LastUsedAt: now}
		assert.InDelta(t, LearnedScore(a, "déc", now), LearnedScore(b, "déc", now), 1e-9)
	})

	t.Run("stale term gets no recency bonus", func(t *testing.T) {
		term := &core.Term{Key: "décret ministériel", Frequency: 3, LastUsedAt: now.Add(-40 * 24 * time.Hour)}
		// 0.3*0.6 + 0.9*0.4 + 0
		assert.InDelta(t, 0.54, LearnedScore(term, "décret", now), 1e-9)
	})

	t.Run("half-way recency", func(t *testing.T) {
		term := &core.Term{Key: "loi", Frequency: 1, LastUsedAt: now.Add(-15 * 24 * time.Hour)}
		// 0.1*0.6 + 1*0.4 + 0.5*0.2
		assert.InDelta(t, 0.56, LearnedScore(term, "loi", now), 1e-9)
	})
}

func TestRecencyBonus_FutureIsCapped(t *testing.T) {
	now := time.Now()
	assert.InDelta(t, 0.2, RecencyBonus(now.Add(time.Hour), now), 1e-9)
}
