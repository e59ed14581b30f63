package docindex

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/suggestor/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ sources.CompletionIndex = (*Index)(nil)

func setupTestIndex(t *testing.T, docs ...Document) *Index {
	idx, err := NewMemIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	if len(docs) > 0 {
		require.NoError(t, idx.IndexDocuments(context.Background(), docs...))
	}
	return idx
}

func TestLookupFilenames_Prefix(t *testing.T) {
	idx := setupTestIndex(t,
		Document{Filename: "Budget_2025.pdf"},
		Document{Filename: "budget_annexe.pdf"},
		Document{Filename: "Rapport annuel.docx"},
		Document{Filename: "Décret 2024-01.pdf"},
	)
	ctx := context.Background()

	names, err := idx.LookupFilenames(ctx, "BUDGET", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget_2025.pdf", "budget_annexe.pdf"}, names)

	names, err = idx.LookupFilenames(ctx, "décret", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Décret 2024-01.pdf"}, names)

	names, err = idx.LookupFilenames(ctx, "annexe", "", 10)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLookupFilenames_Scope(t *testing.T) {
	idx := setupTestIndex(t,
		Document{Filename: "rapport_nord.pdf", Scope: "nord"},
		Document{Filename: "rapport_sud.pdf", Scope: "sud"},
		Document{Filename: "rapport_commun.pdf", Scope: "nord"},
		Document{Filename: "rapport_commun.pdf", Scope: "sud"},
	)
	ctx := context.Background()

	names, err := idx.LookupFilenames(ctx, "rapport", "nord", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"rapport_commun.pdf", "rapport_nord.pdf"}, names)

	// Unscoped lookups collapse the duplicate filename
	names, err = idx.LookupFilenames(ctx, "rapport", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"rapport_commun.pdf", "rapport_nord.pdf", "rapport_sud.pdf"}, names)
}

func TestLookupFilenames_Limit(t *testing.T) {
	idx := setupTestIndex(t,
		Document{Filename: "loi_1.pdf"},
		Document{Filename: "loi_2.pdf"},
		Document{Filename: "loi_3.pdf"},
	)

	names, err := idx.LookupFilenames(context.Background(), "loi", "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"loi_1.pdf", "loi_2.pdf"}, names)

	_, err = idx.LookupFilenames(context.Background(), "loi", "", 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestIndexDocuments_ReplaceAndRemove(t *testing.T) {
	ctx := context.Background()
	doc := Document{Filename: "arrêté.pdf", Scope: "est"}
	idx := setupTestIndex(t, doc, doc)

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	require.NoError(t, idx.RemoveDocuments(ctx, doc, Document{Filename: "absent.pdf"}))

	count, err = idx.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndexDocuments_RejectsEmptyFilename(t *testing.T) {
	idx := setupTestIndex(t)

	err := idx.IndexDocuments(context.Background(), Document{Filename: "  ?? "})
	assert.ErrorIs(t, err, ErrEmptyFilename)
}

func TestOpenIndex_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.bleve")
	ctx := context.Background()

	idx, err := OpenIndex(path)
	require.NoError(t, err)
	require.NoError(t, idx.IndexDocuments(ctx, Document{Filename: "circulaire.pdf"}))
	require.NoError(t, idx.Close())

	idx, err = OpenIndex(path)
	require.NoError(t, err)
	defer idx.Close()

	names, err := idx.LookupFilenames(ctx, "circ", "", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"circulaire.pdf"}, names)
}
