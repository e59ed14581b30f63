package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/suggestor/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndex struct {
	filenames []string
	err       error

	gotPrefix string
	gotScope  string
	gotLimit  int
}

func (s *stubIndex) LookupFilenames(_ context.Context, prefix, scope string, limit int) ([]string, error) {
	s.gotPrefix, s.gotScope, s.gotLimit = prefix, scope, limit
	return s.filenames, s.err
}

func TestNewCompletion_Validation(t *testing.T) {
	_, err := NewCompletion(nil, 0)
	assert.ErrorIs(t, err, ErrCompletionIndexRequired)

	_, err = NewCompletion(&stubIndex{}, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	c, err := NewCompletion(&stubIndex{}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLookupLimit, c.limit)
}

func TestCompletion_DistinctFilenames(t *testing.T) {
	index := &stubIndex{filenames: []string{"Budget_2024.pdf", "budget_annexe.pdf", "Budget_2024.pdf", ""}}
	c, err := NewCompletion(index, 4)
	require.NoError(t, err)

	results, err := c.Suggest(context.Background(), "  BUDGET ")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Budget_2024.pdf", results[0].Text)
	assert.Equal(t, "budget_annexe.pdf", results[1].Text)
	for _, r := range results {
		assert.Equal(t, core.SourceKindCompletion, r.Kind)
		assert.Equal(t, 1.0, r.RawScore)
	}
	assert.Equal(t, "budget", index.gotPrefix)
	assert.Equal(t, 4, index.gotLimit)
	assert.Empty(t, index.gotScope)
}

func TestCompletion_PassesScope(t *testing.T) {
	index := &stubIndex{}
	c, err := NewCompletion(index, 0)
	require.NoError(t, err)

	ctx := WithScope(context.Background(), "division-nord")
	_, err = c.Suggest(ctx, "rapport")
	require.NoError(t, err)
	assert.Equal(t, "division-nord", index.gotScope)
}

func TestCompletion_IndexFailure(t *testing.T) {
	boom := errors.New("index unreachable")
	c, err := NewCompletion(&stubIndex{err: boom}, 0)
	require.NoError(t, err)

	results, err := c.Suggest(context.Background(), "budget")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
}
