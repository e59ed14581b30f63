package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/suggestor/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCounts(t *testing.T) {
	termRepo, countRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { countRepo.Close(); termRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now()

	for _, q := range []string{"budget", "loi", "budget", "décret", "budget", "loi"} {
		require.NoError(t, countRepo.IncrementSearchCount(ctx, q, now))
	}

	count, err := countRepo.GetSearchCount(ctx, "budget")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count.Count)

	top, err := countRepo.TopSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "budget", top[0].Query)
	assert.Equal(t, "loi", top[1].Query)

	_, err = countRepo.TopSearches(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	assert.ErrorIs(t, countRepo.IncrementSearchCount(ctx, "", now), storage.ErrInvalidQuery)
}

func TestResetSearchCounts_LeavesTermsAlone(t *testing.T) {
	termRepo, countRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { countRepo.Close(); termRepo.Close(); backend.Close() }()

	ctx := context.Background()
	require.NoError(t, countRepo.IncrementSearchCount(ctx, "budget", time.Now()))
	_, err = termRepo.UpsertIncrement(ctx, "budget", "budget", 1.0, time.Now())
	require.NoError(t, err)

	require.NoError(t, countRepo.ResetSearchCounts(ctx))
	// Idempotent
	require.NoError(t, countRepo.ResetSearchCounts(ctx))

	_, err = countRepo.GetSearchCount(ctx, "budget")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	top, err := countRepo.TopSearches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	term, err := termRepo.GetTerm(ctx, "budget")
	require.NoError(t, err)
	assert.Equal(t, 1.0, term.Frequency)
}
