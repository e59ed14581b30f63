package reindex

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/suggestor/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ DocumentSink = (*docindex.Index)(nil)

type flakySink struct {
	mu       sync.Mutex
	failures int
	calls    int
	indexed  []docindex.Document
}

func (s *flakySink) IndexDocuments(_ context.Context, docs ...docindex.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("index busy")
	}
	s.indexed = append(s.indexed, docs...)
	return nil
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.BatchSize = 2
	cfg.ReportInterval = 1
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestNewReindexer_RequiresSink(t *testing.T) {
	_, err := NewReindexer(nil, nil, nil)
	assert.ErrorIs(t, err, ErrSinkRequired)
}

func TestReindexer_IntoIndex(t *testing.T) {
	idx, err := docindex.NewMemIndex()
	require.NoError(t, err)
	defer idx.Close()

	var progress bytes.Buffer
	ri, err := NewReindexer(idx, testConfig(), &progress)
	require.NoError(t, err)

	input := "budget_2025.pdf\nbudget_annexe.pdf\nrapport.pdf\n"
	result, err := ri.Run(context.Background(), strings.NewReader(input), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Indexed)

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	names, err := idx.LookupFilenames(context.Background(), "budget", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget_2025.pdf", "budget_annexe.pdf"}, names)

	assert.Contains(t, progress.String(), "3/3")
	assert.Contains(t, progress.String(), "Indexing complete")
}

func TestReindexer_RetriesTransientFailures(t *testing.T) {
	sink := &flakySink{failures: 2}
	ri, err := NewReindexer(sink, testConfig(), nil)
	require.NoError(t, err)

	result, err := ri.Run(context.Background(), strings.NewReader("a.pdf\nb.pdf\nc.pdf\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Indexed)
	assert.Len(t, sink.indexed, 3)
	assert.Equal(t, 4, sink.calls)
}

func TestReindexer_GivesUpAfterMaxRetries(t *testing.T) {
	sink := &flakySink{failures: 100}
	cfg := testConfig()
	cfg.MaxRetries = 2
	ri, err := NewReindexer(sink, cfg, nil)
	require.NoError(t, err)

	result, err := ri.Run(context.Background(), strings.NewReader("a.pdf\nb.pdf\n"), 0)
	require.Error(t, err)
	assert.Zero(t, result.Indexed)
	assert.Equal(t, 2, sink.calls)
}
