package suggestor

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/poiesic/suggestor/config"
	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/docindex"
	"github.com/poiesic/suggestor/learning"
	"github.com/poiesic/suggestor/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	cfg := config.NewConfig(config.WithInMemory(true))
	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestNewEngine(t *testing.T) {
	t.Run("create on disk", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.NewConfig(
			config.WithStoragePath(filepath.Join(dir, "library")),
			config.WithIndexPath(filepath.Join(dir, "docs.bleve")),
		)
		e, err := NewEngine(cfg)
		require.NoError(t, err)
		require.NotNil(t, e)

		assert.NotNil(t, e.backend)
		assert.NotNil(t, e.index)
		assert.NotNil(t, e.aggregator)
		assert.NoError(t, e.Close())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		e, err := NewEngine(config.NewConfig(config.WithStoragePath(tmpFile)))
		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("invalid config", func(t *testing.T) {
		e, err := NewEngine(config.NewConfig(config.WithMaxResults(0)))
		assert.Error(t, err)
		assert.Nil(t, e)
	})
}

func TestEngine_EndToEnd(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	for range 3 {
		e.Learn(ctx, "décret ministériel")
	}
	e.Learn(ctx, "décret présidentiel")

	report, err := e.InspectLibrary(ctx, 0, 0)
	require.NoError(t, err)

	freq := make(map[string]float64)
	for _, term := range report.Terms {
		freq[term.Key] = term.Frequency
	}
	assert.Equal(t, 3.0, freq["décret ministériel"])
	assert.Equal(t, 1.0, freq["décret présidentiel"])
	assert.Equal(t, 2.0, freq["décret"])
	assert.Equal(t, uint64(4), report.Stats.TotalSearches)

	results := e.Suggest(ctx, "décret", WithMaxResults(8))
	require.Len(t, results, 8)

	ministeriel := slices.Index(results, "décret ministériel")
	presidentiel := slices.Index(results, "décret présidentiel")
	contextual := slices.Index(results, "décret en conseil d'état")
	require.NotEqual(t, -1, ministeriel)
	require.NotEqual(t, -1, contextual)
	assert.Less(t, ministeriel, contextual, "frequent learned term should outrank contextual expansions")
	assert.Less(t, ministeriel, presidentiel, "higher frequency should rank first")
	assert.Equal(t, "décret", results[0])

	// At frequency 3 the learned score (0.74 raw) stays below a popular
	// prefix term (0.9 raw) with the same relevance. Three more searches
	// push the frequency component past it.
	application := slices.Index(results, "décret d'application")
	require.NotEqual(t, -1, application)
	assert.Less(t, application, ministeriel)

	for range 3 {
		e.Learn(ctx, "décret ministériel")
	}
	detailed := e.SuggestDetailed(ctx, "décret", WithMaxResults(8))
	texts := make([]string, len(detailed))
	for i, s := range detailed {
		texts[i] = s.Text
	}
	ministeriel = slices.Index(texts, "décret ministériel")
	application = slices.Index(texts, "décret d'application")
	require.NotEqual(t, -1, ministeriel)
	require.NotEqual(t, -1, application)
	assert.Equal(t, core.SourceKindLearned, detailed[ministeriel].Kind)
	assert.Equal(t, core.SourceKindPopular, detailed[application].Kind)
	assert.Less(t, ministeriel, application, "frequency bonus should lift the learned term over an equally relevant popular term")
	assert.Greater(t, detailed[ministeriel].Score, detailed[application].Score)
}

func TestEngine_SuggestDetailedProvenance(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.IndexDocuments(ctx,
		docindex.Document{Filename: "Budget_2025.pdf", Scope: "nord"},
		docindex.Document{Filename: "budget_sud.pdf", Scope: "sud"},
	))

	detailed := e.SuggestDetailed(ctx, "budget", WithScope("nord"))
	kinds := make(map[string]core.SourceKind)
	for _, s := range detailed {
		kinds[s.Text] = s.Kind
	}
	assert.Equal(t, core.SourceKindCompletion, kinds["Budget_2025.pdf"])
	assert.NotContains(t, kinds, "budget_sud.pdf")
	assert.Equal(t, core.SourceKindPopular, kinds["budget"])

	for i := 1; i < len(detailed); i++ {
		assert.GreaterOrEqual(t, detailed[i-1].Score, detailed[i].Score)
	}
}

func TestEngine_SuggestShortQuery(t *testing.T) {
	e := newTestEngine(t)
	assert.Empty(t, e.Suggest(context.Background(), "d"))
}

func TestEngine_RecordSearchIsAsync(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	e.RecordSearch("Circulaire ministérielle", learning.WithUser("agent-7"))
	e.recording.Wait()
	e.RecordSearch("circulaire ministérielle")
	e.recording.Wait()

	report, err := e.InspectLibrary(ctx, 2, 10)
	require.NoError(t, err)
	require.NotEmpty(t, report.Terms)
	assert.Equal(t, "circulaire ministérielle", report.Terms[0].Key)
	assert.Equal(t, []string{"Circulaire ministérielle", "circulaire ministérielle"}, report.Terms[0].DisplayVariants)

	top, err := e.TopSearches(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "circulaire ministérielle", top[0].Query)
	assert.Equal(t, uint64(2), top[0].Count)
}

func TestEngine_RecordSearchSurvivesClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library")
	cfg := config.NewConfig(config.WithStoragePath(path))

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	e.RecordSearch("rapport annuel")
	require.NoError(t, e.Close())

	// Recording after close is silently dropped
	e.RecordSearch("ignored")
	assert.NoError(t, e.Close())

	e, err = NewEngine(cfg)
	require.NoError(t, err)
	defer e.Close()

	report, err := e.InspectLibrary(context.Background(), 0, 0)
	require.NoError(t, err)
	keys := make([]string, len(report.Terms))
	for i, term := range report.Terms {
		keys[i] = term.Key
	}
	assert.Contains(t, keys, "rapport annuel")
	assert.NotContains(t, keys, "ignored")
}

func TestEngine_InspectLibrary(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	for range 4 {
		e.Learn(ctx, "loi")
	}
	e.Learn(ctx, "arrêté")
	e.Learn(ctx, "arrêté")

	report, err := e.InspectLibrary(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, report.Terms, 2)
	// Phrase and word share a key: 1.5 per search
	assert.Equal(t, "loi", report.Terms[0].Key)
	assert.Equal(t, 6.0, report.Terms[0].Frequency)
	assert.Equal(t, "arrêté", report.Terms[1].Key)
	assert.Equal(t, int64(2), report.Stats.UniqueTermCount)

	report, err = e.InspectLibrary(ctx, 0, 1)
	require.NoError(t, err)
	assert.Len(t, report.Terms, 1)
}

func TestEngine_ResetStatistics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	e.Learn(ctx, "budget")
	require.NoError(t, e.ResetStatistics(ctx))
	require.NoError(t, e.ResetStatistics(ctx))

	top, err := e.TopSearches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	// The term library is untouched
	report, err := e.InspectLibrary(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, report.Terms, 1)
}

func TestEngine_Sweep(t *testing.T) {
	now := time.Now()
	clock := now.Add(-40 * 24 * time.Hour)
	e := newTestEngine(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	e.Learn(ctx, "obsolète")
	clock = now

	result, err := e.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Zero(t, result.Remaining)
}

func TestEngine_Metrics(t *testing.T) {
	monitor := metrics.NewPrometheusMonitor(metrics.DefaultConfig())
	e := newTestEngine(t, WithMetrics(monitor))
	ctx := context.Background()

	e.Learn(ctx, "ordonnance")
	e.Suggest(ctx, "ordonnance")
	_, err := e.Sweep(ctx)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(monitor.Registry(),
		"suggestor_suggest_requests_total",
		"suggestor_learning_recorded_total",
		"suggestor_retention_sweeps_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestEngine_ClosedOperations(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Close())

	ctx := context.Background()
	_, err := e.InspectLibrary(ctx, 0, 0)
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.ErrorIs(t, e.ResetStatistics(ctx), ErrEngineClosed)
	_, err = e.Sweep(ctx)
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.ErrorIs(t, e.IndexDocuments(ctx, docindex.Document{Filename: "a.pdf"}), ErrEngineClosed)
}
