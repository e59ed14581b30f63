// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package suggestor is an adaptive query-suggestion engine. It learns from
// the searches users submit and merges that learned vocabulary with curated
// terms, contextual expansions, spelling corrections and document filename
// completions into a single ranked list of suggestions.
package suggestor

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/suggestor/config"
	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/docindex"
	"github.com/poiesic/suggestor/learning"
	"github.com/poiesic/suggestor/metrics"
	"github.com/poiesic/suggestor/reindex"
	"github.com/poiesic/suggestor/sources"
	"github.com/poiesic/suggestor/storage"
	"github.com/poiesic/suggestor/storage/badger"
	"github.com/poiesic/suggestor/suggest"
)

// drainTimeout bounds how long Close waits for queued recordings.
const drainTimeout = 10 * time.Second

// ErrEngineClosed is returned by administrative operations after Close.
var ErrEngineClosed = errors.New("engine closed")

// Engine ties the term library, the learning pipeline, the suggestion
// sources and the document index together.
type Engine struct {
	backend    *badger.Backend
	terms      storage.TermRepository
	counts     storage.SearchCountRepository
	index      *docindex.Index
	learner    *learning.Learner
	sweeper    *learning.Sweeper
	aggregator *suggest.Aggregator
	recordPool *ants.Pool
	recording  sync.WaitGroup
	mu         sync.RWMutex
	closed     bool
	cfg        *config.Config
	now        func() time.Time
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger  *slog.Logger
	monitor *metrics.PrometheusMonitor
	now     func() time.Time
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics exports suggestion and learning activity through monitor.
func WithMetrics(monitor *metrics.PrometheusMonitor) EngineOption {
	return func(o *engineOptions) {
		o.monitor = monitor
	}
}

// WithClock overrides the time source used for learning, retention and scoring.
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewEngine opens the term library and document index described by cfg.
// A nil cfg selects config.DefaultConfig().
func NewEngine(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		backend: backend,
		terms:   badger.NewTermRepository(backend),
		counts:  badger.NewSearchCountRepository(backend),
		cfg:     cfg,
		now:     options.now,
		logger:  options.logger,
	}

	if err := e.wire(options); err != nil {
		e.release()
		return nil, err
	}
	return e, nil
}

func (e *Engine) wire(options *engineOptions) error {
	var err error
	cfg := e.cfg

	if cfg.Index.Path == "" {
		e.index, err = docindex.NewMemIndex(docindex.WithLogger(e.logger))
	} else {
		e.index, err = docindex.OpenIndex(cfg.Index.Path, docindex.WithLogger(e.logger))
	}
	if err != nil {
		return err
	}

	var observer learning.Observer
	var monitor suggest.Monitor
	if options.monitor != nil {
		observer = options.monitor
		monitor = options.monitor
	}

	e.sweeper, err = learning.NewSweeper(e.terms,
		learning.WithRetention(cfg.Retention.MinFrequency, cfg.Retention.MaxAge.Duration),
		learning.WithSweeperClock(e.now),
		learning.WithSweeperLogger(e.logger),
		learning.WithSweepObserver(observer),
	)
	if err != nil {
		return err
	}

	trigger, err := learning.EveryN(cfg.Learning.SweepInterval, e.sweeper)
	if err != nil {
		return err
	}

	e.learner, err = learning.NewLearner(e.terms,
		learning.WithClock(e.now),
		learning.WithLogger(e.logger),
		learning.WithSweepTrigger(trigger),
		learning.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	srcs, err := e.buildSources()
	if err != nil {
		return err
	}

	e.aggregator, err = suggest.NewAggregator(srcs,
		suggest.WithLogger(e.logger),
		suggest.WithPoolSize(cfg.Suggest.PoolSize),
		suggest.WithMaxResults(cfg.Suggest.MaxResults),
		suggest.WithMinQueryLength(cfg.Suggest.MinQueryLength),
		suggest.WithTimeouts(cfg.Suggest.SourceTimeout.Duration, cfg.Suggest.OverallTimeout.Duration),
		suggest.WithMonitor(monitor),
	)
	if err != nil {
		return err
	}

	// Recording is best-effort: when every worker is busy the event is dropped
	e.recordPool, err = ants.NewPool(cfg.Learning.RecordPoolSize, ants.WithNonblocking(true))
	return err
}

// buildSources returns the sources in the order their results are tie-broken.
func (e *Engine) buildSources() ([]sources.Source, error) {
	completion, err := sources.NewCompletion(e.index, e.cfg.Index.LookupLimit)
	if err != nil {
		return nil, err
	}
	contextual, err := sources.NewContextual(sources.DefaultContextRules)
	if err != nil {
		return nil, err
	}
	learned, err := sources.NewLearned(e.terms,
		sources.WithLearnedLimit(e.cfg.Suggest.LearnedLimit),
		sources.WithLearnedClock(e.now),
	)
	if err != nil {
		return nil, err
	}

	return []sources.Source{
		completion,
		sources.NewPopular(sources.DefaultPopularTerms),
		contextual,
		sources.NewSpelling(sources.DefaultCorrections),
		learned,
	}, nil
}

// Close waits for queued recordings, then releases pools, the index and the
// term library. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		e.recording.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(drainTimeout):
		e.logger.Warn("closing with recordings still in flight")
	}

	return e.release()
}

func (e *Engine) release() error {
	if e.recordPool != nil {
		e.recordPool.Release()
	}
	if e.aggregator != nil {
		e.aggregator.Release()
	}

	var errs []error
	if e.index != nil {
		if err := e.index.Close(); err != nil {
			e.logger.Error("error closing document index", "err", err)
			errs = append(errs, err)
		}
	}
	if err := e.counts.Close(); err != nil {
		e.logger.Error("error closing search count repository", "err", err)
		errs = append(errs, err)
	}
	if err := e.terms.Close(); err != nil {
		e.logger.Error("error closing term repository", "err", err)
		errs = append(errs, err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

// RecordSearch queues query for learning and returns immediately. Failures,
// including a saturated queue, are logged and otherwise ignored.
func (e *Engine) RecordSearch(query string, opts ...learning.RecordOption) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.logger.Debug("engine closed, search not recorded", "query", query)
		return
	}

	e.recording.Add(1)
	err := e.recordPool.Submit(func() {
		defer e.recording.Done()
		e.Learn(context.Background(), query, opts...)
	})
	if err != nil {
		e.recording.Done()
		e.logger.Warn("search not recorded", "query", query, "err", err)
	}
}

// Learn records query synchronously. Like RecordSearch it never fails; it
// returns once the term library and search counts have been updated.
func (e *Engine) Learn(ctx context.Context, query string, opts ...learning.RecordOption) {
	e.learner.Record(ctx, query, opts...)

	key := core.Normalize(query)
	if utf8.RuneCountInString(key) < core.MinKeyLength {
		return
	}
	if err := e.counts.IncrementSearchCount(ctx, key, e.now()); err != nil {
		e.logger.Warn("search count not updated", "query", key, "err", err)
	}
}

// SuggestOption configures a single suggestion request.
type SuggestOption func(*suggestOptions)

type suggestOptions struct {
	maxResults int
	scope      string
}

// WithMaxResults limits the number of suggestions returned.
func WithMaxResults(n int) SuggestOption {
	return func(o *suggestOptions) {
		o.maxResults = n
	}
}

// WithScope restricts document completions to scope.
func WithScope(scope string) SuggestOption {
	return func(o *suggestOptions) {
		o.scope = scope
	}
}

// Suggest returns ranked suggestion texts for query. It never fails.
func (e *Engine) Suggest(ctx context.Context, query string, opts ...SuggestOption) []string {
	detailed := e.SuggestDetailed(ctx, query, opts...)
	texts := make([]string, len(detailed))
	for i, s := range detailed {
		texts[i] = s.Text
	}
	return texts
}

// SuggestDetailed returns ranked suggestions with provenance and scores.
func (e *Engine) SuggestDetailed(ctx context.Context, query string, opts ...SuggestOption) []*core.Suggestion {
	var options suggestOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.scope != "" {
		ctx = sources.WithScope(ctx, options.scope)
	}
	return e.aggregator.RankDetailed(ctx, query, options.maxResults)
}

// InspectLibrary lists terms with frequency of at least minFrequency, most
// frequent first, along with the current library statistics. A limit of
// zero or less lists every matching term.
func (e *Engine) InspectLibrary(ctx context.Context, minFrequency float64, limit int) (*core.LibraryReport, error) {
	if e.isClosed() {
		return nil, ErrEngineClosed
	}

	var terms []*core.Term
	for term, err := range e.terms.ScanAll(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scanning library: %w", err)
		}
		if term.Frequency >= minFrequency {
			terms = append(terms, term)
		}
	}

	slices.SortFunc(terms, func(a, b *core.Term) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}

	stats, err := e.terms.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading library stats: %w", err)
	}
	return &core.LibraryReport{Terms: terms, Stats: stats}, nil
}

// ResetStatistics clears all per-query search counts. The term library is
// untouched. Resetting an empty store succeeds.
func (e *Engine) ResetStatistics(ctx context.Context) error {
	if e.isClosed() {
		return ErrEngineClosed
	}
	return e.counts.ResetSearchCounts(ctx)
}

// TopSearches returns the most frequently submitted queries.
func (e *Engine) TopSearches(ctx context.Context, limit int) ([]*core.SearchCount, error) {
	if e.isClosed() {
		return nil, ErrEngineClosed
	}
	return e.counts.TopSearches(ctx, limit)
}

// Sweep runs the retention sweep immediately.
func (e *Engine) Sweep(ctx context.Context) (learning.SweepResult, error) {
	if e.isClosed() {
		return learning.SweepResult{}, ErrEngineClosed
	}
	return e.sweeper.Sweep(ctx)
}

// IndexDocuments adds documents to the completion index.
func (e *Engine) IndexDocuments(ctx context.Context, docs ...docindex.Document) error {
	if e.isClosed() {
		return ErrEngineClosed
	}
	return e.index.IndexDocuments(ctx, docs...)
}

// RemoveDocuments removes documents from the completion index.
func (e *Engine) RemoveDocuments(ctx context.Context, docs ...docindex.Document) error {
	if e.isClosed() {
		return ErrEngineClosed
	}
	return e.index.RemoveDocuments(ctx, docs...)
}

// DocumentCount returns the number of indexed documents.
func (e *Engine) DocumentCount() (uint64, error) {
	if e.isClosed() {
		return 0, ErrEngineClosed
	}
	return e.index.Count()
}

// NewReindexer creates a bulk loader feeding the engine's completion index.
func (e *Engine) NewReindexer(cfg *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(e.index, cfg, progress)
}
