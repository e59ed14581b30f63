package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/relevance"
	"github.com/poiesic/suggestor/sources"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxResults is the number of suggestions returned when the caller
	// does not ask for a specific count.
	DefaultMaxResults = 8
	// DefaultMinQueryLength is the shortest normalized query that is ranked.
	DefaultMinQueryLength = 2
	// DefaultSourceTimeout bounds a single source call.
	DefaultSourceTimeout = 250 * time.Millisecond
	// DefaultOverallTimeout bounds a whole ranking request.
	DefaultOverallTimeout = 750 * time.Millisecond
	// DefaultPoolSize is the number of workers shared by all requests.
	DefaultPoolSize = 64
)

// Aggregator ranks suggestions from a fixed set of sources.
type Aggregator struct {
	sources        []sources.Source
	pool           *ants.Pool
	slots          *semaphore.Weighted
	poolSize       int
	maxResults     int
	minQueryLength int
	sourceTimeout  time.Duration
	overallTimeout time.Duration
	monitor        Monitor
	logger         *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent source calls.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(a *Aggregator) error {
		if size < 1 {
			size = 1
		}
		a.poolSize = size
		return nil
	}
}

// WithMaxResults sets the default result count.
func WithMaxResults(n int) Option {
	return func(a *Aggregator) error {
		if n <= 0 {
			return ErrInvalidMaxResults
		}
		a.maxResults = n
		return nil
	}
}

// WithMinQueryLength sets the shortest normalized query, in runes, that is ranked.
func WithMinQueryLength(n int) Option {
	return func(a *Aggregator) error {
		if n < 1 {
			n = 1
		}
		a.minQueryLength = n
		return nil
	}
}

// WithTimeouts sets the per-source and overall request timeouts.
func WithTimeouts(perSource, overall time.Duration) Option {
	return func(a *Aggregator) error {
		if perSource <= 0 || overall <= 0 {
			return ErrInvalidTimeout
		}
		a.sourceTimeout = perSource
		a.overallTimeout = overall
		return nil
	}
}

// WithMonitor installs hooks observing every request.
func WithMonitor(monitor Monitor) Option {
	return func(a *Aggregator) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		a.monitor = monitor
		return nil
	}
}

// NewAggregator creates an aggregator over srcs. Sources are called, and
// their results tie-broken, in the order given.
func NewAggregator(srcs []sources.Source, opts ...Option) (*Aggregator, error) {
	for _, src := range srcs {
		if src == nil {
			return nil, ErrNilSource
		}
	}

	a := &Aggregator{
		sources:        srcs,
		poolSize:       DefaultPoolSize,
		maxResults:     DefaultMaxResults,
		minQueryLength: DefaultMinQueryLength,
		sourceTimeout:  DefaultSourceTimeout,
		overallTimeout: DefaultOverallTimeout,
		monitor:        &noopMonitor{},
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(a.poolSize)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	a.slots = semaphore.NewWeighted(int64(a.poolSize))

	return a, nil
}

// Release stops the worker pool. The aggregator must not be used afterwards.
func (a *Aggregator) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

// Rank returns up to maxResults suggestion texts for query. A maxResults of
// zero or less selects the configured default.
func (a *Aggregator) Rank(ctx context.Context, query string, maxResults int) []string {
	ranked := a.RankDetailed(ctx, query, maxResults)
	texts := make([]string, len(ranked))
	for i, s := range ranked {
		texts[i] = s.Text
	}
	return texts
}

// outcome is one source's contribution to a request.
type outcome struct {
	index       int
	suggestions []*core.Suggestion
	err         error
	elapsed     time.Duration
}

// RankDetailed is Rank returning the full suggestions with provenance and
// effective scores. It never fails: the worst case is the fallback list.
func (a *Aggregator) RankDetailed(ctx context.Context, query string, maxResults int) []*core.Suggestion {
	a.monitor.Start(query)

	if maxResults <= 0 {
		maxResults = a.maxResults
	}
	if utf8.RuneCountInString(core.Normalize(query)) < a.minQueryLength {
		a.monitor.Finish(query, nil)
		return []*core.Suggestion{}
	}

	outcomes := a.collect(ctx, query)

	failed := 0
	for _, out := range outcomes {
		if out.err != nil {
			failed++
			a.logger.Warn("suggestion source failed", "source", a.sources[out.index].Name(), "query", query, "err", out.err)
		}
	}

	// An abandoned request gets whatever completed, never the fallback
	if ctx.Err() == nil && len(outcomes) > 0 && failed == len(outcomes) {
		return a.fallback(query, maxResults, ErrAllSourcesFailed)
	}

	ranked, err := merge(query, outcomes, maxResults)
	if err != nil {
		a.logger.Error("failed to merge suggestions", "query", query, "err", err)
		return a.fallback(query, maxResults, err)
	}

	a.monitor.Finish(query, ranked)
	return ranked
}

// collect runs every source on the pool and gathers outcomes in source order.
// Sources that have not reported by the overall deadline, or by the time the
// caller gives up, are recorded as timed out.
func (a *Aggregator) collect(ctx context.Context, query string) []outcome {
	requestCtx, cancel := context.WithTimeout(ctx, a.overallTimeout)
	defer cancel()

	outcomes := make([]outcome, len(a.sources))
	reported := make([]bool, len(a.sources))
	// Buffered so late workers never block after the request has returned
	done := make(chan outcome, len(a.sources))

	pending := 0
	for i, src := range a.sources {
		outcomes[i].index = i
		// A busy pool delays the source until a worker frees up or the
		// request deadline passes; sources never started are timed out below
		if err := a.slots.Acquire(requestCtx, 1); err != nil {
			break
		}
		err := a.pool.Submit(func() {
			defer a.slots.Release(1)
			done <- a.call(requestCtx, i, src, query)
		})
		if err != nil {
			a.slots.Release(1)
			outcomes[i].err = fmt.Errorf("submitting source: %w", err)
			reported[i] = true
			a.monitor.SourceDone(src.Name(), 0, 0, outcomes[i].err)
			continue
		}
		pending++
	}

wait:
	for pending > 0 {
		select {
		case out := <-done:
			outcomes[out.index] = out
			reported[out.index] = true
			pending--
			a.monitor.SourceDone(a.sources[out.index].Name(), len(out.suggestions), out.elapsed, out.err)
		case <-requestCtx.Done():
			break wait
		}
	}

	for i := range outcomes {
		if !reported[i] {
			outcomes[i].err = fmt.Errorf("%w: %v", ErrSourceTimeout, requestCtx.Err())
			a.monitor.SourceDone(a.sources[i].Name(), 0, a.overallTimeout, outcomes[i].err)
		}
	}
	return outcomes
}

// call invokes one source under its own deadline, converting panics and
// overruns into errors.
func (a *Aggregator) call(ctx context.Context, index int, src sources.Source, query string) (out outcome) {
	out.index = index
	start := time.Now()

	sourceCtx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	defer func() {
		out.elapsed = time.Since(start)
		if r := recover(); r != nil {
			out.suggestions = nil
			out.err = fmt.Errorf("%w: %v", ErrSourcePanicked, r)
		}
	}()

	suggestions, err := src.Suggest(sourceCtx, query)
	if err == nil && errors.Is(sourceCtx.Err(), context.DeadlineExceeded) {
		err = ErrSourceTimeout
	}
	if err != nil {
		return outcome{index: index, err: err}
	}
	out.suggestions = suggestions
	return out
}

func (a *Aggregator) fallback(query string, maxResults int, reason error) []*core.Suggestion {
	a.logger.Warn("returning fallback suggestions", "query", query, "reason", reason)
	a.monitor.Fallback(query, reason)
	results := Fallback(query, maxResults)
	a.monitor.Finish(query, results)
	return results
}

// merge deduplicates, re-scores, sorts and truncates. A panic anywhere in
// here is reported as ErrMergeFailed.
func merge(query string, outcomes []outcome, limit int) (ranked []*core.Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			ranked = nil
			err = fmt.Errorf("%w: %v", ErrMergeFailed, r)
		}
	}()

	q := strings.TrimSpace(query)
	positions := make(map[string]int)
	merged := make([]*core.Suggestion, 0)

	for _, out := range outcomes {
		if out.err != nil {
			continue
		}
		for _, s := range out.suggestions {
			if s == nil || strings.TrimSpace(s.Text) == "" {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(s.Text))
			candidate := *s

			if pos, dup := positions[key]; dup {
				// Keep the first position so ties stay in source order
				if candidate.RawScore > merged[pos].RawScore {
					merged[pos] = &candidate
				}
				continue
			}
			positions[key] = len(merged)
			merged = append(merged, &candidate)
		}
	}

	for _, s := range merged {
		s.Score = s.RawScore * relevance.Relevance(s.Text, q)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
