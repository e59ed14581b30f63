package learning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/storage"
)

const (
	// phraseWeight is added to the full normalized phrase on every recorded search.
	phraseWeight = 1.0
	// wordWeight is added to each constituent word of a recorded search.
	wordWeight = 0.5
)

// Learner records issued searches into the term library.
//
// Recording is best-effort: Record never returns an error and never panics on
// storage failure. Failures are logged and the event is dropped.
type Learner struct {
	terms    storage.TermRepository
	trigger  SweepTrigger
	observer Observer
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Learner.
type Option func(*Learner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithClock overrides the time source used for LastUsedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(l *Learner) error {
		if now != nil {
			l.now = now
		}
		return nil
	}
}

// WithSweepTrigger installs the hook run after every recorded search.
// Default is no trigger.
func WithSweepTrigger(trigger SweepTrigger) Option {
	return func(l *Learner) error {
		if trigger == nil {
			trigger = noopTrigger{}
		}
		l.trigger = trigger
		return nil
	}
}

// WithObserver installs an Observer notified of recordings.
func WithObserver(observer Observer) Option {
	return func(l *Learner) error {
		if observer == nil {
			observer = noopObserver{}
		}
		l.observer = observer
		return nil
	}
}

// NewLearner creates a new learning pipeline over terms.
func NewLearner(terms storage.TermRepository, opts ...Option) (*Learner, error) {
	if terms == nil {
		return nil, ErrTermRepositoryRequired
	}

	l := &Learner{
		terms:    terms,
		trigger:  noopTrigger{},
		observer: noopObserver{},
		now:      time.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// RecordOption carries optional attributes of a recorded search.
type RecordOption func(*recordOptions)

type recordOptions struct {
	userID string
}

// WithUser attributes the search to a user. The attribution is logged but
// does not partition the library.
func WithUser(userID string) RecordOption {
	return func(o *recordOptions) {
		o.userID = userID
	}
}

// Record learns from one issued query. Queries whose normalized form is
// shorter than two runes are ignored and not counted.
func (l *Learner) Record(ctx context.Context, query string, opts ...RecordOption) {
	if err := l.record(ctx, query, opts...); err != nil {
		l.logger.Warn("search not recorded", "query", query, "err", err)
	}
}

func (l *Learner) record(ctx context.Context, query string, opts ...RecordOption) error {
	var options recordOptions
	for _, opt := range opts {
		opt(&options)
	}

	key := core.Normalize(query)
	if utf8.RuneCountInString(key) < core.MinKeyLength {
		l.logger.Debug("query too short to learn", "query", query)
		return nil
	}

	now := l.now()
	if options.userID != "" {
		l.logger.Debug("recording search", "key", key, "user", options.userID)
	}

	if _, err := l.terms.UpsertIncrement(ctx, key, strings.TrimSpace(query), phraseWeight, now); err != nil {
		return fmt.Errorf("recording phrase %q: %w", key, err)
	}

	for _, word := range core.ExtractWords(query) {
		if _, err := l.terms.UpsertIncrement(ctx, word, word, wordWeight, now); err != nil {
			return fmt.Errorf("recording word %q: %w", word, err)
		}
	}

	stats, err := l.terms.RecordSearchEvent(ctx, now)
	if err != nil {
		return fmt.Errorf("updating library stats: %w", err)
	}
	l.observer.Recorded(key, stats)

	l.trigger.AfterRecord(ctx, stats)
	return nil
}
