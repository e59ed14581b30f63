package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/storage"
)

const (
	// DefaultMinFrequency is the frequency below which a stale term is removed.
	DefaultMinFrequency = 2.0
	// DefaultMaxAge is how long a low-frequency term may go unused.
	DefaultMaxAge = 30 * 24 * time.Hour
)

// SweepResult summarizes one retention sweep.
type SweepResult struct {
	Scanned   int
	Removed   int
	Remaining int64
}

// Sweeper removes learned terms that are both rarely used and stale.
type Sweeper struct {
	terms        storage.TermRepository
	minFrequency float64
	maxAge       time.Duration
	observer     Observer
	now          func() time.Time
	logger       *slog.Logger
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper) error

// WithRetention sets the frequency floor and the maximum idle age.
func WithRetention(minFrequency float64, maxAge time.Duration) SweeperOption {
	return func(s *Sweeper) error {
		if minFrequency <= 0 || maxAge <= 0 {
			return ErrInvalidRetention
		}
		s.minFrequency = minFrequency
		s.maxAge = maxAge
		return nil
	}
}

// WithSweeperClock overrides the sweep time source.
func WithSweeperClock(now func() time.Time) SweeperOption {
	return func(s *Sweeper) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// WithSweeperLogger sets a custom logger.
func WithSweeperLogger(logger *slog.Logger) SweeperOption {
	return func(s *Sweeper) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSweepObserver installs an Observer notified after each sweep.
func WithSweepObserver(observer Observer) SweeperOption {
	return func(s *Sweeper) error {
		if observer == nil {
			observer = noopObserver{}
		}
		s.observer = observer
		return nil
	}
}

// NewSweeper creates a retention sweeper.
func NewSweeper(terms storage.TermRepository, opts ...SweeperOption) (*Sweeper, error) {
	if terms == nil {
		return nil, ErrTermRepositoryRequired
	}

	s := &Sweeper{
		terms:        terms,
		minFrequency: DefaultMinFrequency,
		maxAge:       DefaultMaxAge,
		observer:     noopObserver{},
		now:          time.Now,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Sweep deletes every term with Frequency below the floor whose LastUsedAt is
// older than the maximum age, then reconciles the stats record.
// Deletion is not atomic across the sweep: a failure leaves earlier deletions
// in place and the next sweep picks up the rest.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	now := s.now()
	cutoff := now.Add(-s.maxAge)

	isStale := func(term *core.Term) bool {
		return term.Frequency < s.minFrequency && term.LastUsedAt.Before(cutoff)
	}

	var result SweepResult
	var stale []string
	for term, err := range s.terms.ScanAll(ctx) {
		if err != nil {
			return result, fmt.Errorf("scanning terms: %w", err)
		}
		result.Scanned++
		if isStale(term) {
			stale = append(stale, term.Key)
		}
	}

	// Staleness is checked again at delete time: a search recorded since the
	// scan keeps its term
	var errs []error
	for _, key := range stale {
		removed, err := s.terms.RemoveTermIf(ctx, key, isStale)
		if err != nil {
			s.logger.Warn("failed to remove stale term", "key", key, "err", err)
			errs = append(errs, err)
			continue
		}
		if !removed {
			s.logger.Debug("term used during sweep, kept", "key", key)
			continue
		}
		result.Removed++
	}

	stats, err := s.terms.ReconcileStats(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("reconciling stats: %w", err))
	} else {
		result.Remaining = stats.UniqueTermCount
	}

	s.logger.Info("retention sweep finished", "scanned", result.Scanned, "removed", result.Removed, "remaining", result.Remaining)
	s.observer.Swept(result)

	return result, errors.Join(errs...)
}
