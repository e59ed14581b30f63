package storage

import (
	"context"
	"iter"
	"time"

	"github.com/poiesic/suggestor/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// TermRepository owns the learned term library and its aggregate statistics.
//
// Mutations of a single key are linearizable: concurrent UpsertIncrement calls
// for the same key never lose an increment. Callers never read-modify-write
// Term fields themselves.
type TermRepository interface {
	Repository

	// GetTerm retrieves a single term by normalized key.
	// Returns ErrNotFound if the term doesn't exist.
	GetTerm(ctx context.Context, key string) (*core.Term, error)

	// UpsertIncrement adds amount to the term's frequency, creating the term
	// with Frequency = amount if absent. LastUsedAt is set to at and variant
	// is added to DisplayVariants if not already present.
	// Returns true if a new term was created.
	UpsertIncrement(ctx context.Context, key, variant string, amount float64, at time.Time) (bool, error)

	// RemoveTerm deletes a term. Removing an absent key is a no-op.
	RemoveTerm(ctx context.Context, key string) error

	// RemoveTermIf deletes a term only if cond, evaluated against the term as
	// stored in the same transaction, returns true. Returns false when the
	// term is absent or cond rejects it.
	RemoveTermIf(ctx context.Context, key string, cond func(*core.Term) bool) (bool, error)

	// ScanPrefix lazily yields every term whose key starts with prefix,
	// in key order. Each call starts a fresh scan over a consistent snapshot.
	ScanPrefix(ctx context.Context, prefix string) iter.Seq2[*core.Term, error]

	// ScanAll lazily yields every term in key order.
	ScanAll(ctx context.Context) iter.Seq2[*core.Term, error]

	// CountTerms returns the number of terms currently stored.
	CountTerms(ctx context.Context) (int64, error)

	// LoadStats returns the library statistics, zero-valued if none were saved.
	LoadStats(ctx context.Context) (core.LibraryStats, error)

	// SaveStats replaces the library statistics.
	SaveStats(ctx context.Context, stats core.LibraryStats) error

	// ReconcileStats recounts the stored terms and writes the result to
	// UniqueTermCount in the same transaction.
	ReconcileStats(ctx context.Context, at time.Time) (core.LibraryStats, error)

	// RecordSearchEvent increments TotalSearches, refreshes LastUpdatedAt and
	// returns the updated statistics.
	RecordSearchEvent(ctx context.Context, at time.Time) (core.LibraryStats, error)
}

// SearchCountRepository keeps per-query search statistics, separate from the term library.
type SearchCountRepository interface {
	Repository

	// IncrementSearchCount adds one search of the normalized query.
	IncrementSearchCount(ctx context.Context, query string, at time.Time) error

	// GetSearchCount retrieves the statistic for a query.
	// Returns ErrNotFound if the query was never counted.
	GetSearchCount(ctx context.Context, query string) (*core.SearchCount, error)

	// TopSearches returns up to limit statistics ordered by count descending.
	TopSearches(ctx context.Context, limit int) ([]*core.SearchCount, error)

	// ResetSearchCounts deletes every search statistic. Idempotent.
	ResetSearchCounts(ctx context.Context) error
}
