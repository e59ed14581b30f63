package badger

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/storage"
)

// errStopScan unwinds a scan transaction when the consumer stops early.
var errStopScan = errors.New("scan stopped")

// TermRepository implements storage.TermRepository for BadgerDB.
type TermRepository struct {
	backend *Backend
}

var _ storage.TermRepository = (*TermRepository)(nil)

// NewTermRepository creates a new TermRepository.
func NewTermRepository(backend *Backend) *TermRepository {
	return &TermRepository{
		backend: backend,
	}
}

// Close releases resources. TermRepository has no resources to release.
func (r *TermRepository) Close() error {
	return nil
}

// GetTerm retrieves a single term by normalized key.
func (r *TermRepository) GetTerm(ctx context.Context, key string) (*core.Term, error) {
	var result *core.Term
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readTerm(tx, makeTermKey(key))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// UpsertIncrement creates or increments a term in a single transaction.
// The stats record is updated in the same transaction when the term count changes.
func (r *TermRepository) UpsertIncrement(ctx context.Context, key, variant string, amount float64, at time.Time) (bool, error) {
	if err := core.ValidateKey(key); err != nil {
		return false, err
	}
	if err := core.ValidateAmount(amount); err != nil {
		return false, err
	}
	if variant == "" {
		variant = key
	}
	at = at.UTC()

	var created bool
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		created = false
		termKey := makeTermKey(key)

		term, err := readTerm(tx, termKey)
		if err != nil {
			return err
		}

		if term == nil {
			created = true
			term = &core.Term{
				Key:             key,
				DisplayVariants: []string{variant},
				Frequency:       amount,
				CreatedAt:       at,
				LastUsedAt:      at,
			}
		} else {
			term.Frequency += amount
			term.LastUsedAt = at
			if !term.HasVariant(variant) {
				term.DisplayVariants = append(term.DisplayVariants, variant)
			}
		}

		if err := tx.Set(termKey, storage.MarshalTerm(term)); err != nil {
			return err
		}

		if !created {
			return nil
		}
		stats, err := readStats(tx)
		if err != nil {
			return err
		}
		stats.UniqueTermCount++
		stats.LastUpdatedAt = at
		return writeStats(tx, stats)
	})

	return created, err
}

// RemoveTerm deletes a term. Absent keys are ignored.
func (r *TermRepository) RemoveTerm(ctx context.Context, key string) error {
	_, err := r.RemoveTermIf(ctx, key, func(*core.Term) bool { return true })
	return err
}

// RemoveTermIf deletes a term when cond accepts its current value. The term is
// read inside the deleting transaction, so an increment committed after the
// caller last looked at it is seen by cond, and one racing the transaction
// makes it conflict and replay.
func (r *TermRepository) RemoveTermIf(ctx context.Context, key string, cond func(*core.Term) bool) (bool, error) {
	var removed bool
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		removed = false
		termKey := makeTermKey(key)

		term, err := readTerm(tx, termKey)
		if err != nil {
			return err
		}
		if term == nil || !cond(term) {
			return nil
		}

		if err := tx.Delete(termKey); err != nil {
			return err
		}

		stats, err := readStats(tx)
		if err != nil {
			return err
		}
		if stats.UniqueTermCount > 0 {
			stats.UniqueTermCount--
		}
		stats.LastUpdatedAt = time.Now().UTC()
		if err := writeStats(tx, stats); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// ScanPrefix lazily yields every term whose key starts with prefix.
func (r *TermRepository) ScanPrefix(ctx context.Context, prefix string) iter.Seq2[*core.Term, error] {
	return r.scan(ctx, makeTermKey(prefix))
}

// ScanAll lazily yields every term.
func (r *TermRepository) ScanAll(ctx context.Context) iter.Seq2[*core.Term, error] {
	return r.scan(ctx, termKeyPrefix())
}

func (r *TermRepository) scan(ctx context.Context, prefix []byte) iter.Seq2[*core.Term, error] {
	return func(yield func(*core.Term, error) bool) {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var term *core.Term
				err := it.Item().Value(func(val []byte) error {
					var err error
					term, err = storage.UnmarshalTerm(val)
					return err
				})
				if err != nil {
					return err
				}

				if !yield(term, nil) {
					return errStopScan
				}
			}
			return nil
		}, false)

		if err != nil && !errors.Is(err, errStopScan) {
			yield(nil, err)
		}
	}
}

// CountTerms counts stored terms with a key-only iteration.
func (r *TermRepository) CountTerms(ctx context.Context) (int64, error) {
	var count int64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = termKeyPrefix()
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return ctx.Err()
	}, false)
	return count, err
}

// LoadStats returns the library statistics.
func (r *TermRepository) LoadStats(ctx context.Context) (core.LibraryStats, error) {
	var stats core.LibraryStats
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		stats, err = readStats(tx)
		return err
	}, false)
	return stats, err
}

// SaveStats replaces the library statistics.
func (r *TermRepository) SaveStats(ctx context.Context, stats core.LibraryStats) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		return writeStats(tx, stats)
	})
}

// ReconcileStats sets UniqueTermCount to the actual number of stored terms.
// A concurrent term creation touches the stats key, so it conflicts with this
// transaction and one of the two is replayed.
func (r *TermRepository) ReconcileStats(ctx context.Context, at time.Time) (core.LibraryStats, error) {
	var stats core.LibraryStats
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		var err error
		stats, err = readStats(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = termKeyPrefix()
		it := tx.NewIterator(opts)
		var count int64
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		it.Close()

		stats.UniqueTermCount = count
		stats.LastUpdatedAt = at.UTC()
		return writeStats(tx, stats)
	})
	return stats, err
}

// RecordSearchEvent counts one learning event.
func (r *TermRepository) RecordSearchEvent(ctx context.Context, at time.Time) (core.LibraryStats, error) {
	var stats core.LibraryStats
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		var err error
		stats, err = readStats(tx)
		if err != nil {
			return err
		}
		stats.TotalSearches++
		stats.LastUpdatedAt = at.UTC()
		return writeStats(tx, stats)
	})
	return stats, err
}

// Helper methods

// readTerm reads a term from the transaction. Returns nil, nil if absent.
func readTerm(tx *badger.Txn, key []byte) (*core.Term, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var term *core.Term
	err = item.Value(func(val []byte) error {
		var err error
		term, err = storage.UnmarshalTerm(val)
		return err
	})
	return term, err
}

// readStats reads the stats record, zero-valued if never written.
func readStats(tx *badger.Txn) (core.LibraryStats, error) {
	item, err := tx.Get([]byte(libraryStatsKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return core.LibraryStats{}, nil
		}
		return core.LibraryStats{}, err
	}

	var stats core.LibraryStats
	err = item.Value(func(val []byte) error {
		var err error
		stats, err = storage.UnmarshalLibraryStats(val)
		return err
	})
	return stats, err
}

func writeStats(tx *badger.Txn, stats core.LibraryStats) error {
	return tx.Set([]byte(libraryStatsKey), storage.MarshalLibraryStats(stats))
}
