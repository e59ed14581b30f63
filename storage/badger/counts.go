package badger

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/suggestor/core"
	"github.com/poiesic/suggestor/storage"
)

// SearchCountRepository implements storage.SearchCountRepository for BadgerDB.
// Its keyspace is disjoint from the term library, so resetting it leaves
// learned terms untouched.
type SearchCountRepository struct {
	backend *Backend
}

var _ storage.SearchCountRepository = (*SearchCountRepository)(nil)

// NewSearchCountRepository creates a new SearchCountRepository.
func NewSearchCountRepository(backend *Backend) *SearchCountRepository {
	return &SearchCountRepository{
		backend: backend,
	}
}

// Close releases resources. SearchCountRepository has no resources to release.
func (r *SearchCountRepository) Close() error {
	return nil
}

// IncrementSearchCount adds one search of query.
func (r *SearchCountRepository) IncrementSearchCount(ctx context.Context, query string, at time.Time) error {
	if query == "" {
		return storage.ErrInvalidQuery
	}
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		key := makeSearchCountKey(query)
		count, err := readSearchCount(tx, key)
		if err != nil {
			return err
		}
		if count == nil {
			count = &core.SearchCount{Query: query}
		}
		count.Count++
		count.LastSearchedAt = at.UTC()
		return tx.Set(key, storage.MarshalSearchCount(count))
	})
}

// GetSearchCount retrieves the statistic for a query.
func (r *SearchCountRepository) GetSearchCount(ctx context.Context, query string) (*core.SearchCount, error) {
	var result *core.SearchCount
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSearchCount(tx, makeSearchCountKey(query))
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

// TopSearches returns the most searched queries, ties broken by query text.
func (r *SearchCountRepository) TopSearches(ctx context.Context, limit int) ([]*core.SearchCount, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchCount
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = searchCountKeyPrefix()
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				count, err := storage.UnmarshalSearchCount(val)
				if err != nil {
					return err
				}
				results = append(results, count)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SearchCount) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Query, b.Query)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ResetSearchCounts deletes every search statistic.
func (r *SearchCountRepository) ResetSearchCounts(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.DropPrefix(searchCountKeyPrefix())
}

func readSearchCount(tx *badger.Txn, key []byte) (*core.SearchCount, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var count *core.SearchCount
	err = item.Value(func(val []byte) error {
		var err error
		count, err = storage.UnmarshalSearchCount(val)
		return err
	})
	return count, err
}
