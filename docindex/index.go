package docindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/suggestor/core"
)

const (
	fieldFilename = "filename"
	fieldKey      = "filename_key"
	fieldScope    = "scope"
)

// Document is a single indexed file.
type Document struct {
	Filename string
	Scope    string
}

// ID derives the document's index identifier from its scope and filename.
func (d Document) ID() string {
	return fmt.Sprintf("%016x", uint64(core.IDFromContent(d.Scope+"\x00"+d.Filename)))
}

// Index is a filename completion index. It is safe for concurrent use.
type Index struct {
	bleveIndex bleve.Index
	path       string
	logger     *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
	}
}

// NewMemIndex creates an index held entirely in memory.
func NewMemIndex(opts ...Option) (*Index, error) {
	bi, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return newIndex(bi, "", opts), nil
}

// OpenIndex opens the index at path, creating it if it does not exist.
func OpenIndex(path string, opts ...Option) (*Index, error) {
	bi, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
		bi, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", path, err)
	}
	return newIndex(bi, path, opts), nil
}

func newIndex(bi bleve.Index, path string, opts []Option) *Index {
	i := &Index{
		bleveIndex: bi,
		path:       path,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Original filename: stored for retrieval, not searchable
	filenameMapping := bleve.NewTextFieldMapping()
	filenameMapping.Index = false
	filenameMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldFilename, filenameMapping)

	// Normalized filename: one token, used for prefix queries and sorting
	keyMapping := bleve.NewTextFieldMapping()
	keyMapping.Analyzer = keyword.Name
	keyMapping.Store = false
	keyMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldKey, keyMapping)

	scopeMapping := bleve.NewTextFieldMapping()
	scopeMapping.Analyzer = keyword.Name
	scopeMapping.Store = false
	scopeMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldScope, scopeMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Close releases the underlying index.
func (i *Index) Close() error {
	return i.bleveIndex.Close()
}

// IndexDocuments adds or replaces docs in a single batch.
func (i *Index) IndexDocuments(ctx context.Context, docs ...Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := i.bleveIndex.NewBatch()
	for _, doc := range docs {
		key := core.Normalize(doc.Filename)
		if key == "" {
			return fmt.Errorf("%w: %q", ErrEmptyFilename, doc.Filename)
		}
		fields := map[string]any{
			fieldFilename: doc.Filename,
			fieldKey:      key,
			fieldScope:    doc.Scope,
		}
		if err := batch.Index(doc.ID(), fields); err != nil {
			return fmt.Errorf("failed to index %q: %w", doc.Filename, err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index documents: %w", err)
	}
	i.logger.Debug("indexed documents", "count", len(docs))
	return nil
}

// RemoveDocuments deletes docs. Absent documents are ignored.
func (i *Index) RemoveDocuments(ctx context.Context, docs ...Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := i.bleveIndex.NewBatch()
	for _, doc := range docs {
		batch.Delete(doc.ID())
	}
	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to remove documents: %w", err)
	}
	return nil
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	return i.bleveIndex.DocCount()
}

// LookupFilenames returns up to limit distinct filenames whose normalized
// form starts with prefix, ordered by normalized filename. A non-empty scope
// restricts matches to documents indexed with that scope.
func (i *Index) LookupFilenames(ctx context.Context, prefix, scope string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	key := core.Normalize(prefix)
	if key == "" {
		return nil, nil
	}

	prefixQuery := bleve.NewPrefixQuery(key)
	prefixQuery.SetField(fieldKey)

	var q query.Query = prefixQuery
	if scope != "" {
		scopeQuery := bleve.NewTermQuery(scope)
		scopeQuery.SetField(fieldScope)
		q = bleve.NewConjunctionQuery(prefixQuery, scopeQuery)
	}

	// The same filename may be indexed under several scopes
	req := bleve.NewSearchRequestOptions(q, limit*2, 0, false)
	req.Fields = []string{fieldFilename}
	req.SortBy([]string{fieldKey, "_id"})

	res, err := i.bleveIndex.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	seen := make(map[string]struct{}, len(res.Hits))
	filenames := make([]string, 0, min(limit, len(res.Hits)))
	for _, hit := range res.Hits {
		name, ok := hit.Fields[fieldFilename].(string)
		if !ok || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		filenames = append(filenames, name)
		if len(filenames) == limit {
			break
		}
	}
	return filenames, nil
}
