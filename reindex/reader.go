package reindex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/suggestor/docindex"
)

// DefaultBatchSize is the default number of documents indexed per batch.
const DefaultBatchSize = 100

// DocumentReader splits a line-oriented filename listing into batches.
type DocumentReader struct {
	r            io.Reader
	batchSize    int
	defaultScope string
}

// NewDocumentReader creates a reader over r. Documents without an explicit
// scope get defaultScope.
func NewDocumentReader(r io.Reader, batchSize int, defaultScope string) *DocumentReader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &DocumentReader{r: r, batchSize: batchSize, defaultScope: defaultScope}
}

// ForEach calls fn with each batch of documents. Iteration stops on the first
// error from fn or the reader. Context cancellation is checked between batches.
func (dr *DocumentReader) ForEach(ctx context.Context, fn func([]docindex.Document) error) error {
	scanner := bufio.NewScanner(dr.r)
	batch := make([]docindex.Document, 0, dr.batchSize)
	line := 0

	for scanner.Scan() {
		line++
		doc, ok := dr.parseLine(scanner.Text())
		if !ok {
			continue
		}
		batch = append(batch, doc)
		if len(batch) < dr.batchSize {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(batch); err != nil {
			return err
		}
		batch = make([]docindex.Document, 0, dr.batchSize)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", line+1, err)
	}

	if len(batch) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(batch)
	}
	return nil
}

func (dr *DocumentReader) parseLine(text string) (docindex.Document, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return docindex.Document{}, false
	}

	scope, filename, found := strings.Cut(text, "\t")
	if !found {
		return docindex.Document{Filename: trimmed, Scope: dr.defaultScope}, true
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return docindex.Document{}, false
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = dr.defaultScope
	}
	return docindex.Document{Filename: filename, Scope: scope}, true
}
