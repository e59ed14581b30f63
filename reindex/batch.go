package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/suggestor/docindex"
)

// DocumentSink receives batches of documents to index.
type DocumentSink interface {
	IndexDocuments(ctx context.Context, docs ...docindex.Document) error
}

// BatchProcessor indexes one batch at a time, retrying transient failures.
type BatchProcessor struct {
	sink           DocumentSink
	maxRetries     int
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts per batch
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(sink DocumentSink, maxRetries int, retryBaseDelay, retryMaxDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		sink:           sink,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		retryMaxDelay:  retryMaxDelay,
	}
}

// Process indexes docs, retrying the whole batch on failure.
func (bp *BatchProcessor) Process(ctx context.Context, docs []docindex.Document) error {
	if len(docs) == 0 {
		return nil
	}

	err := RetryWithBackoff(ctx, bp.maxRetries, bp.retryBaseDelay, bp.retryMaxDelay, func(ctx context.Context) error {
		return bp.sink.IndexDocuments(ctx, docs...)
	})
	if err != nil {
		return fmt.Errorf("failed to index batch of %d after %d attempts: %w", len(docs), bp.maxRetries, err)
	}
	return nil
}
