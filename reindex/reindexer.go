package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/suggestor/docindex"
)

// Config holds configuration for a bulk index run.
type Config struct {
	// BatchSize is the number of documents indexed together
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// MaxRetryDelay caps the backoff delay
	MaxRetryDelay time.Duration

	// Scope is assigned to documents listed without one
	Scope string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 500,
		MaxRetries:     3,
		RetryDelay:     200 * time.Millisecond,
		MaxRetryDelay:  5 * time.Second,
	}
}

// Result summarizes a completed run.
type Result struct {
	Indexed int
	Elapsed time.Duration
}

// Reindexer loads filename listings into a DocumentSink.
type Reindexer struct {
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	logger    *slog.Logger
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(sink DocumentSink, config *Config, progress io.Writer) (*Reindexer, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(sink, config.MaxRetries, config.RetryDelay, config.MaxRetryDelay),
		logger:    slog.Default(),
	}, nil
}

// Run indexes every document listed in r. total is the expected document
// count for progress reporting, or zero if unknown. Documents indexed before
// a failure stay indexed; the returned Result counts them.
func (ri *Reindexer) Run(ctx context.Context, r io.Reader, total int) (Result, error) {
	tracker := NewProgressTracker(ri.progress, total, ri.config.ReportInterval)
	tracker.Start()

	reader := NewDocumentReader(r, ri.config.BatchSize, ri.config.Scope)
	err := reader.ForEach(ctx, func(docs []docindex.Document) error {
		if err := ri.processor.Process(ctx, docs); err != nil {
			return err
		}
		tracker.Add(len(docs))
		return nil
	})

	result := Result{Indexed: tracker.Current(), Elapsed: tracker.Elapsed()}
	if err != nil {
		ri.logger.Error("bulk index stopped", "indexed", result.Indexed, "err", err)
		return result, fmt.Errorf("bulk index stopped after %d documents: %w", result.Indexed, err)
	}

	tracker.Finish()
	fmt.Fprintf(ri.progress, "Indexing complete. Indexed %d documents in %v\n",
		result.Indexed, result.Elapsed.Round(time.Millisecond))
	ri.logger.Info("bulk index complete", "indexed", result.Indexed, "elapsed", result.Elapsed)
	return result, nil
}
