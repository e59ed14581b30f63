package learning

import (
	"context"
	"log/slog"

	"github.com/poiesic/suggestor/core"
)

// DefaultSweepInterval is the number of recorded searches between sweeps.
const DefaultSweepInterval = 100

// SweepTrigger is invoked synchronously after each recorded search.
type SweepTrigger interface {
	AfterRecord(ctx context.Context, stats core.LibraryStats)
}

type noopTrigger struct{}

func (noopTrigger) AfterRecord(context.Context, core.LibraryStats) {}

// sweepRunner is the part of Sweeper a trigger needs.
type sweepRunner interface {
	Sweep(ctx context.Context) (SweepResult, error)
}

// IntervalTrigger sweeps whenever TotalSearches reaches a multiple of its interval.
type IntervalTrigger struct {
	interval uint64
	sweeper  sweepRunner
	logger   *slog.Logger
}

var _ SweepTrigger = (*IntervalTrigger)(nil)

// EveryN returns a trigger that runs sweeper inline on every nth recorded search.
func EveryN(n uint64, sweeper *Sweeper) (*IntervalTrigger, error) {
	if sweeper == nil {
		return nil, ErrSweeperRequired
	}
	return newIntervalTrigger(n, sweeper)
}

func newIntervalTrigger(n uint64, sweeper sweepRunner) (*IntervalTrigger, error) {
	if n == 0 {
		return nil, ErrInvalidSweepInterval
	}
	return &IntervalTrigger{
		interval: n,
		sweeper:  sweeper,
		logger:   slog.Default(),
	}, nil
}

// AfterRecord runs the sweep when the search count lands on the interval.
func (t *IntervalTrigger) AfterRecord(ctx context.Context, stats core.LibraryStats) {
	if stats.TotalSearches == 0 || stats.TotalSearches%t.interval != 0 {
		return
	}
	if _, err := t.sweeper.Sweep(ctx); err != nil {
		t.logger.Warn("periodic sweep failed", "totalSearches", stats.TotalSearches, "err", err)
	}
}
