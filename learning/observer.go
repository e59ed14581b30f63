package learning

import "github.com/poiesic/suggestor/core"

// Observer receives learning events, e.g. for metrics.
type Observer interface {
	Recorded(key string, stats core.LibraryStats)
	Swept(result SweepResult)
}

// noopObserver is a no-op implementation of Observer
type noopObserver struct{}

var _ Observer = noopObserver{}

func (noopObserver) Recorded(string, core.LibraryStats) {}
func (noopObserver) Swept(SweepResult)                  {}
