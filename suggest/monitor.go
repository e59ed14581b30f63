package suggest

import (
	"time"

	"github.com/poiesic/suggestor/core"
)

// Monitor provides hooks to observe ranking requests.
type Monitor interface {
	Start(query string)
	SourceDone(source string, count int, elapsed time.Duration, err error)
	Fallback(query string, reason error)
	Finish(query string, results []*core.Suggestion)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                       {}
func (n *noopMonitor) SourceDone(_ string, _ int, _ time.Duration, _ error) {}
func (n *noopMonitor) Fallback(_ string, _ error)                           {}
func (n *noopMonitor) Finish(_ string, _ []*core.Suggestion)                {}
