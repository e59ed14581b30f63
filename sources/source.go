package sources

import (
	"context"

	"github.com/poiesic/suggestor/core"
)

// Source produces candidate suggestions for a partial query.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	// Kind is the provenance assigned to every suggestion from this source.
	Kind() core.SourceKind
	// Suggest returns candidates for query. The returned slice is owned by the caller.
	Suggest(ctx context.Context, query string) ([]*core.Suggestion, error)
}

type scopeKey struct{}

// WithScope returns a context that restricts completion lookups to scope.
// An empty scope means no restriction.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope set by WithScope, or "".
func ScopeFromContext(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope
}
