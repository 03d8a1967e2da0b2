package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every store call made on behalf of an http request
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives the store context for a request. The deadline is the earlier of
// the parent's and QueryTimeout from now, so a client hanging up still cancels the query.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
