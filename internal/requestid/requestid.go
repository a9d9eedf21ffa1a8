// Package requestid carries the per-request correlation id through contexts
// so every log line of one webhook delivery can be grouped.
package requestid

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header is the HTTP header the id is read from and echoed in.
const Header = "X-Request-Id"

type contextKey struct{}

// New returns a fresh random id.
func New() string {
	return uuid.NewString()
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the id carried by ctx, or "" if none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Field returns the id as a zap field. Contexts without an id yield a
// skipped field.
func Field(ctx context.Context) zap.Field {
	id := FromContext(ctx)
	if id == "" {
		return zap.Skip()
	}
	return zap.String("request_id", id)
}
