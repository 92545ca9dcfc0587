// Package context carries request-scoped values across layers: tracing
// identifiers set by the HTTP middleware and the workspace the request
// operates on.
package context

import (
	"context"

	"github.com/google/uuid"
)

type (
	traceKey     struct{}
	workspaceKey struct{}
)

// TraceContext identifies one request in logs and error responses.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

// WithTrace stores tracing identifiers in context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace returns the tracing identifiers, or nil outside a traced
// request.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// WithWorkspaceID stores the current workspace ID in context.
// Set by the workspace middleware for all workspace-scoped routes.
func WithWorkspaceID(ctx context.Context, workspaceID uuid.UUID) context.Context {
	return context.WithValue(ctx, workspaceKey{}, workspaceID)
}

// GetWorkspaceID returns the workspace ID from context, or uuid.Nil when
// the request is not workspace-scoped.
func GetWorkspaceID(ctx context.Context) uuid.UUID {
	if v, ok := ctx.Value(workspaceKey{}).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}
