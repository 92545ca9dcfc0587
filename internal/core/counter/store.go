// Package counter provides the domain contract for the per-workspace
// label counter. Implementations live in the infrastructure layer.
package counter

import (
	"context"

	"shelfmark/internal/core/id"
)

// Store owns the workspace's label_next_number field. It is the single
// source of truth for "numbers issued so far", not "numbers actually
// used": gaps are permitted, reuse is not.
type Store interface {
	// ReserveNext atomically reads the workspace's next number n,
	// persists n+1, and returns n. Two concurrent calls for the same
	// workspace never return the same value; calls for different
	// workspaces never block each other.
	//
	// Returns NotFound when the workspace does not exist, and
	// Unavailable when storage contention exceeded the retry budget
	// (no number is consumed in that case).
	//
	// A successful reservation is consumed at most once and never
	// reassigned, even if the caller later fails.
	ReserveNext(ctx context.Context, workspaceID id.ID) (int64, error)

	// SetNext raises the counter so the next reservation returns at
	// least value. The counter is a high-water mark: a value lower
	// than the current counter leaves it unchanged. Intended for
	// migrations and imports only.
	SetNext(ctx context.Context, workspaceID id.ID, value int64) error
}
