// Package labeling orchestrates label allocation: reserve a number from
// the counter store, render it with the workspace's current scheme, and
// confirm uniqueness through the collision guard.
//
// Policy: once reserved, a number is never reassigned. The counter
// advances even if the surrounding item create fails or the rendered
// label conflicts; gaps are accepted, reuse is not.
package labeling

import (
	"context"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/counter"
	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
	"shelfmark/pkg/logger"
)

// SchemeSource yields the workspace's current label scheme. The allocator
// performs a fresh read per allocation so concurrent admin edits take
// effect for the very next label.
type SchemeSource interface {
	LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error)
}

// Guard checks a rendered or manually entered label against the
// workspace's existing labels.
type Guard interface {
	// CheckUnique reports whether the label is free to use in the
	// workspace.
	CheckUnique(ctx context.Context, workspaceID id.ID, lbl string) (bool, error)
}

// Allocation is the result of one successful label allocation.
type Allocation struct {
	// Label is the rendered identifier, e.g. "ITEM-003".
	Label string `json:"label"`

	// Number is the reserved numeric value behind the label.
	Number int64 `json:"number"`
}

// Allocator mints unique sequential labels per workspace. It is stateless
// across calls: everything durable lives in the counter store and the
// workspace record, so any number of server processes may allocate
// concurrently.
type Allocator struct {
	counters counter.Store
	schemes  SchemeSource
	guard    Guard
}

// NewAllocator creates an Allocator.
func NewAllocator(counters counter.Store, schemes SchemeSource, guard Guard) *Allocator {
	return &Allocator{
		counters: counters,
		schemes:  schemes,
		guard:    guard,
	}
}

// AllocateLabel reserves the workspace's next number and renders it.
//
// Exactly one reservation is made per call. On LabelConflict the caller
// decides: abort the surrounding create (recommended) or call again,
// which reserves a new, higher number — the conflicting number stays
// consumed either way. Automatic retry is deliberately absent here so a
// misconfigured scheme that keeps producing colliding labels surfaces
// instead of burning numbers silently.
func (a *Allocator) AllocateLabel(ctx context.Context, workspaceID id.ID) (Allocation, error) {
	number, err := a.counters.ReserveNext(ctx, workspaceID)
	if err != nil {
		return Allocation{}, err
	}

	scheme, err := a.schemes.LabelScheme(ctx, workspaceID)
	if err != nil {
		return Allocation{}, err
	}

	rendered := scheme.Render(number)

	unique, err := a.guard.CheckUnique(ctx, workspaceID, rendered)
	if err != nil {
		return Allocation{}, err
	}
	if !unique {
		logger.Warn(ctx, "allocated label collides with existing label",
			"workspace_id", workspaceID.String(),
			"label", rendered,
			"number", number,
		)
		return Allocation{}, apperror.NewLabelConflict(workspaceID.String(), rendered).
			WithDetail("number", number)
	}

	return Allocation{Label: rendered, Number: number}, nil
}
