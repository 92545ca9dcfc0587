// Package entity provides base types shared by all persisted records.
package entity

import (
	"context"
	"time"

	"shelfmark/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a new Base with generated ID and timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp. The version is incremented by
// the repository as part of the optimistic-lock UPDATE, not here.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetVersion updates the version number (used by repository after sync).
func (b *Base) SetVersion(v int) {
	b.Version = v
}

// Scoped is the base for records owned by exactly one workspace.
// All label state and item data are scoped to a workspace; queries must
// always filter by WorkspaceID.
type Scoped struct {
	Base

	WorkspaceID id.ID `db:"workspace_id" json:"workspaceId"`
}

// NewScoped creates a new Scoped base bound to a workspace.
func NewScoped(workspaceID id.ID) Scoped {
	return Scoped{
		Base:        NewBase(),
		WorkspaceID: workspaceID,
	}
}
