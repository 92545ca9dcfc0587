package item

import (
	"context"

	"shelfmark/internal/core/id"
)

// ListFilter narrows List results within a workspace.
type ListFilter struct {
	Search     string
	CategoryID *id.ID
	LocationID *id.ID
	Limit      int
	Offset     int
}

// Repository defines the interface for Item persistence. All operations
// are scoped to one workspace.
//
// Update must never write label_id; the label changes only through
// UpdateLabel (the deliberate relabel path).
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, workspaceID, itemID id.ID) (*Item, error)
	List(ctx context.Context, workspaceID id.ID, filter ListFilter) ([]*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, workspaceID, itemID id.ID) error

	// UpdateLabel sets label_id on one item.
	UpdateLabel(ctx context.Context, workspaceID, itemID id.ID, lbl string) error

	// CheckUnique reports whether the label is free to use in the
	// workspace. Backs the collision guard for both auto-allocated and
	// hand-entered labels.
	CheckUnique(ctx context.Context, workspaceID id.ID, lbl string) (bool, error)
}
