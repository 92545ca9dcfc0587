package workspace

import (
	"context"

	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
)

// ListFilter narrows List results.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// Repository defines the interface for Workspace persistence.
//
// Update and UpdateLabelScheme must never write label_next_number; that
// column belongs to the counter store.
type Repository interface {
	Create(ctx context.Context, ws *Workspace) error
	GetByID(ctx context.Context, workspaceID id.ID) (*Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*Workspace, error)
	List(ctx context.Context, filter ListFilter) ([]*Workspace, error)
	Update(ctx context.Context, ws *Workspace) error
	Delete(ctx context.Context, workspaceID id.ID) error

	// UpdateLabelScheme persists only the three scheme columns.
	UpdateLabelScheme(ctx context.Context, workspaceID id.ID, scheme label.Scheme) error

	// LabelScheme reads the current scheme. The allocator calls this on
	// every allocation so concurrent admin edits take effect for the
	// very next label.
	LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error)
}
