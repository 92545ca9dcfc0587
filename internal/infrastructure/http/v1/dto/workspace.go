package dto

import (
	"time"

	"shelfmark/internal/core/label"
	"shelfmark/internal/domain/workspace"
)

// CreateWorkspaceRequest for creating workspaces. The label scheme is
// optional; omitted fields fall back to the default scheme.
type CreateWorkspaceRequest struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`

	LabelScheme *LabelSchemeRequest `json:"labelScheme"`
}

// ToEntity converts the request to a domain Workspace.
func (r CreateWorkspaceRequest) ToEntity() *workspace.Workspace {
	ws := workspace.NewWorkspace(r.Slug, r.Name)
	if r.LabelScheme != nil {
		ws.SetLabelScheme(r.LabelScheme.ToScheme())
	}
	return ws
}

// UpdateWorkspaceRequest for updating workspace metadata. Label settings
// change through the label-scheme endpoint, never here.
type UpdateWorkspaceRequest struct {
	Slug    string `json:"slug" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request to an existing workspace.
func (r UpdateWorkspaceRequest) ApplyTo(ws *workspace.Workspace) {
	ws.Slug = r.Slug
	ws.Name = r.Name
	ws.SetVersion(r.Version)
	ws.Touch()
}

// LabelSchemeRequest carries label scheme settings.
type LabelSchemeRequest struct {
	Format    string `json:"format" binding:"required"`
	Padding   int    `json:"padding"`
	Separator string `json:"separator"`
}

// ToScheme converts the request to a label.Scheme.
func (r LabelSchemeRequest) ToScheme() label.Scheme {
	return label.Scheme{
		Format:    r.Format,
		Padding:   r.Padding,
		Separator: r.Separator,
	}
}

// LabelSchemeResponse returns the current scheme.
type LabelSchemeResponse struct {
	Format    string `json:"format"`
	Padding   int    `json:"padding"`
	Separator string `json:"separator"`
}

// FromScheme creates LabelSchemeResponse from a label.Scheme.
func FromScheme(s label.Scheme) LabelSchemeResponse {
	return LabelSchemeResponse{
		Format:    s.Format,
		Padding:   s.Padding,
		Separator: s.Separator,
	}
}

// WorkspaceResponse contains workspace fields.
type WorkspaceResponse struct {
	ID          string              `json:"id"`
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	LabelScheme LabelSchemeResponse `json:"labelScheme"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// FromWorkspace creates WorkspaceResponse from a domain Workspace.
// The counter value is internal allocator state and is not exposed.
func FromWorkspace(ws *workspace.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID.String(),
		Slug:        ws.Slug,
		Name:        ws.Name,
		LabelScheme: FromScheme(ws.LabelScheme()),
		Version:     ws.Version,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

// FromWorkspaces maps a list of workspaces.
func FromWorkspaces(list []*workspace.Workspace) []WorkspaceResponse {
	out := make([]WorkspaceResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, FromWorkspace(ws))
	}
	return out
}
