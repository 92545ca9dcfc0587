package workspace

import (
	"context"

	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
	"shelfmark/internal/domain/audit"
	"shelfmark/pkg/logger"
)

// Service provides business logic for the Workspace catalog, including
// the administrative label-scheme edit path.
type Service struct {
	repo  Repository
	audit audit.Recorder
}

// NewService creates a new Workspace service.
func NewService(repo Repository, auditLog audit.Recorder) *Service {
	return &Service{
		repo:  repo,
		audit: auditLog,
	}
}

// Create validates and persists a new workspace. The label scheme is
// validated here so a malformed format can never reach allocation.
func (s *Service) Create(ctx context.Context, ws *Workspace) error {
	if err := ws.Validate(ctx); err != nil {
		return err
	}
	if err := ws.LabelScheme().Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, ws); err != nil {
		return err
	}

	s.logAudit(ctx, ws.ID, audit.ActionCreate, map[string]any{
		"slug": ws.Slug,
		"name": ws.Name,
	})
	return nil
}

// Get retrieves a workspace by ID.
func (s *Service) Get(ctx context.Context, workspaceID id.ID) (*Workspace, error) {
	return s.repo.GetByID(ctx, workspaceID)
}

// GetBySlug retrieves a workspace by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Workspace, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List retrieves workspaces matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Workspace, error) {
	return s.repo.List(ctx, filter)
}

// Update persists name/slug changes. Label settings normally go through
// UpdateLabelScheme, but the scheme on the entity is persisted too, so
// it is re-checked here; the counter is never written.
func (s *Service) Update(ctx context.Context, ws *Workspace) error {
	if err := ws.Validate(ctx); err != nil {
		return err
	}
	if err := ws.LabelScheme().Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, ws); err != nil {
		return err
	}

	s.logAudit(ctx, ws.ID, audit.ActionUpdate, map[string]any{
		"slug": ws.Slug,
		"name": ws.Name,
	})
	return nil
}

// Delete removes a workspace.
func (s *Service) Delete(ctx context.Context, workspaceID id.ID) error {
	if err := s.repo.Delete(ctx, workspaceID); err != nil {
		return err
	}
	s.logAudit(ctx, workspaceID, audit.ActionDelete, nil)
	return nil
}

// UpdateLabelScheme validates and persists new label settings.
// Validation happens before the edit is persisted, never at allocation
// time. The change affects only labels allocated afterwards: previously
// issued labels are never reformatted, and label_next_number is untouched.
func (s *Service) UpdateLabelScheme(ctx context.Context, workspaceID id.ID, scheme label.Scheme) error {
	if err := scheme.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateLabelScheme(ctx, workspaceID, scheme); err != nil {
		return err
	}

	s.logAudit(ctx, workspaceID, audit.ActionSchemeChange, map[string]any{
		"format":    scheme.Format,
		"padding":   scheme.Padding,
		"separator": scheme.Separator,
	})
	return nil
}

// LabelScheme reads the workspace's current scheme. Implements the
// allocator's scheme source: a fresh read on every call.
func (s *Service) LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error) {
	return s.repo.LabelScheme(ctx, workspaceID)
}

func (s *Service) logAudit(ctx context.Context, workspaceID id.ID, action audit.Action, changes map[string]any) {
	if err := s.audit.LogChange(ctx, "workspace", workspaceID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "action", action, "error", err)
	}
}
