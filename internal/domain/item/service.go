package item

import (
	"context"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
	"shelfmark/internal/core/tx"
	"shelfmark/internal/domain/audit"
	"shelfmark/internal/domain/labeling"
	"shelfmark/pkg/logger"
)

// Service provides business logic for the Item catalog. Item creation is
// where the label allocator is consumed.
type Service struct {
	repo      Repository
	allocator *labeling.Allocator
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a new Item service.
func NewService(repo Repository, allocator *labeling.Allocator, txManager tx.Manager, auditLog audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		allocator: allocator,
		txManager: txManager,
		audit:     auditLog,
	}
}

// Create allocates a label and persists the item.
//
// Allocation runs before the insert transaction: if the insert fails the
// reserved number is abandoned (a permanent gap), never reused. If
// allocation fails (LabelConflict, Unavailable, NotFound) the creation is
// aborted and the error surfaces to the caller — an item is never
// persisted with its label silently omitted.
func (s *Service) Create(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}
	if it.LabelID != nil {
		return apperror.NewValidation("label is assigned by the allocator on create").
			WithDetail("field", "labelId")
	}

	alloc, err := s.allocator.AllocateLabel(ctx, it.WorkspaceID)
	if err != nil {
		return err
	}
	it.LabelID = &alloc.Label

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, it)
	})
	if err != nil {
		// The reserved number stays consumed; gaps over reuse.
		logger.Warn(ctx, "item create failed after label allocation",
			"workspace_id", it.WorkspaceID.String(),
			"label", alloc.Label,
			"error", err,
		)
		return err
	}

	s.logAudit(ctx, it.ID, audit.ActionAllocate, map[string]any{
		"label":  alloc.Label,
		"number": alloc.Number,
	})
	return nil
}

// Get retrieves an item within a workspace.
func (s *Service) Get(ctx context.Context, workspaceID, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, workspaceID, itemID)
}

// List retrieves items in a workspace.
func (s *Service) List(ctx context.Context, workspaceID id.ID, filter ListFilter) ([]*Item, error) {
	return s.repo.List(ctx, workspaceID, filter)
}

// Update persists item changes. The label is immutable here: whatever the
// caller sends, the stored label_id is preserved (repository excludes the
// column). Relabel is a separate, deliberate operation.
func (s *Service) Update(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return err
	}

	s.logAudit(ctx, it.ID, audit.ActionUpdate, map[string]any{"name": it.Name})
	return nil
}

// Delete removes an item. The number behind its label is not returned to
// the counter.
func (s *Service) Delete(ctx context.Context, workspaceID, itemID id.ID) error {
	if err := s.repo.Delete(ctx, workspaceID, itemID); err != nil {
		return err
	}
	s.logAudit(ctx, itemID, audit.ActionDelete, nil)
	return nil
}

// Relabel sets an item's label manually (administrative override). The
// new label goes through the same collision guard as auto-allocated ones,
// so "label unique within workspace" holds regardless of entry path. The
// counter is never rewound, even when the new label reads as a number
// lower than label_next_number.
func (s *Service) Relabel(ctx context.Context, workspaceID, itemID id.ID, newLabel string) error {
	if newLabel == "" {
		return apperror.NewValidation("label must not be empty").
			WithDetail("field", "label")
	}

	existing, err := s.repo.GetByID(ctx, workspaceID, itemID)
	if err != nil {
		return err
	}
	if existing.Label() == newLabel {
		return nil
	}

	unique, err := s.repo.CheckUnique(ctx, workspaceID, newLabel)
	if err != nil {
		return err
	}
	if !unique {
		return apperror.NewLabelConflict(workspaceID.String(), newLabel)
	}

	if err := s.repo.UpdateLabel(ctx, workspaceID, itemID, newLabel); err != nil {
		return err
	}

	s.logAudit(ctx, itemID, audit.ActionRelabel, map[string]any{
		"old_label": existing.Label(),
		"new_label": newLabel,
	})
	return nil
}

func (s *Service) logAudit(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]any) {
	if err := s.audit.LogChange(ctx, "item", entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "action", action, "error", err)
	}
}
