// Package audit defines the domain contract for the change log.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"

	"shelfmark/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionAllocate     Action = "allocate_label"
	ActionRelabel      Action = "relabel"
	ActionSchemeChange Action = "label_scheme_change"
)

// Recorder records audit entries. Implementations must not fail the
// business operation: callers log and continue on error.
type Recorder interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Noop discards all entries. Used in tests and tooling.
type Noop struct{}

// LogChange implements Recorder.
func (Noop) LogChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error {
	return nil
}

var _ Recorder = Noop{}
