// Package workspace provides the Workspace catalog: the tenant boundary
// for all item data and label state.
package workspace

import (
	"context"
	"regexp"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/entity"
	"shelfmark/internal/core/label"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}[a-z0-9]$`)

// Workspace represents a tenant. Label settings live directly on the
// record; label_next_number is owned exclusively by the counter store and
// must never be written by admin flows.
type Workspace struct {
	entity.Base

	// Slug is a URL-safe identifier, unique across workspaces
	Slug string `db:"slug" json:"slug"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Label scheme configuration (validated on edit, read at allocation)
	LabelFormat    string `db:"label_format" json:"labelFormat"`
	LabelPadding   int    `db:"label_padding" json:"labelPadding"`
	LabelSeparator string `db:"label_separator" json:"labelSeparator"`

	// LabelNextNumber is the high-water mark of issued label numbers.
	// Monotonically non-decreasing; default 1 at workspace creation.
	LabelNextNumber int64 `db:"label_next_number" json:"labelNextNumber"`
}

// NewWorkspace creates a Workspace with the default label scheme and the
// counter at its starting value.
func NewWorkspace(slug, name string) *Workspace {
	scheme := label.DefaultScheme()
	return &Workspace{
		Base:            entity.NewBase(),
		Slug:            slug,
		Name:            name,
		LabelFormat:     scheme.Format,
		LabelPadding:    scheme.Padding,
		LabelSeparator:  scheme.Separator,
		LabelNextNumber: 1,
	}
}

// LabelScheme returns an immutable snapshot of the label configuration.
func (w *Workspace) LabelScheme() label.Scheme {
	return label.Scheme{
		Format:    w.LabelFormat,
		Padding:   w.LabelPadding,
		Separator: w.LabelSeparator,
	}
}

// SetLabelScheme applies a scheme to the record. Does not touch
// LabelNextNumber.
func (w *Workspace) SetLabelScheme(s label.Scheme) {
	w.LabelFormat = s.Format
	w.LabelPadding = s.Padding
	w.LabelSeparator = s.Separator
}

// Validate implements entity.Validatable.
func (w *Workspace) Validate(ctx context.Context) error {
	if w.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !slugPattern.MatchString(w.Slug) {
		return apperror.NewValidation("slug must be 3-64 lowercase letters, digits or dashes").
			WithDetail("field", "slug").
			WithDetail("value", w.Slug)
	}
	return nil
}
