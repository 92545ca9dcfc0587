// Package item provides the Item catalog: the inventory records that
// carry allocated labels.
package item

import (
	"context"

	"github.com/shopspring/decimal"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/entity"
	"shelfmark/internal/core/id"
)

// Item represents a single inventory record in a workspace.
type Item struct {
	entity.Scoped

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`

	// LabelID is the human-readable identifier minted by the allocator
	// (or entered manually by an administrator). Unique within the
	// workspace once assigned; immutable outside the relabel path.
	LabelID *string `db:"label_id" json:"labelId,omitempty"`

	// Quantity on hand
	Quantity int `db:"quantity" json:"quantity"`

	// PurchasePrice in the workspace's bookkeeping currency
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`

	// CategoryID is an optional reference to a category
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// LocationID is an optional reference to a storage location
	LocationID *id.ID `db:"location_id" json:"locationId,omitempty"`

	// Notes free text
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewItem creates an Item bound to a workspace. The label is assigned by
// the creation flow, not here.
func NewItem(workspaceID id.ID, name string) *Item {
	return &Item{
		Scoped:   entity.NewScoped(workspaceID),
		Name:     name,
		Quantity: 1,
	}
}

// Label returns the assigned label or empty string.
func (i *Item) Label() string {
	if i.LabelID == nil {
		return ""
	}
	return *i.LabelID
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(i.WorkspaceID) {
		return apperror.NewValidation("workspace is required").
			WithDetail("field", "workspaceId")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity").
			WithDetail("value", i.Quantity)
	}
	if i.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price must not be negative").
			WithDetail("field", "purchasePrice")
	}
	return nil
}
