package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/item"
)

// CreateItemRequest for creating items. The label is not accepted here:
// it is minted by the allocator during creation.
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   *string         `json:"description"`
	Quantity      *int            `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CategoryID    *string         `json:"categoryId"`
	LocationID    *string         `json:"locationId"`
	Notes         *string         `json:"notes"`
}

// ToEntity converts the request to a domain Item.
func (r CreateItemRequest) ToEntity(workspaceID id.ID) (*item.Item, error) {
	it := item.NewItem(workspaceID, r.Name)
	it.Description = r.Description
	it.Notes = r.Notes
	it.PurchasePrice = r.PurchasePrice
	if r.Quantity != nil {
		it.Quantity = *r.Quantity
	}

	var err error
	if it.CategoryID, err = ParseOptionalID(r.CategoryID); err != nil {
		return nil, err
	}
	if it.LocationID, err = ParseOptionalID(r.LocationID); err != nil {
		return nil, err
	}
	return it, nil
}

// UpdateItemRequest for updating items. labelId is absent by design; the
// stored label survives every plain update.
type UpdateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   *string         `json:"description"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CategoryID    *string         `json:"categoryId"`
	LocationID    *string         `json:"locationId"`
	Notes         *string         `json:"notes"`
	Version       int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request to an existing item.
func (r UpdateItemRequest) ApplyTo(it *item.Item) error {
	it.Name = r.Name
	it.Description = r.Description
	it.Quantity = r.Quantity
	it.PurchasePrice = r.PurchasePrice
	it.Notes = r.Notes
	it.SetVersion(r.Version)
	it.Touch()

	var err error
	if it.CategoryID, err = ParseOptionalID(r.CategoryID); err != nil {
		return err
	}
	if it.LocationID, err = ParseOptionalID(r.LocationID); err != nil {
		return err
	}
	return nil
}

// RelabelRequest for the manual relabel path.
type RelabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// ItemListRequest contains item list query parameters.
type ItemListRequest struct {
	ListRequest
	CategoryID *string `form:"categoryId"`
	LocationID *string `form:"locationId"`
}

// ItemResponse contains item fields.
type ItemResponse struct {
	ID            string          `json:"id"`
	Label         *string         `json:"label,omitempty"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CategoryID    *string         `json:"categoryId,omitempty"`
	LocationID    *string         `json:"locationId,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromItem creates ItemResponse from a domain Item.
func FromItem(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID.String(),
		Label:         it.LabelID,
		Name:          it.Name,
		Description:   it.Description,
		Quantity:      it.Quantity,
		PurchasePrice: it.PurchasePrice,
		CategoryID:    idString(it.CategoryID),
		LocationID:    idString(it.LocationID),
		Notes:         it.Notes,
		Version:       it.Version,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

// FromItems maps a list of items.
func FromItems(list []*item.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromItem(it))
	}
	return out
}
