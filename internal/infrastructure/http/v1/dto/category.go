package dto

import (
	"time"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/category"
)

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts the request to a domain Category.
func (r CreateCategoryRequest) ToEntity(workspaceID id.ID) *category.Category {
	c := category.NewCategory(workspaceID, r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest for updating categories.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request to an existing category.
func (r UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Description = r.Description
	c.SetVersion(r.Version)
	c.Touch()
}

// CategoryResponse contains category fields.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromCategory creates CategoryResponse from a domain Category.
func FromCategory(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromCategories maps a list of categories.
func FromCategories(list []*category.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromCategory(c))
	}
	return out
}
