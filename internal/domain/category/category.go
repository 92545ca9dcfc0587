// Package category provides the Category catalog for grouping items.
package category

import (
	"context"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/entity"
	"shelfmark/internal/core/id"
)

// Category groups items within a workspace.
type Category struct {
	entity.Scoped

	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a Category bound to a workspace.
func NewCategory(workspaceID id.ID, name string) *Category {
	return &Category{
		Scoped: entity.NewScoped(workspaceID),
		Name:   name,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the interface for Category persistence.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, workspaceID, categoryID id.ID) (*Category, error)
	List(ctx context.Context, workspaceID id.ID) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, workspaceID, categoryID id.ID) error
}

// Service provides business logic for the Category catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, workspaceID, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, workspaceID, categoryID)
}

func (s *Service) List(ctx context.Context, workspaceID id.ID) ([]*Category, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, workspaceID, categoryID id.ID) error {
	return s.repo.Delete(ctx, workspaceID, categoryID)
}
