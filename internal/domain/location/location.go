// Package location provides the Location catalog: physical places where
// items are stored.
package location

import (
	"context"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/entity"
	"shelfmark/internal/core/id"
)

// Location represents a storage place (room, shelf, bin) in a workspace.
type Location struct {
	entity.Scoped

	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Address     *string `db:"address" json:"address,omitempty"`
}

// NewLocation creates a Location bound to a workspace.
func NewLocation(workspaceID id.ID, name string) *Location {
	return &Location{
		Scoped: entity.NewScoped(workspaceID),
		Name:   name,
	}
}

// Validate implements entity.Validatable.
func (l *Location) Validate(ctx context.Context) error {
	if l.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the interface for Location persistence.
type Repository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, workspaceID, locationID id.ID) (*Location, error)
	List(ctx context.Context, workspaceID id.ID) ([]*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, workspaceID, locationID id.ID) error
}

// Service provides business logic for the Location catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Location service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, l)
}

func (s *Service) Get(ctx context.Context, workspaceID, locationID id.ID) (*Location, error) {
	return s.repo.GetByID(ctx, workspaceID, locationID)
}

func (s *Service) List(ctx context.Context, workspaceID id.ID) ([]*Location, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *Service) Update(ctx context.Context, l *Location) error {
	if err := l.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, l)
}

func (s *Service) Delete(ctx context.Context, workspaceID, locationID id.ID) error {
	return s.repo.Delete(ctx, workspaceID, locationID)
}
