package catalog_repo

import (
	"context"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/location"
	"shelfmark/internal/infrastructure/storage/postgres"
)

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseRepo[location.Location]
}

var _ location.Repository = (*LocationRepo)(nil)

// NewLocationRepo creates a new Location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseRepo: NewBaseRepo[location.Location](txManager, "locations"),
	}
}

// List retrieves all locations in a workspace ordered by name.
func (r *LocationRepo) List(ctx context.Context, workspaceID id.ID) ([]*location.Location, error) {
	return r.Select(ctx, r.baseSelect(workspaceID).OrderBy("name ASC"))
}
