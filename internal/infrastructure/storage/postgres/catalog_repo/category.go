package catalog_repo

import (
	"context"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/category"
	"shelfmark/internal/infrastructure/storage/postgres"
)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseRepo[category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates a new Category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: NewBaseRepo[category.Category](txManager, "categories"),
	}
}

// List retrieves all categories in a workspace ordered by name.
func (r *CategoryRepo) List(ctx context.Context, workspaceID id.ID) ([]*category.Category, error) {
	return r.Select(ctx, r.baseSelect(workspaceID).OrderBy("name ASC"))
}
