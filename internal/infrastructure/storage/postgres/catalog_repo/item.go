package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/item"
	"shelfmark/internal/infrastructure/storage/postgres"
)

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseRepo[item.Item]
}

// Ensure compile-time interface compliance.
var _ item.Repository = (*ItemRepo)(nil)

// NewItemRepo creates a new Item repository. label_id is immutable for
// plain updates; it changes only through UpdateLabel.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseRepo: NewBaseRepo[item.Item](txManager, "items", "label_id"),
	}
}

// List retrieves items in a workspace with filtering and pagination.
func (r *ItemRepo) List(ctx context.Context, workspaceID id.ID, filter item.ListFilter) ([]*item.Item, error) {
	q := r.baseSelect(workspaceID)

	q = applySearch(q, filter.Search, "name", "label_id")

	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}

	q = q.OrderBy("created_at DESC")
	q = applyPagination(q, filter.Limit, filter.Offset)

	return r.Select(ctx, q)
}

// UpdateLabel sets label_id on one item. The partial unique index on
// (workspace_id, label_id) is the last line of defense against races the
// guard check cannot see.
func (r *ItemRepo) UpdateLabel(ctx context.Context, workspaceID, itemID id.ID, lbl string) error {
	q := r.Builder().
		Update("items").
		Set("label_id", lbl).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update label: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewLabelConflict(workspaceID, lbl).WithCause(err)
		}
		return fmt.Errorf("update label: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("items", itemID.String())
	}

	return nil
}

// CheckUnique reports whether the label is free to use in the workspace.
func (r *ItemRepo) CheckUnique(ctx context.Context, workspaceID id.ID, lbl string) (bool, error) {
	q := r.Builder().
		Select("1").
		From("items").
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		Where(squirrel.Eq{"label_id": lbl}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check label unique: %w", err)
	}

	return false, nil
}
