// Package workspace_repo provides the PostgreSQL implementation of the
// Workspace repository. The label_next_number column on this table is
// owned by the counter store: nothing here ever writes it.
package workspace_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
	"shelfmark/internal/domain/workspace"
	"shelfmark/internal/infrastructure/storage/postgres"
)

const tableName = "workspaces"

// Repo implements workspace.Repository.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// Ensure compile-time interface compliance.
var _ workspace.Repository = (*Repo)(nil)

// New creates a new Workspace repository.
func New(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[workspace.Workspace](),
	}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(tableName)
}

// Create inserts a new workspace. LabelNextNumber starts at its
// constructor value; after creation only the counter store moves it.
func (r *Repo) Create(ctx context.Context, ws *workspace.Workspace) error {
	data := postgres.StructToMap(ws)

	q := r.builder().
		Insert(tableName).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("workspace", "slug", ws.Slug).WithCause(err)
		}
		return fmt.Errorf("insert workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID.
func (r *Repo) GetByID(ctx context.Context, workspaceID id.ID) (*workspace.Workspace, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": workspaceID}).
		Limit(1)

	return r.getOne(ctx, q, workspaceID.String())
}

// GetBySlug retrieves a workspace by its URL slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*workspace.Workspace, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"slug": slug}).
		Limit(1)

	return r.getOne(ctx, q, slug)
}

func (r *Repo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*workspace.Workspace, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ws workspace.Workspace
	if err := pgxscan.Get(ctx, r.querier(ctx), &ws, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("workspace", key)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	return &ws, nil
}

// List retrieves workspaces with filtering and pagination.
func (r *Repo) List(ctx context.Context, filter workspace.ListFilter) ([]*workspace.Workspace, error) {
	q := r.baseSelect().OrderBy("slug ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"slug": pattern},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var list []*workspace.Workspace
	if err := pgxscan.Select(ctx, r.querier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	return list, nil
}

// Update modifies workspace metadata with optimistic locking.
// label_next_number is deliberately excluded from SET.
func (r *Repo) Update(ctx context.Context, ws *workspace.Workspace) error {
	q := r.builder().
		Update(tableName).
		Set("slug", ws.Slug).
		Set("name", ws.Name).
		Set("label_format", ws.LabelFormat).
		Set("label_padding", ws.LabelPadding).
		Set("label_separator", ws.LabelSeparator).
		Set("updated_at", ws.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": ws.ID}).
		Where(squirrel.Eq{"version": ws.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("workspace", "slug", ws.Slug).WithCause(err)
		}
		return fmt.Errorf("update workspace: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("workspace", ws.ID.String())
	}

	return nil
}

// Delete performs physical removal of the workspace.
func (r *Repo) Delete(ctx context.Context, workspaceID id.ID) error {
	q := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": workspaceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("workspace still contains records").
				WithDetail("id", workspaceID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete workspace: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("workspace", workspaceID.String())
	}

	return nil
}

// UpdateLabelScheme persists only the three scheme columns.
func (r *Repo) UpdateLabelScheme(ctx context.Context, workspaceID id.ID, scheme label.Scheme) error {
	q := r.builder().
		Update(tableName).
		Set("label_format", scheme.Format).
		Set("label_padding", scheme.Padding).
		Set("label_separator", scheme.Separator).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": workspaceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update scheme: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update label scheme: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("workspace", workspaceID.String())
	}

	return nil
}

// LabelScheme reads the current scheme straight from the row. Called on
// every allocation so admin edits apply to the very next label.
func (r *Repo) LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error) {
	q := r.builder().
		Select("label_format", "label_padding", "label_separator").
		From(tableName).
		Where(squirrel.Eq{"id": workspaceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return label.Scheme{}, fmt.Errorf("build query: %w", err)
	}

	var scheme label.Scheme
	err = r.querier(ctx).QueryRow(ctx, sql, args...).
		Scan(&scheme.Format, &scheme.Padding, &scheme.Separator)
	if err != nil {
		if pgxscan.NotFound(err) {
			return label.Scheme{}, apperror.NewNotFound("workspace", workspaceID.String())
		}
		return label.Scheme{}, fmt.Errorf("get label scheme: %w", err)
	}

	return scheme, nil
}
