package catalog_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/item"
)

func TestNewBaseRepo_ImmutableColumns(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items", "label_id")

	for _, col := range []string{"id", "version", "workspace_id", "created_at", "label_id"} {
		assert.True(t, repo.immutable[col], "column %s should be immutable", col)
	}
	assert.False(t, repo.immutable["name"])
	assert.False(t, repo.immutable["updated_at"])
}

func TestNewBaseRepo_SelectColumns(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items")

	assert.Contains(t, repo.selectCols, "id")
	assert.Contains(t, repo.selectCols, "workspace_id")
	assert.Contains(t, repo.selectCols, "label_id")
	assert.Contains(t, repo.selectCols, "purchase_price")
}

func TestApplySearch(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items")

	q := repo.Builder().Select("id").From("items")
	q = applySearch(q, "iron", "name", "label_id")

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "name ILIKE $1")
	assert.Contains(t, sql, "label_id ILIKE $2")
	assert.Equal(t, []any{"%iron%", "%iron%"}, args)
}

func TestApplySearch_EmptyIsNoop(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items")

	q := repo.Builder().Select("id").From("items")
	sql, _, err := applySearch(q, "", "name").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM items", sql)
}

func TestApplyPagination(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items")

	q := repo.Builder().Select("id").From("items")
	sql, _, err := applyPagination(q, 20, 40).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(sql, "LIMIT 20 OFFSET 40"), sql)
}

func TestBaseSelect_ScopesToWorkspace(t *testing.T) {
	repo := NewBaseRepo[item.Item](nil, "items")

	wsID := id.New()
	sql, args, err := repo.baseSelect(wsID).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE workspace_id = $1")
	// squirrel resolves driver.Valuer args at build time, so the UUID
	// arrives as its string form.
	assert.Equal(t, []any{wsID.String()}, args)
}
