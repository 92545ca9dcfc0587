package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfmark/internal/core/entity"
	"shelfmark/internal/core/id"
)

type testRecord struct {
	entity.Scoped

	Name    string  `db:"name"`
	Notes   *string `db:"notes"`
	Skipped string  `db:"-"`
	NoTag   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testRecord]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "created_at")
	assert.Contains(t, cols, "updated_at")
	assert.Contains(t, cols, "workspace_id")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "notes")
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Skipped")
	assert.NotContains(t, cols, "NoTag")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[testRecord](), ExtractDBColumns[*testRecord]())
}

func TestStructToMap(t *testing.T) {
	wsID := id.New()
	rec := testRecord{
		Scoped: entity.NewScoped(wsID),
		Name:   "shelf A",
	}

	m := StructToMap(&rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, wsID, m["workspace_id"])
	assert.Equal(t, "shelf A", m["name"])
	assert.Equal(t, 1, m["version"])
	assert.Nil(t, m["notes"])
	assert.NotContains(t, m, "Skipped")
	assert.NotContains(t, m, "NoTag")
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("str"))
}
