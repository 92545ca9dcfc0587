package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shelfmark/internal/core/id"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestCreated_StatusAndBody(t *testing.T) {
	c, w := testContext(t)
	h := NewBaseHandler()

	entityID := id.New()
	h.Created(c, entityID)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), entityID.String())
}

func TestCreatedWith_FullBody(t *testing.T) {
	c, w := testContext(t)
	h := NewBaseHandler()

	h.CreatedWith(c, gin.H{"id": "x", "labelId": "ITEM-001"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ITEM-001")
}

func TestNoContent(t *testing.T) {
	c, w := testContext(t)
	h := NewBaseHandler()

	h.NoContent(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
