package handlers

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/domain/category"
	"shelfmark/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves the category CRUD surface.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /api/v1/workspaces/:workspaceId/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat := req.ToEntity(h.WorkspaceID(c))
	if err := h.service.Create(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cat.ID)
}

// List handles GET /api/v1/workspaces/:workspaceId/categories
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategories(list))
}

// Get handles GET /api/v1/workspaces/:workspaceId/categories/:categoryId
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "categoryId")
	if !ok {
		return
	}

	cat, err := h.service.Get(c.Request.Context(), h.WorkspaceID(c), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Update handles PUT /api/v1/workspaces/:workspaceId/categories/:categoryId
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "categoryId")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	cat, err := h.service.Get(ctx, h.WorkspaceID(c), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(cat)
	if err := h.service.Update(ctx, cat); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId/categories/:categoryId
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "categoryId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.WorkspaceID(c), categoryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
