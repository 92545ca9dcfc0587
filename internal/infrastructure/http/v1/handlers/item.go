package handlers

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/domain/item"
	"shelfmark/internal/infrastructure/http/v1/dto"
)

// ItemHandler serves the item CRUD surface. Create is the consumer of
// the label allocator; the label endpoint is the manual relabel path.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /api/v1/workspaces/:workspaceId/items
//
// A label is allocated as part of creation. On LABEL_CONFLICT the item
// is not persisted and the reserved number is gone for good; the client
// decides whether to retry.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := req.ToEntity(h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	// 201 with the full body: the client needs the allocated label.
	h.CreatedWith(c, dto.FromItem(it))
}

// List handles GET /api/v1/workspaces/:workspaceId/items
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ItemListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := item.ListFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	var err error
	if filter.CategoryID, err = dto.ParseOptionalID(req.CategoryID); err != nil {
		h.Error(c, err)
		return
	}
	if filter.LocationID, err = dto.ParseOptionalID(req.LocationID); err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.service.List(c.Request.Context(), h.WorkspaceID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:  dto.FromItems(list),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// Get handles GET /api/v1/workspaces/:workspaceId/items/:itemId
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	it, err := h.service.Get(c.Request.Context(), h.WorkspaceID(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Update handles PUT /api/v1/workspaces/:workspaceId/items/:itemId
//
// The stored label survives this path no matter what the client sends.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	it, err := h.service.Get(ctx, h.WorkspaceID(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(it); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, it); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId/items/:itemId
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.WorkspaceID(c), itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Relabel handles PUT /api/v1/workspaces/:workspaceId/items/:itemId/label
func (h *ItemHandler) Relabel(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.RelabelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Relabel(ctx, h.WorkspaceID(c), itemID, req.Label); err != nil {
		h.Error(c, err)
		return
	}

	it, err := h.service.Get(ctx, h.WorkspaceID(c), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}
