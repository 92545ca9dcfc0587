package handlers

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/domain/location"
	"shelfmark/internal/infrastructure/http/v1/dto"
)

// LocationHandler serves the location CRUD surface.
type LocationHandler struct {
	*BaseHandler
	service *location.Service
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service) *LocationHandler {
	return &LocationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /api/v1/workspaces/:workspaceId/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc := req.ToEntity(h.WorkspaceID(c))
	if err := h.service.Create(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, loc.ID)
}

// List handles GET /api/v1/workspaces/:workspaceId/locations
func (h *LocationHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocations(list))
}

// Get handles GET /api/v1/workspaces/:workspaceId/locations/:locationId
func (h *LocationHandler) Get(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "locationId")
	if !ok {
		return
	}

	loc, err := h.service.Get(c.Request.Context(), h.WorkspaceID(c), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// Update handles PUT /api/v1/workspaces/:workspaceId/locations/:locationId
func (h *LocationHandler) Update(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "locationId")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	loc, err := h.service.Get(ctx, h.WorkspaceID(c), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(loc)
	if err := h.service.Update(ctx, loc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId/locations/:locationId
func (h *LocationHandler) Delete(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "locationId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.WorkspaceID(c), locationID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
