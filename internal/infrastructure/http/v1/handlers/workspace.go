package handlers

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/domain/workspace"
	"shelfmark/internal/infrastructure/http/v1/dto"
)

// WorkspaceHandler serves the workspace CRUD surface plus the
// label-scheme read/edit endpoints.
type WorkspaceHandler struct {
	*BaseHandler
	service *workspace.Service
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(base *BaseHandler, service *workspace.Service) *WorkspaceHandler {
	return &WorkspaceHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /api/v1/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ws := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), ws); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, ws.ID)
}

// List handles GET /api/v1/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	list, err := h.service.List(c.Request.Context(), workspace.ListFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:  dto.FromWorkspaces(list),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// Get handles GET /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Get(c *gin.Context) {
	ws, err := h.service.Get(c.Request.Context(), h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromWorkspace(ws))
}

// Update handles PUT /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	ws, err := h.service.Get(ctx, h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(ws)
	if err := h.service.Update(ctx, ws); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromWorkspace(ws))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), h.WorkspaceID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// GetLabelScheme handles GET /api/v1/workspaces/:workspaceId/label-scheme
func (h *WorkspaceHandler) GetLabelScheme(c *gin.Context) {
	scheme, err := h.service.LabelScheme(c.Request.Context(), h.WorkspaceID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromScheme(scheme))
}

// UpdateLabelScheme handles PUT /api/v1/workspaces/:workspaceId/label-scheme
//
// The scheme is validated before anything is persisted; a malformed
// format is rejected here and the stored settings stay untouched.
// Existing labels are never reformatted.
func (h *WorkspaceHandler) UpdateLabelScheme(c *gin.Context) {
	var req dto.LabelSchemeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	scheme := req.ToScheme()
	if err := h.service.UpdateLabelScheme(c.Request.Context(), h.WorkspaceID(c), scheme); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromScheme(scheme))
}
