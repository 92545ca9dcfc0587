package middleware

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/core/apperror"
	appctx "shelfmark/internal/core/context"
	"shelfmark/internal/core/id"
)

// WorkspaceParam is the route parameter carrying the workspace ID.
const WorkspaceParam = "workspaceId"

// Workspace middleware resolves the :workspaceId path parameter and
// stores it in the request context for all workspace-scoped routes.
// Existence is not checked here; a missing workspace surfaces as
// NOT_FOUND from whichever query runs first.
func Workspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(WorkspaceParam)
		workspaceID, err := id.Parse(raw)
		if err != nil {
			_ = c.Error(apperror.NewValidation("invalid workspace id").
				WithDetail("value", raw))
			c.Abort()
			return
		}

		ctx := appctx.WithWorkspaceID(c.Request.Context(), workspaceID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("workspace_id", workspaceID.String())

		c.Next()
	}
}
