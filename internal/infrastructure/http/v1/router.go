// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"shelfmark/internal/domain/audit"
	"shelfmark/internal/domain/category"
	"shelfmark/internal/domain/item"
	"shelfmark/internal/domain/labeling"
	"shelfmark/internal/domain/location"
	"shelfmark/internal/domain/workspace"
	"shelfmark/internal/infrastructure/counter"
	"shelfmark/internal/infrastructure/http/v1/handlers"
	"shelfmark/internal/infrastructure/http/v1/middleware"
	"shelfmark/internal/infrastructure/storage/postgres"
	"shelfmark/internal/infrastructure/storage/postgres/catalog_repo"
	"shelfmark/internal/infrastructure/storage/postgres/workspace_repo"
	"shelfmark/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the shared connection pool (health checks, counter store)
	Pool *postgres.Pool

	// TxManager coordinates transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Audit records entity changes; defaults to audit.Noop when nil
	Audit audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	auditLog := cfg.Audit
	if auditLog == nil {
		auditLog = audit.Noop{}
	}

	// Health endpoints (no workspace required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// Wiring: the allocator sits on the counter store (pool-backed, runs
	// outside business transactions), the workspace service as its scheme
	// source, and the item repository as its collision guard.
	workspaceRepo := workspace_repo.New(cfg.TxManager)
	workspaceService := workspace.NewService(workspaceRepo, auditLog)

	itemRepo := catalog_repo.NewItemRepo(cfg.TxManager)
	counterStore := counter.New(cfg.Pool)
	allocator := labeling.NewAllocator(counterStore, workspaceService, itemRepo)
	itemService := item.NewService(itemRepo, allocator, cfg.TxManager, auditLog)

	categoryService := category.NewService(catalog_repo.NewCategoryRepo(cfg.TxManager))
	locationService := location.NewService(catalog_repo.NewLocationRepo(cfg.TxManager))

	workspaceHandler := handlers.NewWorkspaceHandler(baseHandler, workspaceService)
	itemHandler := handlers.NewItemHandler(baseHandler, itemService)
	categoryHandler := handlers.NewCategoryHandler(baseHandler, categoryService)
	locationHandler := handlers.NewLocationHandler(baseHandler, locationService)

	api := router.Group("/api/v1")
	{
		api.POST("/workspaces", workspaceHandler.Create)
		api.GET("/workspaces", workspaceHandler.List)

		// Workspace-scoped routes: middleware resolves :workspaceId into
		// request context.
		ws := api.Group("/workspaces/:workspaceId")
		ws.Use(middleware.Workspace())
		{
			ws.GET("", workspaceHandler.Get)
			ws.PUT("", workspaceHandler.Update)
			ws.DELETE("", workspaceHandler.Delete)

			ws.GET("/label-scheme", workspaceHandler.GetLabelScheme)
			ws.PUT("/label-scheme", workspaceHandler.UpdateLabelScheme)

			ws.POST("/items", itemHandler.Create)
			ws.GET("/items", itemHandler.List)
			ws.GET("/items/:itemId", itemHandler.Get)
			ws.PUT("/items/:itemId", itemHandler.Update)
			ws.DELETE("/items/:itemId", itemHandler.Delete)
			ws.PUT("/items/:itemId/label", itemHandler.Relabel)

			ws.POST("/categories", categoryHandler.Create)
			ws.GET("/categories", categoryHandler.List)
			ws.GET("/categories/:categoryId", categoryHandler.Get)
			ws.PUT("/categories/:categoryId", categoryHandler.Update)
			ws.DELETE("/categories/:categoryId", categoryHandler.Delete)

			ws.POST("/locations", locationHandler.Create)
			ws.GET("/locations", locationHandler.List)
			ws.GET("/locations/:locationId", locationHandler.Get)
			ws.PUT("/locations/:locationId", locationHandler.Update)
			ws.DELETE("/locations/:locationId", locationHandler.Delete)
		}
	}

	return router
}
