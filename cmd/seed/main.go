// Package main provides a CLI tool for bootstrapping the database
// schema and optionally seeding demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/category"
	"shelfmark/internal/domain/item"
	"shelfmark/internal/domain/labeling"
	"shelfmark/internal/domain/location"
	"shelfmark/internal/domain/workspace"
	"shelfmark/internal/infrastructure/counter"
	"shelfmark/internal/infrastructure/storage/postgres"
	"shelfmark/internal/infrastructure/storage/postgres/catalog_repo"
	"shelfmark/internal/infrastructure/storage/postgres/workspace_repo"
	"shelfmark/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema is up to date")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		label_format TEXT NOT NULL,
		label_padding INT NOT NULL,
		label_separator TEXT NOT NULL,
		label_next_number BIGINT NOT NULL DEFAULT 1,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS locations (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		address TEXT,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		label_id TEXT,
		name TEXT NOT NULL,
		description TEXT,
		quantity INT NOT NULL DEFAULT 1,
		purchase_price NUMERIC(14,2) NOT NULL DEFAULT 0,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		location_id UUID REFERENCES locations(id) ON DELETE SET NULL,
		notes TEXT,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Labels are unique per workspace once assigned. The partial index
	// backs the collision guard against races the EXISTS check misses.
	`CREATE UNIQUE INDEX IF NOT EXISTS items_workspace_label_uniq
		ON items (workspace_id, label_id) WHERE label_id IS NOT NULL`,

	`CREATE INDEX IF NOT EXISTS items_workspace_created_idx
		ON items (workspace_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		changes JSONB,
		changes_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS sys_audit_entity_idx
		ON sys_audit (entity_type, entity_id, created_at DESC)`,
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)

	workspaceRepo := workspace_repo.New(txManager)
	itemRepo := catalog_repo.NewItemRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)
	allocator := labeling.NewAllocator(counter.New(pool), workspaceRepo, itemRepo)

	if _, err := workspaceRepo.GetBySlug(ctx, "demo"); err == nil {
		log.Info("demo workspace already exists, skipping")
		return nil
	}

	ws := workspace.NewWorkspace("demo", "Demo Workspace")
	if err := workspaceRepo.Create(ctx, ws); err != nil {
		return fmt.Errorf("create demo workspace: %w", err)
	}
	log.Infow("created demo workspace", "id", ws.ID.String())

	cat := category.NewCategory(ws.ID, "Electronics")
	if err := categoryRepo.Create(ctx, cat); err != nil {
		return fmt.Errorf("create demo category: %w", err)
	}

	loc := location.NewLocation(ws.ID, "Shelf A")
	if err := locationRepo.Create(ctx, loc); err != nil {
		return fmt.Errorf("create demo location: %w", err)
	}

	names := []string{"Soldering iron", "Oscilloscope", "Label printer"}
	for _, name := range names {
		if err := createDemoItem(ctx, itemRepo, allocator, ws.ID, name, cat.ID, loc.ID); err != nil {
			return err
		}
	}

	log.Infow("demo data seeded", "items", len(names))
	return nil
}

func createDemoItem(
	ctx context.Context,
	repo *catalog_repo.ItemRepo,
	allocator *labeling.Allocator,
	workspaceID id.ID,
	name string,
	categoryID, locationID id.ID,
) error {
	alloc, err := allocator.AllocateLabel(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("allocate label for %q: %w", name, err)
	}

	it := item.NewItem(workspaceID, name)
	it.LabelID = &alloc.Label
	it.CategoryID = &categoryID
	it.LocationID = &locationID

	if err := repo.Create(ctx, it); err != nil {
		return fmt.Errorf("create item %q: %w", name, err)
	}
	return nil
}
