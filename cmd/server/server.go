package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/config"
	"codeberg.org/aiheap/server/internal/search"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// hosted postgres poolers hand out few connections, keep ours small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	toolRepo := tools.NewRepository(db)
	tagRepo := tags.NewRepository(db)
	historyRepo := searchhistory.NewRepository(db)

	services, err := InitializeServices()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	engine := search.NewEngine(toolRepo, historyRepo, services.LLM, services.LLM)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:          db,
		config:      cfg,
		toolRepo:    toolRepo,
		tagRepo:     tagRepo,
		historyRepo: historyRepo,
		engine:      engine,
		services:    services,
		router:      router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}
