// Command backfill embeds every tool missing a vector, in batches.
// Run it after bulk imports or when a provider outage left tools
// lexical-only.
package main

import (
	"context"
	"flag"
	"time"

	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/backfill"
	"codeberg.org/aiheap/server/internal/config"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	llmClient, err := llm.NewLLM(ctx)
	if err != nil {
		logger.Fatal("failed to create LLM client", "error", err)
	}

	toolRepo := tools.NewRepository(db)

	updated, err := backfill.Run(ctx, toolRepo, llmClient)
	if err != nil {
		logger.Fatal("backfill failed", "updated", updated, "error", err)
	}

	logger.Info("backfill complete", "updated", updated)
}
