// Package backfill computes embeddings for tools that are missing one,
// in batches, until the catalog is fully covered
package backfill

import (
	"context"
	"fmt"

	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/embedtext"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
)

// BatchSize caps one embedding request; the provider rejects oversized
// input arrays and smaller batches keep failures cheap to retry
const BatchSize = 15

// Store is the slice of the tool repository backfill needs
type Store interface {
	ListMissingVectors(ctx context.Context, limit int) ([]tools.Tool, error)
	UpdateVector(ctx context.Context, id string, vector []float32) error
}

// Run embeds every tool without a vector and returns how many were
// updated. Stops at the first batch that fails so a broken provider
// does not burn the whole quota.
func Run(ctx context.Context, store Store, embedder llm.Embedder) (int, error) {
	updated := 0

	for {
		batch, err := store.ListMissingVectors(ctx, BatchSize)
		if err != nil {
			return updated, fmt.Errorf("list tools missing vectors: %w", err)
		}
		if len(batch) == 0 {
			return updated, nil
		}

		texts := make([]string, len(batch))
		for i, t := range batch {
			texts[i] = embedtext.ForTool(t.Name, t.Description, t.Tags, t.Pricing)
		}

		vectors, err := embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return updated, fmt.Errorf("generate embeddings: %w", err)
		}
		if len(vectors) != len(batch) {
			return updated, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(batch))
		}

		for i, t := range batch {
			if err := store.UpdateVector(ctx, t.ID, vectors[i]); err != nil {
				return updated, fmt.Errorf("update vector for %s: %w", t.ID, err)
			}
			updated++
		}

		logger.Info("backfilled embeddings", "batch", len(batch), "total", updated)
	}
}
