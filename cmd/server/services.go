package main

import (
	"context"
	"fmt"

	"codeberg.org/aiheap/server/internal/llm"
)

// creates and configures all external service clients
func InitializeServices() (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &Services{
		LLM: llmClient,
	}, nil
}
