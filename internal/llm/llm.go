package llm

import (
	"context"
	"fmt"
)

// combines an Embedder and TextGenerator into a single LLM
type CompositeLLM struct {
	Embedder
	TextGenerator
}

// creates a new LLM with auto-configuration from environment variables
func NewLLM(ctx context.Context) (LLM, error) {
	config, err := loadConfig()

	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(ctx, config)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(_ context.Context, config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// create generator based on provider (for clarification and refinement)
	var textGenerator TextGenerator

	switch config.GeneratorProvider {
	case ProviderOpenAI:
		textGenerator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	case ProviderAnthropic:
		textGenerator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	// embeddings always come from OpenAI - the vector column width and the
	// stored item vectors are tied to text-embedding-3-small
	embedder := NewOpenAIEmbedder(OpenAIConfig{
		APIKey: config.EmbedderAPIKey,
		Model:  config.EmbedderModel,
	})

	return &CompositeLLM{
		Embedder:      embedder,
		TextGenerator: textGenerator,
	}, nil
}
