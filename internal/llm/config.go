package llm

import (
	"fmt"
	"os"
	"strconv"
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	embedderAPIKey := os.Getenv("OPENAI_API_KEY")
	if embedderAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = "text-embedding-3-small" // default
	}

	// generator configuration
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderOpenAI // default
	}

	var generatorAPIKey string

	switch generatorProvider {
	case ProviderOpenAI:
		generatorAPIKey = embedderAPIKey
	case ProviderAnthropic:
		generatorAPIKey = os.Getenv("ANTHROPIC_API_KEY")
		if generatorAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required for the anthropic generator")
		}
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", generatorProvider)
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		if generatorProvider == ProviderAnthropic {
			generatorModel = "claude-3-haiku-20240307"
		} else {
			generatorModel = "gpt-4o-mini"
		}
	}

	generatorMaxTokens := 512 // default - clarification replies are short
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(0.7) // default
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      generatorAPIKey,
		GeneratorModel:       generatorModel,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
		EmbedderAPIKey:       embedderAPIKey,
		EmbedderModel:        embedderModel,
	}, nil
}
