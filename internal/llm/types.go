package llm

import "context"

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates chat completions from a prompt and conversation history
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// combines embedding generation and text generation
type LLM interface {
	Embedder
	TextGenerator
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// contains all inputs for a text generation call
type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float32 // overrides the client default when > 0
}

// contains the generated text and token usage
type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// holds configuration for LLM initialization
type Config struct {
	// generator configuration
	GeneratorProvider    Provider
	GeneratorAPIKey      string
	GeneratorModel       string // e.g., "gpt-4o-mini"
	GeneratorMaxTokens   int
	GeneratorTemperature float32

	// embedder configuration
	EmbedderAPIKey string
	EmbedderModel  string // e.g., "text-embedding-3-small"
}
