// Package search implements hybrid tool discovery: embedding-based
// nearest-neighbor retrieval with lexical fallback, confidence scoring,
// and a conversational clarification loop that rewrites vague queries
// into retrieval-friendly ones.
package search

import (
	"context"

	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/llm"
)

// ToolStore is the retrieval surface of the tool repository
type ToolStore interface {
	NearestNeighbors(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64, limit, offset int) ([]tools.Candidate, error)
	CountNeighbors(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64) (int, error)
	NearestDistance(ctx context.Context, vector []float32) (float64, error)
	GetByIDs(ctx context.Context, ids []string) ([]tools.Tool, error)
	LexicalSearch(ctx context.Context, filter tools.SearchFilter, limit, offset int) ([]tools.Tool, error)
	CountLexical(ctx context.Context, filter tools.SearchFilter) (int, error)
	Count(ctx context.Context) (int, error)
}

// HistorySink records searches for later analysis
type HistorySink interface {
	Create(ctx context.Context, req searchhistory.CreateRequest) (*searchhistory.Entry, error)
}

// Engine runs searches end to end. Construct once and share across
// requests; it holds no per-request state.
type Engine struct {
	store     ToolStore
	history   HistorySink
	embedder  llm.Embedder
	generator llm.TextGenerator

	fallbackRefinements []string
}

type Option func(*Engine)

// WithFallbackRefinements replaces the generic refinement categories
// suggested when a search returns nothing
func WithFallbackRefinements(categories []string) Option {
	return func(e *Engine) {
		e.fallbackRefinements = categories
	}
}

func NewEngine(store ToolStore, history HistorySink, embedder llm.Embedder, generator llm.TextGenerator, opts ...Option) *Engine {
	e := &Engine{
		store:               store,
		history:             history,
		embedder:            embedder,
		generator:           generator,
		fallbackRefinements: defaultFallbackRefinements,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Request describes one search
type Request struct {
	Query        string
	Tags         []string
	Pricing      string
	Page         int
	PageSize     int
	Semantic     bool
	TrackHistory bool

	// OriginalQuery is set when Query came out of a refinement
	// round-trip, so history can record both forms
	OriginalQuery string

	// UserID attributes the history entry when the caller is signed in
	UserID *string
}

// Result is the assembled response for one search
type Result struct {
	Tools      []tools.Tool `json:"tools"`
	TotalCount int          `json:"total_count"`

	// Confidence is reported on a 0-100 scale regardless of which
	// retrieval path produced it
	Confidence float64 `json:"confidence"`

	ConversationResponse *string  `json:"conversation_response"`
	SuggestedRefinements []string `json:"suggested_refinements"`
}

// ClarifyResult is the outcome of an upfront query health check:
// either the query is close enough to the catalog to show matches, or
// it needs a clarifying question first
type ClarifyResult struct {
	Confidence         float64      `json:"confidence"`
	NeedsClarification bool         `json:"needs_clarification"`
	Question           string       `json:"question,omitempty"`
	Matches            []tools.Tool `json:"matches,omitempty"`
}

// ContinueRequest is one follow-up turn in a clarification dialogue
type ContinueRequest struct {
	OriginalQuery string
	Message       string
	History       []llm.Message
}

// ContinueResult carries everything the client needs to decide whether
// to re-run the search with the suggested query
type ContinueResult struct {
	Response             string   `json:"response"`
	SuggestedRefinements []string `json:"suggested_refinements"`
	SearchSuggestion     string   `json:"search_suggestion"`
	ToolCount            int      `json:"tool_count"`
}
