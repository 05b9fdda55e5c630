package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/llm"
)

func TestSearchSemanticPath(t *testing.T) {
	store := &mockStore{
		nearestNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, threshold float64, _, _ int) ([]tools.Candidate, error) {
			if threshold != tools.SimilarityThreshold {
				t.Errorf("threshold = %v, want %v", threshold, tools.SimilarityThreshold)
			}
			return []tools.Candidate{
				{ID: "a", Distance: 0.1},
				{ID: "b", Distance: 0.2},
			}, nil
		},
		countNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64) (int, error) {
			return 12, nil
		},
	}
	model := &mockLLM{}
	engine := newTestEngine(store, nil, model)

	result, err := engine.Search(context.Background(), Request{
		Query:    "image generation for architects",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Tools) != 2 {
		t.Fatalf("got %d tools, want 2", len(result.Tools))
	}
	if result.Tools[0].ID != "a" || result.Tools[1].ID != "b" {
		t.Error("hydrated tools should preserve distance order")
	}
	if result.TotalCount != 12 {
		t.Errorf("totalCount = %d, want 12", result.TotalCount)
	}

	// distances 0.1 and 0.2 average to 0.15, so confidence is 85 on
	// the reported scale
	if result.Confidence < 84.9 || result.Confidence > 85.1 {
		t.Errorf("confidence = %v, want ~85", result.Confidence)
	}

	// high confidence, no clarification
	if result.ConversationResponse != nil {
		t.Error("confident result should not carry a clarification")
	}
}

func TestSearchEmbedsWithQueryFraming(t *testing.T) {
	model := &mockLLM{}
	engine := newTestEngine(nil, nil, model)

	_, err := engine.Search(context.Background(), Request{
		Query:    "build a website",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(model.embedInputs) == 0 {
		t.Fatal("expected an embedding call")
	}
	if model.embedInputs[0] != "With AI I want to build a website" {
		t.Errorf("embedding input = %q, framing must match the document path", model.embedInputs[0])
	}
}

func TestSearchFallsBackToLexicalOnEmbeddingFailure(t *testing.T) {
	lexicalCalled := false
	store := &mockStore{
		lexicalSearchFunc: func(_ context.Context, filter tools.SearchFilter, _, _ int) ([]tools.Tool, error) {
			lexicalCalled = true
			if filter.Query != "code review assistant" {
				t.Errorf("lexical filter query = %q", filter.Query)
			}
			return []tools.Tool{{ID: "a", Name: "Reviewer"}}, nil
		},
		countLexicalFunc: func(_ context.Context, _ tools.SearchFilter) (int, error) {
			return 1, nil
		},
	}
	model := &mockLLM{
		embedFunc: func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		},
	}
	engine := newTestEngine(store, nil, model)

	result, err := engine.Search(context.Background(), Request{
		Query:    "code review assistant",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("Search should degrade, not fail: %v", err)
	}
	if !lexicalCalled {
		t.Fatal("expected fallback to the lexical path")
	}
	if len(result.Tools) != 1 {
		t.Errorf("got %d tools, want 1", len(result.Tools))
	}
}

func TestSearchRetrievalFailureIsFatal(t *testing.T) {
	store := &mockStore{
		nearestNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64, _, _ int) ([]tools.Candidate, error) {
			return nil, errors.New("connection refused")
		},
	}
	engine := newTestEngine(store, nil, nil)

	_, err := engine.Search(context.Background(), Request{
		Query:    "image generation",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err == nil {
		t.Fatal("store failure must surface as an error")
	}
}

func TestSearchZeroResultsClarifies(t *testing.T) {
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return &llm.TextGenerationResponse{Text: "What would you like the tool to do?"}, nil
		},
	}
	engine := newTestEngine(nil, nil, model)

	result, err := engine.Search(context.Background(), Request{
		Query:    "xyzzyplugh",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Tools) != 0 {
		t.Errorf("got %d tools, want none", len(result.Tools))
	}
	if result.ConversationResponse == nil {
		t.Fatal("zero results must carry a clarifying message")
	}
	if len(result.SuggestedRefinements) == 0 {
		t.Error("zero results must carry the generic refinement catalog")
	}
}

func TestSearchClarificationFailureDoesNotFailRequest(t *testing.T) {
	store := &mockStore{
		nearestNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64, _, _ int) ([]tools.Candidate, error) {
			return []tools.Candidate{{ID: "a", Distance: 0.6}}, nil
		},
		countNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64) (int, error) {
			return 3, nil
		},
	}
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}
	engine := newTestEngine(store, nil, model)

	result, err := engine.Search(context.Background(), Request{
		Query:    "email outreach automation",
		Page:     1,
		PageSize: 10,
		Semantic: true,
	})
	if err != nil {
		t.Fatalf("clarification failure must not fail the search: %v", err)
	}
	if len(result.Tools) != 1 {
		t.Error("primary results must survive clarification failure")
	}
	if result.ConversationResponse != nil {
		t.Error("failed clarification should read as absent, not as an error")
	}
}

func TestSearchExploratoryQuerySkipsClarification(t *testing.T) {
	generatorCalled := false
	store := &mockStore{
		lexicalSearchFunc: func(_ context.Context, _ tools.SearchFilter, _, _ int) ([]tools.Tool, error) {
			return []tools.Tool{{ID: "a"}, {ID: "b"}}, nil
		},
		countLexicalFunc: func(_ context.Context, _ tools.SearchFilter) (int, error) {
			return 2, nil
		},
	}
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			generatorCalled = true
			return &llm.TextGenerationResponse{Text: "hm"}, nil
		},
	}
	engine := newTestEngine(store, nil, model)

	result, err := engine.Search(context.Background(), Request{
		Query:    "tools",
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if generatorCalled {
		t.Error("exploratory query must never invoke the generator")
	}
	if result.ConversationResponse != nil {
		t.Error("exploratory query must not carry a clarification")
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	history := &mockHistory{}
	engine := newTestEngine(nil, history, nil)

	_, err := engine.Search(context.Background(), Request{
		Query:         "seo writing",
		OriginalQuery: "build a website",
		Page:          1,
		PageSize:      10,
		Semantic:      true,
		TrackHistory:  true,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(history.entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(history.entries))
	}
	entry := history.entries[0]
	if entry.Query != "seo writing" {
		t.Errorf("entry query = %q", entry.Query)
	}
	if entry.OriginalQuery == nil || *entry.OriginalQuery != "build a website" {
		t.Error("refined searches must record their originating query")
	}
	if entry.RefinedQuery == nil || *entry.RefinedQuery != "seo writing" {
		t.Error("refined searches must record the refined query")
	}
}

func TestSearchSkipsHistoryWhenUntracked(t *testing.T) {
	history := &mockHistory{}
	engine := newTestEngine(nil, history, nil)

	_, err := engine.Search(context.Background(), Request{
		Query:    "seo writing",
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(history.entries) != 0 {
		t.Error("untracked search must not write history")
	}
}

func TestSearchHistoryFailureIsSilent(t *testing.T) {
	history := &mockHistory{err: errors.New("sink down")}
	engine := newTestEngine(nil, history, nil)

	_, err := engine.Search(context.Background(), Request{
		Query:        "seo writing",
		Page:         1,
		PageSize:     10,
		TrackHistory: true,
	})
	if err != nil {
		t.Fatalf("history sink failure must not fail the search: %v", err)
	}
}

func TestContinueConversation(t *testing.T) {
	store := &mockStore{
		nearestNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, threshold float64, _, _ int) ([]tools.Candidate, error) {
			if threshold != tools.WideSimilarityThreshold {
				t.Errorf("continuation threshold = %v, want %v", threshold, tools.WideSimilarityThreshold)
			}
			return []tools.Candidate{{ID: "a", Distance: 0.4}}, nil
		},
		countNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64) (int, error) {
			return 7, nil
		},
		getByIDsFunc: func(_ context.Context, ids []string) ([]tools.Tool, error) {
			return []tools.Tool{{ID: "a", Name: "Shopify Magic", Tags: []string{"e-commerce", "website"}}}, nil
		},
	}
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			if strings.Contains(req.SystemPrompt, "Rewrite the conversation") {
				return &llm.TextGenerationResponse{Text: "website builder e-commerce"}, nil
			}
			return &llm.TextGenerationResponse{Text: "Got it, let's focus on e-commerce."}, nil
		},
	}
	engine := newTestEngine(store, nil, model)

	result, err := engine.ContinueConversation(context.Background(), ContinueRequest{
		OriginalQuery: "build a website",
		Message:       "I need something for e-commerce",
		History: []llm.Message{
			{Role: "user", Content: "build a website"},
			{Role: "assistant", Content: "What kind of site?"},
		},
	})
	if err != nil {
		t.Fatalf("ContinueConversation failed: %v", err)
	}

	if result.Response == "" {
		t.Error("response must not be empty")
	}
	if result.ToolCount != 7 {
		t.Errorf("toolCount = %d, want 7", result.ToolCount)
	}

	suggestion := result.SearchSuggestion
	if suggestion == "" {
		t.Fatal("searchSuggestion must not be empty")
	}
	if suggestion != strings.ToLower(suggestion) {
		t.Errorf("suggestion %q must be lowercase", suggestion)
	}
	if strings.HasPrefix(suggestion, `"`) || strings.HasSuffix(suggestion, ".") {
		t.Errorf("suggestion %q must be unquoted with no trailing period", suggestion)
	}
	words := len(strings.Fields(suggestion))
	if words < 2 || words > 8 {
		t.Errorf("suggestion %q has %d words, want 2-8", suggestion, words)
	}
}

func TestContinueConversationModelFailure(t *testing.T) {
	model := &mockLLM{
		generateTextFunc: func(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}
	engine := newTestEngine(nil, nil, model)

	result, err := engine.ContinueConversation(context.Background(), ContinueRequest{
		OriginalQuery: "build a website",
		Message:       "for e-commerce stores",
	})
	if err != nil {
		t.Fatalf("ContinueConversation should degrade, not fail: %v", err)
	}
	if result.Response == "" {
		t.Error("response must degrade to the canned message")
	}
	if result.SearchSuggestion == "" {
		t.Error("searchSuggestion must fall back deterministically")
	}
}

func TestClarifyHealthyQuery(t *testing.T) {
	store := &mockStore{
		nearestDistanceFunc: func(_ context.Context, _ []float32) (float64, error) {
			return 0.25, nil
		},
		nearestNeighborsFunc: func(_ context.Context, _ []float32, _ tools.SearchFilter, _ float64, _, _ int) ([]tools.Candidate, error) {
			return []tools.Candidate{{ID: "a", Distance: 0.25}}, nil
		},
	}
	engine := newTestEngine(store, nil, nil)

	result, err := engine.Clarify(context.Background(), "image generation")
	if err != nil {
		t.Fatalf("Clarify failed: %v", err)
	}
	if result.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", result.Confidence)
	}
	if result.NeedsClarification {
		t.Error("close match should not need clarification")
	}
	if len(result.Matches) != 1 {
		t.Errorf("got %d matches, want 1", len(result.Matches))
	}
}

func TestClarifyDistantQuery(t *testing.T) {
	store := &mockStore{
		nearestDistanceFunc: func(_ context.Context, _ []float32) (float64, error) {
			return 0.8, nil
		},
	}
	engine := newTestEngine(store, nil, nil)

	result, err := engine.Clarify(context.Background(), "quantum yodeling")
	if err != nil {
		t.Fatalf("Clarify failed: %v", err)
	}
	if !result.NeedsClarification {
		t.Error("distant query should need clarification")
	}
	if result.Question == "" {
		t.Error("clarification must carry a question")
	}
	if len(result.Matches) != 0 {
		t.Error("clarification should not carry matches")
	}
}
