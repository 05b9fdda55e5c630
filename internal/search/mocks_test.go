package search

import (
	"context"

	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/llm"
)

// implements ToolStore for testing
type mockStore struct {
	nearestNeighborsFunc func(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64, limit, offset int) ([]tools.Candidate, error)
	countNeighborsFunc   func(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64) (int, error)
	nearestDistanceFunc  func(ctx context.Context, vector []float32) (float64, error)
	getByIDsFunc         func(ctx context.Context, ids []string) ([]tools.Tool, error)
	lexicalSearchFunc    func(ctx context.Context, filter tools.SearchFilter, limit, offset int) ([]tools.Tool, error)
	countLexicalFunc     func(ctx context.Context, filter tools.SearchFilter) (int, error)
	countFunc            func(ctx context.Context) (int, error)
}

func (m *mockStore) NearestNeighbors(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64, limit, offset int) ([]tools.Candidate, error) {
	if m.nearestNeighborsFunc != nil {
		return m.nearestNeighborsFunc(ctx, vector, filter, threshold, limit, offset)
	}

	return nil, nil
}

func (m *mockStore) CountNeighbors(ctx context.Context, vector []float32, filter tools.SearchFilter, threshold float64) (int, error) {
	if m.countNeighborsFunc != nil {
		return m.countNeighborsFunc(ctx, vector, filter, threshold)
	}

	return 0, nil
}

func (m *mockStore) NearestDistance(ctx context.Context, vector []float32) (float64, error) {
	if m.nearestDistanceFunc != nil {
		return m.nearestDistanceFunc(ctx, vector)
	}

	return 1, nil
}

func (m *mockStore) GetByIDs(ctx context.Context, ids []string) ([]tools.Tool, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}

	out := make([]tools.Tool, len(ids))
	for i, id := range ids {
		out[i] = tools.Tool{ID: id, Name: "tool-" + id}
	}

	return out, nil
}

func (m *mockStore) LexicalSearch(ctx context.Context, filter tools.SearchFilter, limit, offset int) ([]tools.Tool, error) {
	if m.lexicalSearchFunc != nil {
		return m.lexicalSearchFunc(ctx, filter, limit, offset)
	}

	return nil, nil
}

func (m *mockStore) CountLexical(ctx context.Context, filter tools.SearchFilter) (int, error) {
	if m.countLexicalFunc != nil {
		return m.countLexicalFunc(ctx, filter)
	}

	return 0, nil
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}

	return 100, nil
}

// implements HistorySink for testing
type mockHistory struct {
	entries []searchhistory.CreateRequest
	err     error
}

func (m *mockHistory) Create(_ context.Context, req searchhistory.CreateRequest) (*searchhistory.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.entries = append(m.entries, req)

	return &searchhistory.Entry{ID: "entry", Query: req.Query}, nil
}

// implements llm.Embedder and llm.TextGenerator for testing
type mockLLM struct {
	embedFunc        func(ctx context.Context, text string) ([]float32, error)
	generateTextFunc func(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error)

	embedInputs  []string
	promptInputs []llm.TextGenerationRequest
}

func (m *mockLLM) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.embedInputs = append(m.embedInputs, text)
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text)
	}

	return make([]float32, 1536), nil
}

func (m *mockLLM) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, 1536)
	}

	return out, nil
}

func (m *mockLLM) GenerateText(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	m.promptInputs = append(m.promptInputs, req)
	if m.generateTextFunc != nil {
		return m.generateTextFunc(ctx, req)
	}

	return &llm.TextGenerationResponse{Text: "Would you like to narrow that down?"}, nil
}

func (m *mockLLM) Model() string {
	return "mock-model"
}

func newTestEngine(store *mockStore, history *mockHistory, model *mockLLM, opts ...Option) *Engine {
	if store == nil {
		store = &mockStore{}
	}
	if history == nil {
		history = &mockHistory{}
	}
	if model == nil {
		model = &mockLLM{}
	}

	return NewEngine(store, history, model, model, opts...)
}
