package search

import (
	"context"
	"strings"

	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/embedtext"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
)

const (
	// how many candidates the continuation turn looks at
	continuationSampleSize = 10
)

// Search runs one search end to end: choose the retrieval path, fetch
// and hydrate results, score them, and decide whether to attach a
// clarification. Retrieval failures are fatal; everything downstream of
// retrieval degrades silently.
func (e *Engine) Search(ctx context.Context, req Request) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	offset := (req.Page - 1) * req.PageSize

	var result *Result
	var err error

	if query != "" && req.Semantic {
		result, err = e.semanticSearch(ctx, query, req, offset)
		if result == nil && err == nil {
			// embedding unavailable, degrade to lexical
			result, err = e.lexicalSearch(ctx, query, req, offset)
		}
	} else {
		result, err = e.lexicalSearch(ctx, query, req, offset)
	}
	if err != nil {
		return nil, err
	}

	if req.TrackHistory && query != "" {
		e.recordHistory(ctx, query, req, result.TotalCount)
	}

	return result, nil
}

// semanticSearch returns (nil, nil) when the query could not be
// embedded, signalling the caller to fall back to the lexical path
func (e *Engine) semanticSearch(ctx context.Context, query string, req Request, offset int) (*Result, error) {
	vector, err := e.embedder.GenerateEmbedding(ctx, embedtext.ForQuery(query))
	if err != nil {
		logger.Warn("query embedding failed, falling back to lexical search", "error", err)
		return nil, nil
	}

	filter := tools.SearchFilter{Tags: req.Tags, Pricing: req.Pricing}

	candidates, err := e.store.NearestNeighbors(ctx, vector, filter, tools.SimilarityThreshold, req.PageSize, offset)
	if err != nil {
		return nil, err
	}

	totalCount, err := e.store.CountNeighbors(ctx, vector, filter, tools.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	hydrated, err := e.hydrate(ctx, candidates)
	if err != nil {
		return nil, err
	}

	distances := make([]float64, len(candidates))
	for i, c := range candidates {
		distances[i] = c.Distance
	}
	confidence := semanticConfidence(distances)

	result := &Result{
		Tools:      hydrated,
		TotalCount: totalCount,
		Confidence: confidence * 100,
	}

	if shouldClarify(totalCount, confidence, query, true) {
		e.attachConversation(ctx, result, query, hydrated, totalCount)
	}

	return result, nil
}

func (e *Engine) lexicalSearch(ctx context.Context, query string, req Request, offset int) (*Result, error) {
	filter := tools.SearchFilter{Query: query, Tags: req.Tags, Pricing: req.Pricing}

	matches, err := e.store.LexicalSearch(ctx, filter, req.PageSize, offset)
	if err != nil {
		return nil, err
	}

	totalCount, err := e.store.CountLexical(ctx, filter)
	if err != nil {
		return nil, err
	}

	corpusSize, err := e.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	confidence := lexicalConfidence(totalCount, corpusSize, query != "")

	result := &Result{
		Tools:      matches,
		TotalCount: totalCount,
		Confidence: confidence,
	}

	if query != "" && shouldClarify(totalCount, confidence, query, false) {
		e.attachConversation(ctx, result, query, matches, totalCount)
	}

	return result, nil
}

// ContinueConversation handles one follow-up turn: re-run retrieval on
// the original query with a widened threshold, reply to the user's
// latest message, and propose a rewritten search query for the next
// round-trip.
func (e *Engine) ContinueConversation(ctx context.Context, req ContinueRequest) (*ContinueResult, error) {
	var (
		candidates []tools.Tool
		totalCount int
	)

	vector, err := e.embedder.GenerateEmbedding(ctx, embedtext.ForQuery(req.OriginalQuery))
	if err != nil {
		logger.Warn("continuation embedding failed, replying without retrieval context", "error", err)
	} else {
		raw, err := e.store.NearestNeighbors(ctx, vector, tools.SearchFilter{}, tools.WideSimilarityThreshold, continuationSampleSize, 0)
		if err != nil {
			return nil, err
		}
		totalCount, err = e.store.CountNeighbors(ctx, vector, tools.SearchFilter{}, tools.WideSimilarityThreshold)
		if err != nil {
			return nil, err
		}
		candidates, err = e.hydrate(ctx, raw)
		if err != nil {
			return nil, err
		}
	}

	history := append(append([]llm.Message(nil), req.History...), llm.Message{Role: "user", Content: req.Message})

	reply := e.generateConversation(ctx, req.OriginalQuery, candidates, totalCount, history)
	if reply == nil {
		reply = &conversationReply{Message: cannedZeroResultMessage, Refinements: e.fallbackRefinements}
	}

	suggestion := e.refineQuery(ctx, req.OriginalQuery, req.Message, req.History, topCoOccurringTags(candidates, maxTopTags))

	return &ContinueResult{
		Response:             reply.Message,
		SuggestedRefinements: reply.Refinements,
		SearchSuggestion:     suggestion,
		ToolCount:            totalCount,
	}, nil
}

// Clarify is an upfront query health check: embed the query, look at
// the single nearest neighbor, and either hand back the closest matches
// or a short clarifying question when nothing is close enough
func (e *Engine) Clarify(ctx context.Context, query string) (*ClarifyResult, error) {
	query = strings.TrimSpace(query)

	vector, err := e.embedder.GenerateEmbedding(ctx, embedtext.ForQuery(query))
	if err != nil {
		return nil, err
	}

	distance, err := e.store.NearestDistance(ctx, vector)
	if err != nil {
		return nil, err
	}

	result := &ClarifyResult{Confidence: singleConfidence(distance)}

	if result.Confidence < queryHealthThreshold {
		result.NeedsClarification = true
		reply := e.generateConversation(ctx, query, nil, 0, nil)
		result.Question = reply.Message
		return result, nil
	}

	raw, err := e.store.NearestNeighbors(ctx, vector, tools.SearchFilter{}, tools.SimilarityThreshold, continuationSampleSize, 0)
	if err != nil {
		return nil, err
	}
	result.Matches, err = e.hydrate(ctx, raw)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (e *Engine) hydrate(ctx context.Context, candidates []tools.Candidate) ([]tools.Tool, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	return e.store.GetByIDs(ctx, ids)
}

func (e *Engine) attachConversation(ctx context.Context, result *Result, query string, candidates []tools.Tool, totalCount int) {
	reply := e.generateConversation(ctx, query, candidates, totalCount, nil)
	if reply == nil {
		return
	}

	result.ConversationResponse = &reply.Message
	result.SuggestedRefinements = reply.Refinements
}

// recordHistory appends the search to the audit log. Best effort: a
// sink failure is logged, never surfaced.
func (e *Engine) recordHistory(ctx context.Context, query string, req Request, resultCount int) {
	entry := searchhistory.CreateRequest{
		Query:       query,
		Tags:        req.Tags,
		ResultCount: resultCount,
		UserID:      req.UserID,
	}
	if req.Pricing != "" {
		entry.Pricing = &req.Pricing
	}
	if original := strings.TrimSpace(req.OriginalQuery); original != "" && original != query {
		entry.OriginalQuery = &original
		entry.RefinedQuery = &query
	}

	if _, err := e.history.Create(ctx, entry); err != nil {
		logger.Warn("failed to record search history", "error", err)
	}
}
