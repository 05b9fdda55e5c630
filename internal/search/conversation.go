package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
)

const (
	conversationMaxTokens = 256
	llmCallTimeout        = 10 * time.Second

	maxTopTags     = 5
	maxSampleNames = 3
	maxRefinements = 5
)

// shown when nothing matched and the model call failed too
const cannedZeroResultMessage = "I couldn't find anything matching that. " +
	"Could you tell me a bit more about what you're trying to do?"

// generic categories suggested when there is no result-derived signal
// to draw from
var defaultFallbackRefinements = []string{
	"automation",
	"writing",
	"design",
	"coding",
	"marketing",
	"productivity",
	"research",
	"customer support",
}

// conversationReply is a clarifying message plus suggested refinement
// terms. A nil reply means no clarification is available, which callers
// must treat as benign.
type conversationReply struct {
	Message     string
	Refinements []string
}

// generateConversation produces the clarification side of a response.
// It never returns an error: model failures degrade to a canned message
// when nothing matched, and to nil otherwise.
func (e *Engine) generateConversation(ctx context.Context, query string, candidates []tools.Tool, totalCount int, history []llm.Message) *conversationReply {
	topTags := topCoOccurringTags(candidates, maxTopTags)
	prompt := buildConversationPrompt(query, totalCount, topTags, sampleNames(candidates, maxSampleNames))

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	if len(messages) == 0 {
		messages = append(messages, llm.Message{Role: "user", Content: query})
	}

	callCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	resp, err := e.generator.GenerateText(callCtx, llm.TextGenerationRequest{
		SystemPrompt: prompt,
		Messages:     messages,
		MaxTokens:    conversationMaxTokens,
	})

	if totalCount == 0 {
		reply := &conversationReply{
			Message:     cannedZeroResultMessage,
			Refinements: e.fallbackRefinements,
		}
		if err != nil {
			logger.Warn("clarification generation failed", "error", err)
			return reply
		}
		if text := strings.TrimSpace(resp.Text); text != "" {
			reply.Message = text
		}

		return reply
	}

	if err != nil {
		logger.Warn("clarification generation failed", "error", err)
		return nil
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil
	}

	return &conversationReply{
		Message:     text,
		Refinements: filterRefinements(topTags, query),
	}
}

// topCoOccurringTags ranks the tags shared by the candidate tools,
// most frequent first, name breaking ties
func topCoOccurringTags(candidates []tools.Tool, limit int) []string {
	freq := make(map[string]int)
	for _, t := range candidates {
		for _, tag := range t.Tags {
			freq[strings.ToLower(tag)]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if freq[names[i]] != freq[names[j]] {
			return freq[names[i]] > freq[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}

	return names
}

func sampleNames(candidates []tools.Tool, limit int) []string {
	var out []string
	for _, t := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, t.Name)
	}

	return out
}

// filterRefinements drops tags the query already covers; suggesting a
// term the user typed is a no-op
func filterRefinements(tags []string, query string) []string {
	queryWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = true
	}

	var out []string
	for _, tag := range tags {
		if len(out) == maxRefinements {
			break
		}
		covered := true
		for _, w := range strings.Fields(tag) {
			if !queryWords[w] {
				covered = false
				break
			}
		}
		if !covered {
			out = append(out, tag)
		}
	}

	return out
}
