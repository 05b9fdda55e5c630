package search

import (
	"context"
	"strings"

	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
)

const (
	refineTemperature = 0.2
	refineMaxTokens   = 48

	refinementMinLength = 2
	refinementMaxLength = 50
	maxFallbackKeywords = 2
)

// conversational filler that carries no search intent
var refineStopwords = map[string]bool{
	"about": true, "anything": true, "can": true, "could": true,
	"find": true, "help": true, "just": true, "like": true,
	"looking": true, "maybe": true, "need": true, "please": true,
	"really": true, "some": true, "something": true, "that": true,
	"this": true, "tool": true, "tools": true, "want": true,
	"what": true, "with": true, "would": true, "you": true,
}

// refineQuery compresses a clarification dialogue into a short search
// phrase. The model is asked at low temperature; if its output is
// unusable the deterministic fallback is substituted, so the result is
// never empty.
func (e *Engine) refineQuery(ctx context.Context, originalQuery, latestMessage string, history []llm.Message, availableTags []string) string {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: latestMessage})

	callCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	resp, err := e.generator.GenerateText(callCtx, llm.TextGenerationRequest{
		SystemPrompt: buildRefinementPrompt(originalQuery, availableTags),
		Messages:     messages,
		MaxTokens:    refineMaxTokens,
		Temperature:  refineTemperature,
	})
	if err != nil {
		logger.Warn("refinement synthesis failed", "error", err)
		return fallbackRefinement(originalQuery, latestMessage)
	}

	refined := sanitizeRefinement(resp.Text)
	if !validRefinement(refined) {
		return fallbackRefinement(originalQuery, latestMessage)
	}

	return refined
}

func sanitizeRefinement(text string) string {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSuffix(s, ".")

	return strings.ToLower(strings.TrimSpace(s))
}

func validRefinement(s string) bool {
	return len(s) >= refinementMinLength && len(s) <= refinementMaxLength
}

// fallbackRefinement appends the most significant words of the latest
// user message to the original query
func fallbackRefinement(originalQuery, latestMessage string) string {
	parts := []string{strings.TrimSpace(originalQuery)}

	added := 0
	for _, word := range strings.Fields(strings.ToLower(latestMessage)) {
		if added == maxFallbackKeywords {
			break
		}
		word = strings.Trim(word, `.,!?"'`)
		if len(word) <= 3 || refineStopwords[word] {
			continue
		}
		parts = append(parts, word)
		added++
	}

	out := strings.TrimSpace(strings.Join(parts, " "))
	if out == "" {
		return "ai tools"
	}

	return strings.ToLower(out)
}
