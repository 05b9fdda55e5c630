package search

import (
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/api/rest/pagination"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// SearchRequest binds from query params on GET and a JSON body on POST
type SearchRequest struct {
	Query         string   `form:"query" json:"query" binding:"omitempty,max=100"`
	Tags          []string `form:"tags" json:"tags" binding:"omitempty,max=10,dive,min=1,max=50"`
	Pricing       string   `form:"pricing" json:"pricing" binding:"omitempty,oneof=free paid free-paid"`
	Page          int      `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize      int      `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=50"`
	OriginalQuery string   `form:"original_query" json:"original_query" binding:"omitempty,max=100"`

	// both default to true when omitted
	Semantic     *bool `form:"semantic" json:"semantic"`
	TrackHistory *bool `form:"track_history" json:"track_history"`
}

type SearchResponse struct {
	Tools                []tools.Tool    `json:"tools"`
	Pagination           pagination.Meta `json:"pagination"`
	Confidence           int             `json:"confidence"`
	ConversationResponse *string         `json:"conversation_response"`
	SuggestedRefinements []string        `json:"suggested_refinements"`
}

type ConversationTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=2000"`
}

type ConversationRequest struct {
	OriginalQuery string             `json:"original_query" binding:"required,max=100"`
	Message       string             `json:"message" binding:"required,max=2000"`
	History       []ConversationTurn `json:"history" binding:"omitempty,max=20,dive"`
}

type ConversationResponse struct {
	Response             string   `json:"response"`
	SuggestedRefinements []string `json:"suggested_refinements"`
	SearchSuggestion     string   `json:"search_suggestion"`
	ToolCount            int      `json:"tool_count"`
}

type ClarifyResponse struct {
	Confidence         int          `json:"confidence"`
	NeedsClarification bool         `json:"needs_clarification"`
	Question           string       `json:"question,omitempty"`
	Matches            []tools.Tool `json:"matches,omitempty"`
}
