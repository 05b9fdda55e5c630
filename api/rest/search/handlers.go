package search

import (
	"math"
	"net/http"
	"strings"

	"codeberg.org/aiheap/server/api/rest/pagination"
	"codeberg.org/aiheap/server/internal/auth"
	"codeberg.org/aiheap/server/internal/errors"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/search"
	"github.com/gin-gonic/gin"
)

// SearchHandler runs a search. Registered for both GET (query params)
// and POST (JSON body); gin binds whichever the request carries.
func SearchHandler(engine *search.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBind(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := pagination.DefaultParams(req.Page, req.PageSize, defaultPageSize, maxPageSize)

		semantic := req.Semantic == nil || *req.Semantic
		track := req.TrackHistory == nil || *req.TrackHistory

		result, err := engine.Search(c.Request.Context(), search.Request{
			Query:         req.Query,
			Tags:          req.Tags,
			Pricing:       req.Pricing,
			Page:          params.Page,
			PageSize:      params.PageSize,
			Semantic:      semantic,
			TrackHistory:  track,
			OriginalQuery: req.OriginalQuery,
			UserID:        auth.UserIDOrNil(c),
		})
		if err != nil {
			errors.InternalError(c, "search failed", err)
			return
		}

		c.JSON(http.StatusOK, SearchResponse{
			Tools:                result.Tools,
			Pagination:           pagination.NewMeta(params, result.TotalCount),
			Confidence:           int(math.Round(result.Confidence)),
			ConversationResponse: result.ConversationResponse,
			SuggestedRefinements: result.SuggestedRefinements,
		})
	}
}

// ConversationHandler handles one follow-up turn of a clarification
// dialogue
func ConversationHandler(engine *search.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		history := make([]llm.Message, len(req.History))
		for i, turn := range req.History {
			history[i] = llm.Message{Role: turn.Role, Content: turn.Content}
		}

		result, err := engine.ContinueConversation(c.Request.Context(), search.ContinueRequest{
			OriginalQuery: req.OriginalQuery,
			Message:       req.Message,
			History:       history,
		})
		if err != nil {
			errors.InternalError(c, "conversation failed", err)
			return
		}

		c.JSON(http.StatusOK, ConversationResponse{
			Response:             result.Response,
			SuggestedRefinements: result.SuggestedRefinements,
			SearchSuggestion:     result.SearchSuggestion,
			ToolCount:            result.ToolCount,
		})
	}
}

// ClarifyHandler is the upfront query health check
func ClarifyHandler(engine *search.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("query"))
		if query == "" {
			errors.BadRequest(c, "query parameter required", nil)
			return
		}
		if len(query) > 100 {
			errors.BadRequest(c, "query too long", nil)
			return
		}

		result, err := engine.Clarify(c.Request.Context(), query)
		if err != nil {
			errors.InternalError(c, "clarify failed", err)
			return
		}

		c.JSON(http.StatusOK, ClarifyResponse{
			Confidence:         int(math.Round(result.Confidence * 100)),
			NeedsClarification: result.NeedsClarification,
			Question:           result.Question,
			Matches:            result.Matches,
		})
	}
}
