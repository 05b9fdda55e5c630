package tools

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/auth"
	"codeberg.org/aiheap/server/internal/embedtext"
	"codeberg.org/aiheap/server/internal/errors"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// GetToolHandler fetches a single tool by slug
func GetToolHandler(toolRepo *tools.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tool, err := toolRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if stderrors.Is(err, tools.ErrToolNotFound) {
				errors.NotFound(c, "tool")
				return
			}
			errors.InternalError(c, "failed to fetch tool", err)
			return
		}

		c.JSON(http.StatusOK, tool)
	}
}

// ListToolsHandler lists tools, newest by default, trending on request
func ListToolsHandler(toolRepo *tools.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
		if limit < 1 {
			limit = defaultListLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		var (
			list []tools.Tool
			err  error
		)

		switch c.DefaultQuery("list", "newest") {
		case "trending":
			list, err = toolRepo.ListTrending(c.Request.Context(), limit)
		case "newest":
			list, err = toolRepo.ListNewest(c.Request.Context(), limit)
		default:
			errors.BadRequest(c, "list must be newest or trending", nil)
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to list tools", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Tools: list})
	}
}

// ListOwnedToolsHandler lists the authenticated user's own submissions
func ListOwnedToolsHandler(toolRepo *tools.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		list, err := toolRepo.ListOwned(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list tools", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Tools: list})
	}
}

// CountToolsHandler returns the catalog size
func CountToolsHandler(toolRepo *tools.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := toolRepo.Count(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to count tools", err)
			return
		}

		c.JSON(http.StatusOK, CountResponse{Count: count})
	}
}

// UpsertToolHandler creates or updates a tool for the authenticated
// user, reconciles its tag associations, and recomputes the embedding.
// An embedding failure does not fail the write: the tool stays
// lexical-only until the next backfill run.
func UpsertToolHandler(toolRepo *tools.Repository, tagRepo *tags.Repository, embedder llm.Embedder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		var req tools.UpsertToolRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		slug := tools.Slugify(req.Name)
		if slug == "" {
			errors.BadRequest(c, "name must contain at least one letter or digit", nil)
			return
		}

		ctx := c.Request.Context()

		id, err := toolRepo.Upsert(ctx, userID, slug, req)
		if err != nil {
			switch {
			case stderrors.Is(err, tools.ErrSlugTaken):
				errors.Conflict(c, "a tool with this name already exists")
			case stderrors.Is(err, tools.ErrToolNotFound):
				errors.NotFound(c, "tool")
			default:
				errors.InternalError(c, "failed to save tool", err)
			}
			return
		}

		if err := tagRepo.SyncToolTags(ctx, id, req.Tags); err != nil {
			errors.InternalError(c, "failed to update tags", err)
			return
		}

		// the searchable text changed, so the vector is stale
		doc := embedtext.ForTool(req.Name, req.Description, req.Tags, req.Pricing)
		if vector, err := embedder.GenerateEmbedding(ctx, doc); err != nil {
			logger.Warn("embedding recompute failed, tool is lexical-only until backfill", "tool_id", id, "error", err)
		} else if err := toolRepo.UpdateVector(ctx, id, vector); err != nil {
			errors.InternalError(c, "failed to store embedding", err)
			return
		}

		tool, err := toolRepo.GetByID(ctx, id)
		if err != nil {
			errors.InternalError(c, "failed to fetch saved tool", err)
			return
		}

		c.JSON(http.StatusOK, UpsertResponse{Tool: tool})
	}
}

// DeleteToolHandler tombstones a tool owned by the authenticated user
func DeleteToolHandler(toolRepo *tools.Repository, tagRepo *tags.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "not authenticated")
			return
		}

		id := c.Param("id")
		if !errors.IsValidUUID(id) {
			errors.BadRequest(c, "invalid tool id", nil)
			return
		}

		ctx := c.Request.Context()

		if err := toolRepo.SoftDeleteOwned(ctx, id, userID); err != nil {
			if stderrors.Is(err, tools.ErrToolNotFound) {
				errors.NotFound(c, "tool")
				return
			}
			errors.InternalError(c, "failed to delete tool", err)
			return
		}

		if err := tagRepo.DetachAll(ctx, id); err != nil {
			errors.InternalError(c, "failed to release tags", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "tool deleted"})
	}
}
