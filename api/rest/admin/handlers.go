package admin

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/api/rest/pagination"
	"codeberg.org/aiheap/server/internal/backfill"
	"codeberg.org/aiheap/server/internal/errors"
	"codeberg.org/aiheap/server/internal/llm"
	"github.com/gin-gonic/gin"
)

// ListSearchHistoryHandler pages through the search audit log
func ListSearchHistoryHandler(historyRepo *searchhistory.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultHistoryPageSize)))
		params := pagination.DefaultParams(page, pageSize, defaultHistoryPageSize, maxHistoryPageSize)

		ctx := c.Request.Context()

		entries, err := historyRepo.List(ctx, params.PageSize, params.Offset())
		if err != nil {
			errors.InternalError(c, "failed to list search history", err)
			return
		}

		total, err := historyRepo.Count(ctx)
		if err != nil {
			errors.InternalError(c, "failed to count search history", err)
			return
		}

		c.JSON(http.StatusOK, HistoryResponse{
			Entries:    entries,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// DeleteToolHandler tombstones any tool regardless of owner
func DeleteToolHandler(toolRepo *tools.Repository, tagRepo *tags.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !errors.IsValidUUID(id) {
			errors.BadRequest(c, "invalid tool id", nil)
			return
		}

		ctx := c.Request.Context()

		if err := toolRepo.SoftDelete(ctx, id); err != nil {
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

// ReembedHandler embeds every tool that is missing a vector
func ReembedHandler(toolRepo *tools.Repository, embedder llm.Embedder) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := backfill.Run(c.Request.Context(), toolRepo, embedder)
		if err != nil {
			errors.InternalError(c, "embedding backfill failed", err)
			return
		}

		c.JSON(http.StatusOK, ReembedResponse{Updated: updated})
	}
}
