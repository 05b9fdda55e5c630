package tags

import (
	"net/http"
	"strconv"

	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const (
	defaultTagLimit = 20
	maxTagLimit     = 100
)

type ListResponse struct {
	Tags []tags.Tag `json:"tags"`
}

// PopularTagsHandler lists the most used tags
func PopularTagsHandler(tagRepo *tags.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimit(c)

		list, err := tagRepo.ListPopular(c.Request.Context(), limit)
		if err != nil {
			errors.InternalError(c, "failed to list tags", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Tags: list})
	}
}

// SearchTagsHandler finds tags by name fragment
func SearchTagsHandler(tagRepo *tags.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")
		if query == "" {
			errors.BadRequest(c, "query parameter required", nil)
			return
		}

		list, err := tagRepo.Search(c.Request.Context(), query, parseLimit(c))
		if err != nil {
			errors.InternalError(c, "failed to search tags", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Tags: list})
	}
}

func parseLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTagLimit)))
	if limit < 1 {
		limit = defaultTagLimit
	}
	if limit > maxTagLimit {
		limit = maxTagLimit
	}

	return limit
}
