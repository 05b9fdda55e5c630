package tags

import (
	"codeberg.org/aiheap/server/aiheap/tags"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, tagRepo *tags.Repository) {
	router.GET("/tags/popular", PopularTagsHandler(tagRepo))
	router.GET("/tags/search", SearchTagsHandler(tagRepo))
}
