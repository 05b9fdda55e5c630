package admin

import (
	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/auth"
	"codeberg.org/aiheap/server/internal/llm"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, toolRepo *tools.Repository, tagRepo *tags.Repository, historyRepo *searchhistory.Repository, embedder llm.Embedder) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminGroup.GET("/search-history", ListSearchHistoryHandler(historyRepo))
		adminGroup.DELETE("/tools/:id", DeleteToolHandler(toolRepo, tagRepo))
		adminGroup.POST("/tools/reembed", ReembedHandler(toolRepo, embedder))
	}
}
