package tools

import (
	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/auth"
	"codeberg.org/aiheap/server/internal/llm"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, toolRepo *tools.Repository, tagRepo *tags.Repository, embedder llm.Embedder) {
	// public catalog reads
	router.GET("/tools", ListToolsHandler(toolRepo))
	router.GET("/tools/count", CountToolsHandler(toolRepo))
	router.GET("/tools/:slug", GetToolHandler(toolRepo))

	// authenticated writes
	toolsGroup := router.Group("/tools")
	toolsGroup.Use(auth.AuthMiddleware())
	{
		toolsGroup.GET("/mine", ListOwnedToolsHandler(toolRepo))
		toolsGroup.POST("", UpsertToolHandler(toolRepo, tagRepo, embedder))
		toolsGroup.DELETE("/:id", DeleteToolHandler(toolRepo, tagRepo))
	}
}
