package search

import (
	"codeberg.org/aiheap/server/internal/auth"
	"codeberg.org/aiheap/server/internal/search"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, engine *search.Engine) {
	// optional auth so signed-in searches are attributed in history
	searchGroup := router.Group("/search")
	searchGroup.Use(auth.OptionalAuthMiddleware())
	{
		searchGroup.GET("", SearchHandler(engine))
		searchGroup.POST("", SearchHandler(engine))
		searchGroup.POST("/conversation", ConversationHandler(engine))
		searchGroup.GET("/clarify", ClarifyHandler(engine))
	}
}
