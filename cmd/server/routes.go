package main

import (
	"codeberg.org/aiheap/server/api/rest/admin"
	"codeberg.org/aiheap/server/api/rest/health"
	searchapi "codeberg.org/aiheap/server/api/rest/search"
	tagsapi "codeberg.org/aiheap/server/api/rest/tags"
	toolsapi "codeberg.org/aiheap/server/api/rest/tools"
	"codeberg.org/aiheap/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// requests per minute per client IP on the public API
const publicRateLimit = "120-M"

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.GET("/health", health.Handler)

	limit, err := ratelimit.Middleware(publicRateLimit)
	if err != nil {
		return err
	}

	v1 := router.Group("/api/v1")
	v1.Use(limit)

	{
		v1.GET("/ping", health.PingHandler)

		searchapi.RegisterRoutes(v1, server.engine)
		toolsapi.RegisterRoutes(v1, server.toolRepo, server.tagRepo, server.services.LLM)
		tagsapi.RegisterRoutes(v1, server.tagRepo)
		admin.RegisterRoutes(v1, server.toolRepo, server.tagRepo, server.historyRepo, server.services.LLM)
	}

	return nil
}
