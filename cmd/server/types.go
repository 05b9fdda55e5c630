package main

import (
	"codeberg.org/aiheap/server/aiheap/searchhistory"
	"codeberg.org/aiheap/server/aiheap/tags"
	"codeberg.org/aiheap/server/aiheap/tools"
	"codeberg.org/aiheap/server/internal/config"
	"codeberg.org/aiheap/server/internal/llm"
	"codeberg.org/aiheap/server/internal/search"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	toolRepo    *tools.Repository
	tagRepo     *tags.Repository
	historyRepo *searchhistory.Repository
	engine      *search.Engine
	services    *Services
	router      *gin.Engine
}

// holds all external service clients
type Services struct {
	LLM llm.LLM
}
