package tags

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides access to the tag catalog
type Repository struct {
	db *pgxpool.Pool
}

// Tag is a catalog entry with its live usage count
type Tag struct {
	Name      string    `json:"name"`
	ToolCount int       `json:"tool_count"`
	CreatedAt time.Time `json:"created_at"`
}
