package searchhistory

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores the append-only log of search activity
type Repository struct {
	db *pgxpool.Pool
}

// Entry is one logged search. OriginalQuery and RefinedQuery are only
// set when the search came out of a conversational refinement.
type Entry struct {
	ID            string    `json:"id"`
	Query         string    `json:"query"`
	OriginalQuery *string   `json:"original_query,omitempty"`
	RefinedQuery  *string   `json:"refined_query,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Pricing       *string   `json:"pricing,omitempty"`
	ResultCount   int       `json:"result_count"`
	UserID        *string   `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRequest captures one search to log
type CreateRequest struct {
	Query         string
	OriginalQuery *string
	RefinedQuery  *string
	Tags          []string
	Pricing       *string
	ResultCount   int
	UserID        *string
}
