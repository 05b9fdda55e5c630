package tools

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// pricing tiers
const (
	PricingFree     = "free"
	PricingPaid     = "paid"
	PricingFreePaid = "free-paid"
)

type Tool struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	Pricing     string    `json:"pricing"`
	Rating      float64   `json:"rating"`
	OwnerID     *string   `json:"owner_id,omitempty"`
	Tags        []string  `json:"tags"`
	HasVector   bool      `json:"-"` // tools without a vector are lexical-only
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// a nearest-neighbor hit before hydration
type Candidate struct {
	ID       string
	Distance float64
}

// filters shared by the semantic and lexical paths
type SearchFilter struct {
	Query   string   // substring match on name/description (lexical path only)
	Tags    []string // item must carry ALL of these tags
	Pricing string   // equality filter when non-empty
}

// contains data for creating or updating a tool
type UpsertToolRequest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=2000"`
	URL         string   `json:"url" binding:"required,url"`
	ImageURL    string   `json:"image_url,omitempty" binding:"omitempty,url"`
	Pricing     string   `json:"pricing" binding:"required,oneof=free paid free-paid"`
	Tags        []string `json:"tags" binding:"max=20,dive,max=50"`
}
