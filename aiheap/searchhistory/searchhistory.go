package searchhistory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new search history repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create appends one search to the log
func (r *Repository) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	entry := Entry{
		ID:            uuid.NewString(),
		Query:         req.Query,
		OriginalQuery: req.OriginalQuery,
		RefinedQuery:  req.RefinedQuery,
		Tags:          req.Tags,
		Pricing:       req.Pricing,
		ResultCount:   req.ResultCount,
		UserID:        req.UserID,
	}

	err := r.db.QueryRow(
		ctx,
		queryInsert,
		entry.ID,
		entry.Query,
		entry.OriginalQuery,
		entry.RefinedQuery,
		entry.Tags,
		entry.Pricing,
		entry.ResultCount,
		entry.UserID,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// List returns logged searches, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID,
			&e.Query,
			&e.OriginalQuery,
			&e.RefinedQuery,
			&e.Tags,
			&e.Pricing,
			&e.ResultCount,
			&e.UserID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// Count returns the total number of logged searches
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
