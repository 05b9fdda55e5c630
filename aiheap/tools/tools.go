package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrSlugTaken    = errors.New("tool with this name already exists")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanTool(row pgx.Row) (*Tool, error) {
	var t Tool

	err := row.Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Description,
		&t.URL,
		&t.ImageURL,
		&t.Pricing,
		&t.Rating,
		&t.OwnerID,
		&t.Tags,
		&t.HasVector,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if t.Tags == nil {
		t.Tags = []string{}
	}

	return &t, nil
}

func collectTools(rows pgx.Rows) ([]Tool, error) {
	defer rows.Close()

	var result []Tool

	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}

		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tools: %w", err)
	}

	return result, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Tool, error) {
	tool, err := scanTool(r.db.QueryRow(ctx, queryGetBySlug, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrToolNotFound
		}

		return nil, fmt.Errorf("failed to get tool: %w", err)
	}

	return tool, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Tool, error) {
	tool, err := scanTool(r.db.QueryRow(ctx, queryGetByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrToolNotFound
		}

		return nil, fmt.Errorf("failed to get tool: %w", err)
	}

	return tool, nil
}

// hydrates full records for retrieval candidates, preserving input order
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Tool, error) {
	if len(ids) == 0 {
		return []Tool{}, nil
	}

	rows, err := r.db.Query(ctx, queryGetByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate tools: %w", err)
	}

	return collectTools(rows)
}

func (r *Repository) ListNewest(ctx context.Context, limit int) ([]Tool, error) {
	rows, err := r.db.Query(ctx, queryListNewest, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newest tools: %w", err)
	}

	return collectTools(rows)
}

func (r *Repository) ListTrending(ctx context.Context, limit int) ([]Tool, error) {
	rows, err := r.db.Query(ctx, queryListTrending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending tools: %w", err)
	}

	return collectTools(rows)
}

func (r *Repository) ListOwned(ctx context.Context, ownerID string) ([]Tool, error) {
	rows, err := r.db.Query(ctx, queryListOwned, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned tools: %w", err)
	}

	return collectTools(rows)
}

// creates or updates a tool row. Tag associations and the embedding vector
// are maintained separately by the caller.
func (r *Repository) Upsert(ctx context.Context, ownerID, slug string, req UpsertToolRequest) (string, error) {
	// slug must be unique across all tools, including soft-deleted ones
	var existingID string

	err := r.db.QueryRow(ctx, queryFindBySlugAnyState, slug).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}

	if existingID != "" && existingID != req.ID {
		return "", ErrSlugTaken
	}

	if req.ID == "" {
		id := uuid.NewString()

		err := r.db.QueryRow(ctx, queryInsert,
			id, slug, req.Name, req.Description, req.URL, req.ImageURL, req.Pricing, ownerID,
		).Scan(&id)

		if err != nil {
			return "", fmt.Errorf("failed to insert tool: %w", err)
		}

		return id, nil
	}

	var id string

	err = r.db.QueryRow(ctx, queryUpdate,
		slug, req.Name, req.Description, req.URL, req.ImageURL, req.Pricing, req.ID,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrToolNotFound
		}

		return "", fmt.Errorf("failed to update tool: %w", err)
	}

	return id, nil
}

// tombstones a tool owned by the given user
func (r *Repository) SoftDeleteOwned(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Exec(ctx, querySoftDeleteOwned, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// tombstones any tool, regardless of owner (admin curation)
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, querySoftDelete, id)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// returns the number of non-deleted tools
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tools: %w", err)
	}

	return count, nil
}
