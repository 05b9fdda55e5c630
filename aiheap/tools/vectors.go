package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// cosine distance cutoffs for retrieval
const (
	// candidates further than this are too dissimilar to be useful
	SimilarityThreshold = 0.5

	// looser cutoff for the clarification round-trip, where breadth
	// matters more than precision
	WideSimilarityThreshold = 0.6
)

// appends the shared vector-path filter conditions and returns the updated
// arg list. The vector placeholder is always $1.
func appendVectorFilters(b *strings.Builder, args []any, filter SearchFilter) []any {
	if filter.Pricing != "" {
		args = append(args, filter.Pricing)
		fmt.Fprintf(b, " AND t.pricing = $%d", len(args))
	}

	if len(filter.Tags) > 0 {
		// AND-intersection: the tool must carry every requested tag
		args = append(args, filter.Tags, len(filter.Tags))
		fmt.Fprintf(b, ` AND t.id IN (
			SELECT tt.tool_id
			FROM tool_tags tt
			WHERE tt.tag = ANY($%d)
			GROUP BY tt.tool_id
			HAVING COUNT(DISTINCT tt.tag) = $%d
		)`, len(args)-1, len(args))
	}

	return args
}

// builds the paginated nearest-neighbor query. The strict `< $2` bound on
// cosine distance means a larger threshold can only widen the candidate set.
func buildNearestNeighborsQuery(vector []float32, filter SearchFilter, threshold float64, limit, offset int) (string, []any) {
	var b strings.Builder

	args := []any{pgvector.NewVector(vector), threshold}

	b.WriteString(`
		SELECT t.id, t.vector <=> $1 AS distance
		FROM tools t
		WHERE t.vector IS NOT NULL
		  AND t.vector <=> $1 < $2
		  AND t.deleted_at IS NULL`)

	args = appendVectorFilters(&b, args, filter)

	args = append(args, limit, offset)
	fmt.Fprintf(&b, `
		ORDER BY distance, t.id
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return b.String(), args
}

// builds the count query matching buildNearestNeighborsQuery minus pagination
func buildCountNeighborsQuery(vector []float32, filter SearchFilter, threshold float64) (string, []any) {
	var b strings.Builder

	args := []any{pgvector.NewVector(vector), threshold}

	b.WriteString(`
		SELECT COUNT(*)
		FROM tools t
		WHERE t.vector IS NOT NULL
		  AND t.vector <=> $1 < $2
		  AND t.deleted_at IS NULL`)

	args = appendVectorFilters(&b, args, filter)

	return b.String(), args
}

// NearestNeighbors returns ids and cosine distances of the closest
// non-deleted tools within the threshold, filtered and paginated.
// Ordering is distance ascending with id as a stable tiebreak.
func (r *Repository) NearestNeighbors(ctx context.Context, vector []float32, filter SearchFilter, threshold float64, limit, offset int) ([]Candidate, error) {
	query, args := buildNearestNeighborsQuery(vector, filter, threshold, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute vector search: %w", err)
	}

	defer rows.Close()

	var candidates []Candidate

	for rows.Next() {
		var c Candidate

		if err := rows.Scan(&c.ID, &c.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// CountNeighbors returns how many non-deleted tools fall within the
// threshold under the same filters, ignoring pagination.
func (r *Repository) CountNeighbors(ctx context.Context, vector []float32, filter SearchFilter, threshold float64) (int, error) {
	query, args := buildCountNeighborsQuery(vector, filter, threshold)

	var count int

	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count neighbors: %w", err)
	}

	return count, nil
}

// NearestDistance returns the cosine distance of the single closest tool,
// or 1 when no embedded tools exist (worst case, zero confidence).
func (r *Repository) NearestDistance(ctx context.Context, vector []float32) (float64, error) {
	var distance float64

	err := r.db.QueryRow(ctx, queryNearestDistance, pgvector.NewVector(vector)).Scan(&distance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}

		return 0, fmt.Errorf("failed to find nearest distance: %w", err)
	}

	return distance, nil
}

// UpdateVector stores a freshly computed embedding for a tool
func (r *Repository) UpdateVector(ctx context.Context, id string, vector []float32) error {
	_, err := r.db.Exec(ctx, queryUpdateVector, pgvector.NewVector(vector), id)
	if err != nil {
		return fmt.Errorf("failed to update vector: %w", err)
	}

	return nil
}

// ListMissingVectors returns non-deleted tools that have no embedding yet
func (r *Repository) ListMissingVectors(ctx context.Context, limit int) ([]Tool, error) {
	rows, err := r.db.Query(ctx, queryListMissingVectors, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools missing vectors: %w", err)
	}

	return collectTools(rows)
}
