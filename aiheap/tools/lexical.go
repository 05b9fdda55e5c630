package tools

import (
	"context"
	"fmt"
	"strings"
)

// appends the lexical-path filter conditions and returns the updated args
func appendLexicalFilters(b *strings.Builder, args []any, filter SearchFilter) []any {
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		fmt.Fprintf(b, " AND (t.name ILIKE $%d OR t.description ILIKE $%d)", len(args), len(args))
	}

	if filter.Pricing != "" {
		args = append(args, filter.Pricing)
		fmt.Fprintf(b, " AND t.pricing = $%d", len(args))
	}

	if len(filter.Tags) > 0 {
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

// builds the paginated lexical search query
func buildLexicalSearchQuery(filter SearchFilter, limit, offset int) (string, []any) {
	var b strings.Builder

	b.WriteString(`
		SELECT ` + toolColumns + `
		FROM tools t
		WHERE t.deleted_at IS NULL`)

	args := appendLexicalFilters(&b, nil, filter)

	args = append(args, limit, offset)
	fmt.Fprintf(&b, `
		ORDER BY t.created_at DESC, t.id
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return b.String(), args
}

// builds the count query matching buildLexicalSearchQuery minus pagination
func buildCountLexicalQuery(filter SearchFilter) (string, []any) {
	var b strings.Builder

	b.WriteString(`
		SELECT COUNT(*)
		FROM tools t
		WHERE t.deleted_at IS NULL`)

	args := appendLexicalFilters(&b, nil, filter)

	return b.String(), args
}

// LexicalSearch matches tools by substring on name/description with the
// same tag/pricing filters as the semantic path. Newest first.
func (r *Repository) LexicalSearch(ctx context.Context, filter SearchFilter, limit, offset int) ([]Tool, error) {
	query, args := buildLexicalSearchQuery(filter, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute lexical search: %w", err)
	}

	return collectTools(rows)
}

// CountLexical returns the total match count for a lexical search
func (r *Repository) CountLexical(ctx context.Context, filter SearchFilter) (int, error) {
	query, args := buildCountLexicalQuery(filter)

	var count int

	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lexical matches: %w", err)
	}

	return count, nil
}
