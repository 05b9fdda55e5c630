package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new tag repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// lists the most used tags, busiest first
func (r *Repository) ListPopular(ctx context.Context, limit int) ([]Tag, error) {
	rows, err := r.db.Query(ctx, queryListPopular, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// finds tags whose name contains the given fragment
func (r *Repository) Search(ctx context.Context, fragment string, limit int) ([]Tag, error) {
	rows, err := r.db.Query(ctx, querySearch, fragment, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// lists the tags attached to a single tool
func (r *Repository) ListForTool(ctx context.Context, toolID string) ([]string, error) {
	rows, err := r.db.Query(ctx, queryListToolTags, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}

	return out, rows.Err()
}

// SyncToolTags reconciles a tool's tag associations against the desired
// set, keeping the per-tag usage counters in step. Runs in a single
// transaction so a partial update never skews the counts.
func (r *Repository) SyncToolTags(ctx context.Context, toolID string, desired []string) error {
	current, err := r.ListForTool(ctx, toolID)
	if err != nil {
		return err
	}

	added, removed := diffTags(current, desired)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tag sync: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, tag := range added {
		if _, err := tx.Exec(ctx, queryAttachTag, toolID, tag); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, queryUpsertCount, tag); err != nil {
			return err
		}
	}

	for _, tag := range removed {
		if _, err := tx.Exec(ctx, queryDetachTag, toolID, tag); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, queryDecrementCount, tag); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// DetachAll removes every tag from a tool and decrements the counters.
// Used when a tool is deleted.
func (r *Repository) DetachAll(ctx context.Context, toolID string) error {
	return r.SyncToolTags(ctx, toolID, nil)
}

// diffTags computes which tags must be attached and which detached to
// move from current to desired. Comparison is case-insensitive and
// duplicates in either list are ignored.
func diffTags(current, desired []string) (added, removed []string) {
	have := make(map[string]bool, len(current))
	for _, tag := range current {
		have[normalizeTag(tag)] = true
	}

	want := make(map[string]bool, len(desired))
	for _, tag := range desired {
		name := normalizeTag(tag)
		if name == "" || want[name] {
			continue
		}
		want[name] = true
		if !have[name] {
			added = append(added, name)
		}
	}

	for _, tag := range current {
		name := normalizeTag(tag)
		if !want[name] {
			removed = append(removed, name)
		}
	}

	return added, removed
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func collectTags(rows pgx.Rows) ([]Tag, error) {
	var out []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.Name, &t.ToolCount, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}
