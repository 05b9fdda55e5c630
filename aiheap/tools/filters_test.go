package tools

import (
	"reflect"
	"strings"
	"testing"
)

var testVector = []float32{0.1, 0.2, 0.3}

// Filtering by several tags must require the tool to carry all of them,
// so a tool tagged only {writing} never matches a {writing, marketing}
// filter even though one tag overlaps.
func TestVectorQueryTagsRequireAll(t *testing.T) {
	filter := SearchFilter{Tags: []string{"writing", "marketing"}}

	query, args := buildNearestNeighborsQuery(testVector, filter, SimilarityThreshold, 10, 0)

	if !strings.Contains(query, "tt.tag = ANY($3)") {
		t.Errorf("expected tag membership on $3, got:\n%s", query)
	}
	if !strings.Contains(query, "HAVING COUNT(DISTINCT tt.tag) = $4") {
		t.Errorf("expected distinct-tag count to match the filter size, got:\n%s", query)
	}
	if got, ok := args[2].([]string); !ok || !reflect.DeepEqual(got, filter.Tags) {
		t.Errorf("args[2] = %v, want %v", args[2], filter.Tags)
	}
	if args[3] != 2 {
		t.Errorf("args[3] = %v, want 2 (one per requested tag)", args[3])
	}
}

func TestVectorQueryPlaceholderAlignment(t *testing.T) {
	filter := SearchFilter{
		Tags:    []string{"writing"},
		Pricing: PricingFree,
	}

	query, args := buildNearestNeighborsQuery(testVector, filter, SimilarityThreshold, 12, 24)

	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}
	if !strings.Contains(query, "t.pricing = $3") {
		t.Errorf("expected pricing on $3, got:\n%s", query)
	}
	if !strings.Contains(query, "tt.tag = ANY($4)") || !strings.Contains(query, "HAVING COUNT(DISTINCT tt.tag) = $5") {
		t.Errorf("expected tags on $4/$5, got:\n%s", query)
	}
	if !strings.Contains(query, "LIMIT $6 OFFSET $7") {
		t.Errorf("expected pagination on $6/$7, got:\n%s", query)
	}
	if args[2] != PricingFree || args[5] != 12 || args[6] != 24 {
		t.Errorf("unexpected arg values: %v", args)
	}
}

// Both vector paths bound candidates with a strict `< $2` on the same
// cosine distance expression. Raising the threshold therefore only admits
// more rows, never fewer, and search and count agree on the cutoff.
func TestVectorQueryDistanceBound(t *testing.T) {
	const predicate = "t.vector <=> $1 < $2"

	search, searchArgs := buildNearestNeighborsQuery(testVector, SearchFilter{}, SimilarityThreshold, 10, 0)
	count, countArgs := buildCountNeighborsQuery(testVector, SearchFilter{}, WideSimilarityThreshold)

	if !strings.Contains(search, predicate) {
		t.Errorf("search query missing distance bound:\n%s", search)
	}
	if !strings.Contains(count, predicate) {
		t.Errorf("count query missing distance bound:\n%s", count)
	}
	if searchArgs[1] != SimilarityThreshold {
		t.Errorf("search threshold arg = %v, want %v", searchArgs[1], SimilarityThreshold)
	}
	if countArgs[1] != WideSimilarityThreshold {
		t.Errorf("count threshold arg = %v, want %v", countArgs[1], WideSimilarityThreshold)
	}
	if strings.Contains(count, "LIMIT") {
		t.Errorf("count query must not paginate:\n%s", count)
	}
}

func TestLexicalQueryFilters(t *testing.T) {
	filter := SearchFilter{
		Query:   "writing assistant",
		Tags:    []string{"writing", "marketing"},
		Pricing: PricingPaid,
	}

	query, args := buildLexicalSearchQuery(filter, 20, 0)

	if !strings.Contains(query, "t.name ILIKE $1 OR t.description ILIKE $1") {
		t.Errorf("expected substring match on $1, got:\n%s", query)
	}
	if args[0] != "%writing assistant%" {
		t.Errorf("args[0] = %v, want wrapped pattern", args[0])
	}
	if !strings.Contains(query, "t.pricing = $2") {
		t.Errorf("expected pricing on $2, got:\n%s", query)
	}
	if !strings.Contains(query, "tt.tag = ANY($3)") || !strings.Contains(query, "HAVING COUNT(DISTINCT tt.tag) = $4") {
		t.Errorf("expected all-tags condition on $3/$4, got:\n%s", query)
	}
	if args[3] != 2 {
		t.Errorf("args[3] = %v, want 2", args[3])
	}
}

// the lexical count shares the filter conditions with the paged query
func TestLexicalCountMatchesSearchFilters(t *testing.T) {
	filter := SearchFilter{Query: "design", Tags: []string{"design"}}

	search, searchArgs := buildLexicalSearchQuery(filter, 20, 0)
	count, countArgs := buildCountLexicalQuery(filter)

	searchWhere := search[strings.Index(search, "WHERE t.deleted_at"):strings.LastIndex(search, "ORDER BY")]
	countWhere := count[strings.Index(count, "WHERE t.deleted_at"):]

	if strings.TrimSpace(searchWhere) != strings.TrimSpace(countWhere) {
		t.Errorf("filter conditions diverge:\nsearch: %s\ncount: %s", searchWhere, countWhere)
	}
	if !reflect.DeepEqual(searchArgs[:len(countArgs)], countArgs) {
		t.Errorf("filter args diverge: %v vs %v", searchArgs, countArgs)
	}
}
