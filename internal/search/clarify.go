package search

import "strings"

const (
	// below these the result set is probably not what the user meant
	semanticClarifyConfidence = 0.7
	lexicalClarifyConfidence  = 80

	// above these the set is big enough to browse without help
	semanticClarifyMaxResults = 10
	lexicalClarifyMaxResults  = 15

	// anything shorter reads as browsing, not searching
	exploratoryMaxLength = 5

	// upfront health check: below this the query is probably not
	// answerable from the catalog at all
	queryHealthThreshold = 0.5
)

// phrases that signal the user wants to look around, not drill down
var broadPhrases = map[string]bool{
	"ai":                 true,
	"ai tools":           true,
	"all tools":          true,
	"everything":         true,
	"show me everything": true,
	"tools":              true,
}

// shouldClarify decides whether to offer a follow-up question instead
// of just returning results. Zero results always warrant help;
// exploratory queries never do; in between, clarify only when the set
// is both low-confidence and too small to browse. Semantic confidence
// is on a 0-1 scale, lexical on 0-100.
func shouldClarify(resultCount int, confidence float64, query string, semantic bool) bool {
	if resultCount == 0 {
		return true
	}
	if isExploratory(query) {
		return false
	}

	if semantic {
		return confidence < semanticClarifyConfidence && resultCount < semanticClarifyMaxResults
	}

	return confidence < lexicalClarifyConfidence && resultCount < lexicalClarifyMaxResults
}

func isExploratory(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))

	return len(q) < exploratoryMaxLength || broadPhrases[q]
}
