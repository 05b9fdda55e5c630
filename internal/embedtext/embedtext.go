// Package embedtext builds the text fed to the embedding model.
//
// Queries and stored tools must be framed the same way on both paths or
// retrieval quality silently degrades, so every caller goes through here.
package embedtext

import (
	"fmt"
	"strings"
)

// framing prefix applied to search queries so they embed into the same
// region as the stored tool documents
const queryFramingPrefix = "With AI I want to "

// ForQuery returns the embedding input for a search query.
func ForQuery(query string) string {
	return queryFramingPrefix + strings.TrimSpace(query)
}

// ForTool returns the embedding input for a stored tool. Recomputed
// whenever name, description, tags or pricing change.
func ForTool(name, description string, tags []string, pricing string) string {
	doc := fmt.Sprintf(
		"Name: %s;\nDescription: %s;\nTags: %s;\nPricing: %s;",
		name,
		description,
		strings.Join(tags, ", "),
		pricing,
	)

	return strings.TrimSpace(doc)
}
