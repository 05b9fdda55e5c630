package search

import (
	"fmt"
	"strings"
)

// buildConversationPrompt summarizes the retrieval state for the model:
// the query, how many tools matched, the dominant tags among them, and
// a few sample names
func buildConversationPrompt(query string, totalCount int, topTags, sampleNames []string) string {
	var b strings.Builder

	b.WriteString("You are a friendly assistant helping someone find AI tools in a directory.\n")
	fmt.Fprintf(&b, "The user searched for: %q\n", query)
	fmt.Fprintf(&b, "The search matched %d tools.\n", totalCount)

	if len(topTags) > 0 {
		fmt.Fprintf(&b, "The most common categories among the matches are: %s.\n", strings.Join(topTags, ", "))
	}
	if len(sampleNames) > 0 {
		fmt.Fprintf(&b, "Example matches: %s.\n", strings.Join(sampleNames, ", "))
	}

	if totalCount == 0 {
		b.WriteString("Nothing matched. Ask one short, empathetic clarifying question ")
		b.WriteString("to find out what the user is actually trying to do. ")
		b.WriteString("Do not apologize at length and do not invent tools.\n")
	} else {
		b.WriteString("Continue the conversation naturally. ")
		b.WriteString("If this is the first turn, briefly acknowledge what was found and offer to narrow it down. ")
		b.WriteString("Otherwise respond to the user's latest message. ")
		b.WriteString("Keep replies to one or two sentences and never list the tools yourself.\n")
	}

	return b.String()
}

// buildRefinementPrompt asks the model to compress a clarification
// dialogue back into a short search phrase
func buildRefinementPrompt(originalQuery string, availableTags []string) string {
	var b strings.Builder

	b.WriteString("Rewrite the conversation below into a short search query for an AI tools directory.\n")
	fmt.Fprintf(&b, "The original search was: %q\n", originalQuery)

	if len(availableTags) > 0 {
		fmt.Fprintf(&b, "Known category terms that work well: %s.\n", strings.Join(availableTags, ", "))
	}

	b.WriteString("Rules:\n")
	b.WriteString("- 2 to 8 words, lowercase, no quotes, no trailing punctuation\n")
	b.WriteString("- drop conversational filler like \"i want\" or \"can you help me\"\n")
	b.WriteString("- keep concrete functional and category terms, prefer the known terms above\n")
	b.WriteString("- respond with the query only, nothing else\n")

	return b.String()
}
