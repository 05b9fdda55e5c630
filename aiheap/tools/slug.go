package tools

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	slugEdgeDash  = regexp.MustCompile(`^-+|-+$`)
	slugMultiDash = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a tool name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = slugMultiDash.ReplaceAllString(slug, "-")
	slug = slugEdgeDash.ReplaceAllString(slug, "")

	return slug
}
