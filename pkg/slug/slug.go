package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name. It is pure and
// total: the same input always yields the same slug, and any string (including
// the empty string) is accepted.
//
// Examples:
//   - "Dog Food" → "dog-food"
//   - "  Chew --- Toys!  " → "chew-toys"
//   - "!!!" → ""
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Runs of anything outside [a-z0-9] collapse into a single hyphen.
	slug = slugRegexp.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
