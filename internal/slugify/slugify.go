package slugify

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Make derives a deterministic, lowercase, URL-safe identifier from
// free text: whitespace and underscores become single hyphens and
// everything outside [a-z0-9-] is dropped. Empty or all-symbol input
// yields the empty string; callers must reject empty slugs before
// persisting them.
func Make(text string) string {
	// slug.Make keeps underscores, the group slug convention does not
	s := strings.ReplaceAll(text, "_", " ")
	s = slug.Make(s)
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
