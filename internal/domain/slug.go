package domain

import (
	"regexp"
	"strings"
)

var (
	slugApostropheRe = regexp.MustCompile(`['’]`)
	slugDisallowedRe = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	slugWhitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	slugHyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify derives the URL token for an event title: lowercase, apostrophes dropped,
// anything outside [a-z0-9], whitespace and '-' removed, whitespace runs and repeated
// hyphens collapsed to a single '-', and no leading or trailing '-'.
// A title that leaves nothing behind is a validation error.
func Slugify(title string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugApostropheRe.ReplaceAllString(s, "")
	s = slugDisallowedRe.ReplaceAllString(s, "")
	s = slugWhitespaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", newValidationError("slug", "unable to derive slug from title")
	}
	return s, nil
}
