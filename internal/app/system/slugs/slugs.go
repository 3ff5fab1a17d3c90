// Package slugs derives and checks the URL slugs of content items.
package slugs

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// From derives a slug from a title. It returns an error when the title has
// nothing slug-worthy in it (e.g. only punctuation).
func From(title string) (string, error) {
	s, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil {
		return "", fmt.Errorf("derive slug from %q: %w", title, err)
	}
	if s == "" {
		return "", fmt.Errorf("derive slug from %q: empty result", title)
	}
	return s, nil
}

// Normalize cleans an admin-supplied slug with the same rules as From.
func Normalize(s string) (string, error) {
	return From(s)
}

// IsValid reports whether s already is a normalized slug.
func IsValid(s string) bool {
	return s != "" && slug.IsValid(s)
}
