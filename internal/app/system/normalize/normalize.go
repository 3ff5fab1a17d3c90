// Package normalize canonicalizes user-entered identifiers before they are
// stored or compared.
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace. Case is kept.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Category lowercases a free-form category and joins its words with dashes,
// so "Home Interiors" and "home  interiors" file under the same filter.
func Category(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
