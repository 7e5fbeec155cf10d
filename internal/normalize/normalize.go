// Package normalize centralizes canonical forms shared across components.
package normalize

import "strings"

// Email returns the canonical form of an email address used for both
// storage and comparison: surrounding whitespace trimmed, lower-cased.
// Every email written to or matched against the database goes through
// this function so the components cannot drift apart.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
