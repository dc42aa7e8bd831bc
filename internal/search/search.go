// Package search normalizes user-entered search text so that matching
// behaves the same on every host locale, including for Cyrillic input.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize case-folds the query and trims surrounding whitespace.
// An empty result means "no filter".
func Normalize(query string) string {
	return folder.String(strings.TrimSpace(query))
}

// Contains reports whether the folded form of value contains needle.
// The needle must already be normalized; an empty needle matches
// everything. Both sides are folded here, never in SQL, so matching
// does not depend on the database collation.
func Contains(value, needle string) bool {
	return needle == "" || strings.Contains(folder.String(value), needle)
}
