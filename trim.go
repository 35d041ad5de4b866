package tmscrape

import "strings"

// Trim removes non-breaking spaces, collapses runs of whitespace into a
// single space and strips leading and trailing whitespace.
func Trim(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", "")
	return strings.Join(strings.Fields(s), " ")
}
