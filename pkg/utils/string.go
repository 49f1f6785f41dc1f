package utils

import "strings"

// NormalizeWhitespace collapses runs of whitespace (including newlines) into
// single spaces and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most max characters, never splitting a rune. Used for
// request payload budgets.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// CleanToValidUTF8 strips invalid UTF-8 sequences from scraped text.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
