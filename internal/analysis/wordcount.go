package analysis

import "strings"

// CountWords returns the number of whitespace-delimited tokens in text.
// Leading and trailing whitespace is ignored, so "" and "  \n" count as 0.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// IsBlank reports whether text has no tokens at all
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
