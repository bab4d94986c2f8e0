package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"soratra/internal/domain"
)

// ApplySuggestion returns text rewritten with s.
//
// A completion replaces the word being typed (everything after the last
// whitespace rune) and appends one space. A next-word suggestion is appended
// after the trimmed text, followed by one space. Unknown kinds leave text
// unchanged.
func ApplySuggestion(text string, s domain.Suggestion) string {
	switch s.Kind {
	case domain.KindCompletion:
		return completedPrefix(text) + s.Text + " "
	case domain.KindNextWord:
		trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
		if trimmed == "" {
			return s.Text + " "
		}
		return trimmed + " " + s.Text + " "
	default:
		return text
	}
}

// InferKind guesses the suggestion kind for a prediction that came back
// without one: text ending in whitespace (or empty) wants a next word.
func InferKind(text string) domain.SuggestionKind {
	if text == "" {
		return domain.KindNextWord
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if unicode.IsSpace(r) {
		return domain.KindNextWord
	}
	return domain.KindCompletion
}

// completedPrefix is text up to and including its last whitespace rune
func completedPrefix(text string) string {
	i := strings.LastIndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return text[:i+size]
}
