package domain

import "fmt"

// SuggestionKind tells the applicator how a suggestion rewrites the text
type SuggestionKind string

const (
	// KindCompletion replaces the word currently being typed
	KindCompletion SuggestionKind = "completion"
	// KindNextWord appends a new word after the last completed one
	KindNextWord SuggestionKind = "next-word"
)

// ParseSuggestionKind maps a wire value onto a SuggestionKind
func ParseSuggestionKind(s string) (SuggestionKind, error) {
	switch SuggestionKind(s) {
	case KindCompletion, KindNextWord:
		return SuggestionKind(s), nil
	default:
		return "", fmt.Errorf("unknown suggestion kind %q", s)
	}
}

// Icon returns the chip marker for the kind
func (k SuggestionKind) Icon() string {
	if k == KindCompletion {
		return "📝"
	}
	return "➡️"
}

// ErrorSet is the ordered collection of distinct misspelled tokens reported
// for a single text snapshot.
type ErrorSet []string

// NewErrorSet drops empty and duplicate tokens, keeping first-seen order
func NewErrorSet(tokens []string) ErrorSet {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	set := make(ErrorSet, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		set = append(set, tok)
	}
	return set
}

// Len returns the number of distinct tokens
func (e ErrorSet) Len() int { return len(e) }

// Prediction is what the predictor returns for one text snapshot
type Prediction struct {
	Suggestions []string
	Kind        SuggestionKind
}

// Suggestion is one rendered chip. It is immutable once built; Cycle ties
// it to the analysis cycle that produced it.
type Suggestion struct {
	Text  string
	Kind  SuggestionKind
	Cycle uint64
	Index int // position in the chip row
}

// Label is the text shown on the chip
func (s Suggestion) Label() string {
	return s.Kind.Icon() + " " + s.Text
}

// StatusKind classifies the status line
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusBusy
	StatusClean
	StatusErrorsFound
	StatusBackendError
)

// Status is the textual state shown in the status display
type Status struct {
	Kind       StatusKind
	ErrorCount int
	Message    string
}
