package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"soratra/internal/domain"
)

const (
	// ErrorOpen and ErrorClose wrap each flagged token in HTML markup
	ErrorOpen  = `<span class="error">`
	ErrorClose = `</span>`
)

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Segment is a run of the original text, flagged or not
type Segment struct {
	Text  string
	Error bool
}

type span struct {
	start, end int // byte offsets, half-open
}

// Segments splits text into plain and flagged runs. Concatenating the Text of
// every segment always yields text unchanged.
//
// Tokens are deduplicated and matched longest first, on word boundaries. A
// shorter token never claims bytes already claimed by a longer one, so "mi"
// cannot split a flagged "mila".
func Segments(text string, errors domain.ErrorSet) []Segment {
	if text == "" {
		return nil
	}
	tokens := orderTokens(errors)
	if len(tokens) == 0 {
		return []Segment{{Text: text}}
	}

	var claimed []span
	for _, tok := range tokens {
		for _, sp := range findWholeWord(text, tok) {
			if overlapsAny(claimed, sp) {
				continue
			}
			claimed = append(claimed, sp)
		}
	}
	if len(claimed) == 0 {
		return []Segment{{Text: text}}
	}
	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	segs := make([]Segment, 0, 2*len(claimed)+1)
	pos := 0
	for _, sp := range claimed {
		if sp.start > pos {
			segs = append(segs, Segment{Text: text[pos:sp.start]})
		}
		segs = append(segs, Segment{Text: text[sp.start:sp.end], Error: true})
		pos = sp.end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}

// Highlight renders text as HTML with every flagged token wrapped in
// ErrorOpen/ErrorClose. Markup-significant characters are escaped.
func Highlight(text string, errors domain.ErrorSet) string {
	var b strings.Builder
	b.Grow(len(text) + len(errors)*(len(ErrorOpen)+len(ErrorClose)))
	for _, seg := range Segments(text, errors) {
		if seg.Error {
			b.WriteString(ErrorOpen)
			b.WriteString(EscapeMarkup(seg.Text))
			b.WriteString(ErrorClose)
			continue
		}
		b.WriteString(EscapeMarkup(seg.Text))
	}
	return b.String()
}

// EscapeMarkup escapes &, < and >.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

// orderTokens dedups tokens and sorts them by descending rune length.
// Equal lengths keep their reported order.
func orderTokens(errors domain.ErrorSet) []string {
	tokens := []string(domain.NewErrorSet(errors))
	sort.SliceStable(tokens, func(i, j int) bool {
		return utf8.RuneCountInString(tokens[i]) > utf8.RuneCountInString(tokens[j])
	})
	return tokens
}

// findWholeWord returns every occurrence of tok in text that sits on word
// boundaries at both ends.
func findWholeWord(text, tok string) []span {
	var out []span
	pos := 0
	for pos <= len(text)-len(tok) {
		i := strings.Index(text[pos:], tok)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(tok)
		if isBoundary(text, start) && isBoundary(text, end) {
			out = append(out, span{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

// isBoundary reports whether byte offset i of s is a word boundary: exactly
// one of the runes on either side is a word character.
func isBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = IsWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = IsWordRune(r)
	}
	return before != after
}

// IsWordRune reports whether r belongs to a word: any letter, combining
// mark, digit, or connector punctuation such as '_'.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || unicode.Is(unicode.Pc, r)
}

func overlapsAny(spans []span, sp span) bool {
	for _, c := range spans {
		if sp.start < c.end && c.start < sp.end {
			return true
		}
	}
	return false
}
