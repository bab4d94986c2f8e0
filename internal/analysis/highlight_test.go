package analysis

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soratra/internal/domain"
)

var markupUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, ErrorOpen, "")
	s = strings.ReplaceAll(s, ErrorClose, "")
	return markupUnescaper.Replace(s)
}

func TestHighlightWrapsWholeWords(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		errors []string
		want   string
	}{
		{
			name:   "single token",
			text:   "mila miasa",
			errors: []string{"miasa"},
			want:   `mila <span class="error">miasa</span>`,
		},
		{
			name:   "longer token wins over its prefix",
			text:   "mila",
			errors: []string{"mi", "mila"},
			want:   `<span class="error">mila</span>`,
		},
		{
			name:   "substring inside a word is not matched",
			text:   "tanana ana",
			errors: []string{"ana"},
			want:   `tanana <span class="error">ana</span>`,
		},
		{
			name:   "duplicates are wrapped once per occurrence",
			text:   "ka ka",
			errors: []string{"ka", "ka", "ka"},
			want:   `<span class="error">ka</span> <span class="error">ka</span>`,
		},
		{
			name:   "non-ascii letters are word characters",
			text:   "fitiavàna àna",
			errors: []string{"àna"},
			want:   `fitiavàna <span class="error">àna</span>`,
		},
		{
			name:   "markup in text is escaped",
			text:   "<b> & zavatra",
			errors: []string{"zavatra"},
			want:   `&lt;b&gt; &amp; <span class="error">zavatra</span>`,
		},
		{
			name:   "entity names are never matched",
			text:   "a & amp",
			errors: []string{"amp"},
			want:   `a &amp; <span class="error">amp</span>`,
		},
		{
			name:   "wrapper words are never matched",
			text:   "error span",
			errors: []string{"error", "span", "class"},
			want:   `<span class="error">error</span> <span class="error">span</span>`,
		},
		{
			name:   "no errors leaves text escaped only",
			text:   "tsara <3",
			errors: nil,
			want:   `tsara &lt;3`,
		},
		{
			name:   "token with punctuation inside",
			text:   "a-b a",
			errors: []string{"a", "a-b"},
			want:   `<span class="error">a-b</span> <span class="error">a</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, domain.ErrorSet(tt.errors))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, stripMarkup(got))
		})
	}
}

func TestHighlightEmptyText(t *testing.T) {
	assert.Empty(t, Highlight("", domain.ErrorSet{"x"}))
	assert.Nil(t, Segments("", domain.ErrorSet{"x"}))
}

func TestHighlightRoundTripAndIdempotence(t *testing.T) {
	words := []string{"mi", "mila", "miasa", "ana", "àna", "<", ">", "&", "&amp;", "a_b", "vonin", "voninkazo"}
	seps := []string{" ", "  ", "\n", "\t", ", ", "-", ""}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		n := rng.Intn(8)
		for j := 0; j < n; j++ {
			b.WriteString(words[rng.Intn(len(words))])
			b.WriteString(seps[rng.Intn(len(seps))])
		}
		text := b.String()

		var errs domain.ErrorSet
		for j := rng.Intn(5); j > 0; j-- {
			errs = append(errs, words[rng.Intn(len(words))])
		}

		out := Highlight(text, errs)
		require.Equal(t, text, stripMarkup(out), "round trip failed for %q with %q", text, errs)
		require.Equal(t, out, Highlight(text, errs), "highlight is not deterministic for %q", text)

		var joined strings.Builder
		for _, seg := range Segments(text, errs) {
			joined.WriteString(seg.Text)
		}
		require.Equal(t, text, joined.String())
	}
}

func TestSegmentsFlagsOnlyErrorTokens(t *testing.T) {
	segs := Segments("mila miasa foana", domain.ErrorSet{"foana", "mila"})
	require.Equal(t, []Segment{
		{Text: "mila", Error: true},
		{Text: " miasa "},
		{Text: "foana", Error: true},
	}, segs)
}

func TestIsWordRune(t *testing.T) {
	for _, r := range []rune{'a', 'Z', 'à', 'ô', '7', '_', 'ñ'} {
		assert.True(t, IsWordRune(r), "%q", r)
	}
	for _, r := range []rune{' ', '-', '\'', '.', '<', '\n'} {
		assert.False(t, IsWordRune(r), "%q", r)
	}
}
