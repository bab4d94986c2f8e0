package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"soratra/internal/analysis"
	"soratra/internal/domain"
)

// OverlayRenderer draws the highlighting layer for the editor text
type OverlayRenderer struct {
	styles *Styles
}

// NewOverlayRenderer creates a new overlay renderer
func NewOverlayRenderer(styles *Styles) *OverlayRenderer {
	return &OverlayRenderer{styles: styles}
}

// Lines returns the text split into display lines with flagged tokens
// styled. Unflagged runs are written as-is, trailing spaces included.
func (r *OverlayRenderer) Lines(text string, errors domain.ErrorSet) []string {
	var lines []string
	var line strings.Builder
	for _, seg := range analysis.Segments(text, errors) {
		parts := strings.Split(seg.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			if seg.Error && part != "" {
				line.WriteString(r.styles.ErrorToken.Render(part))
			} else {
				line.WriteString(part)
			}
		}
	}
	return append(lines, line.String())
}

// Render returns the visible window of the overlay, starting at the
// logical line scrollTop
func (r *OverlayRenderer) Render(text string, errors domain.ErrorSet, scrollTop, width, height int) string {
	vp := viewport.New(width, height)
	vp.SetContent(strings.Join(r.Lines(text, errors), "\n"))
	vp.SetYOffset(scrollTop)
	return vp.View()
}
