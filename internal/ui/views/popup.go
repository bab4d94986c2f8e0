package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centres the popup on a screen of the given size. Content
// taller than the screen is cut and marked.
func (pr *PopupRenderer) RenderPopup(popupContent string, width, height int) string {
	// border and padding take four lines
	visible := height - 4
	if visible < 5 {
		visible = 5
	}
	lines := strings.Split(popupContent, "\n")
	if len(lines) > visible {
		lines = lines[:visible]
		lines[visible-1] = pr.styles.Dim.Render("↓ (f1 for the full help)")
	}
	styled := pr.styles.PopupBox.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes styling from rendered output
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
