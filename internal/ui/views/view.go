package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soratra/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Editor is the already rendered text area
	Editor      string
	Text        string
	Errors      domain.ErrorSet
	ScrollTop   int
	PaneHeight  int
	ShowOverlay bool

	WordCount       int
	WordCountFormat string
	Status          domain.Status
	Spinner         string

	Chips    []domain.Suggestion
	Selected int

	ShortHelp   string
	ShowHelp    bool
	HelpContent string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	overlayRender *OverlayRenderer
	chipRender    *ChipRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		overlayRender: NewOverlayRenderer(styles),
		chipRender:    NewChipRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopup(state.HelpContent, state.Width, state.Height)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	content.WriteString(r.styles.EditorBox.Render(state.Editor))
	content.WriteString("\n")

	if state.ShowOverlay {
		innerWidth := r.innerWidth(state)
		overlay := r.overlayRender.Render(state.Text, state.Errors, state.ScrollTop, innerWidth, state.PaneHeight)
		content.WriteString(r.styles.OverlayBox.Render(overlay))
		content.WriteString("\n")
	}

	// The chip line is kept even when empty so the layout does not jump
	content.WriteString(r.chipRender.Render(state.Chips, state.Selected))
	content.WriteString("\n")

	if state.ShortHelp != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString(r.styles.Help.Render(state.ShortHelp))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine renders the logo with word count and status right-aligned
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("soratra")

	format := state.WordCountFormat
	if format == "" {
		format = "%d teny"
	}
	count := format
	if strings.Contains(format, "%d") {
		count = fmt.Sprintf(format, state.WordCount)
	}
	status := state.Status.Message
	if state.Spinner != "" && state.Status.Kind == domain.StatusBusy {
		status = state.Spinner + " " + status
	}
	rightContent := fmt.Sprintf("%s  %s",
		r.styles.WordCount.Render(count),
		r.styles.StatusStyle(state.Status.Kind).Render(status))

	// Use a default width if state.Width is not set
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

// innerWidth is the overlay width inside its border and the main padding
func (r *Renderer) innerWidth(state ViewState) int {
	w := state.Width - 6
	if w < 10 {
		w = 10
	}
	return w
}
