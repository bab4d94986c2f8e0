package views

import (
	"github.com/charmbracelet/lipgloss"

	"soratra/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	EditorBox     lipgloss.Style
	OverlayBox    lipgloss.Style
	PopupBox      lipgloss.Style
	ErrorToken    lipgloss.Style
	Chip          lipgloss.Style
	ChipSelected  lipgloss.Style
	ChipKey       lipgloss.Style
	WordCount     lipgloss.Style
	StatusIdle    lipgloss.Style
	StatusBusy    lipgloss.Style
	StatusClean   lipgloss.Style
	StatusErrors  lipgloss.Style
	StatusBackend lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		EditorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ErrorToken: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			Underline(true),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		ChipSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("214")). // yellow
			Bold(true).
			Padding(0, 1),
		ChipKey:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		WordCount:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusBusy:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusClean:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusErrors:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusBackend: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}

// StatusStyle returns the style for a status kind
func (s *Styles) StatusStyle(kind domain.StatusKind) lipgloss.Style {
	switch kind {
	case domain.StatusBusy:
		return s.StatusBusy
	case domain.StatusClean:
		return s.StatusClean
	case domain.StatusErrorsFound:
		return s.StatusErrors
	case domain.StatusBackendError:
		return s.StatusBackend
	default:
		return s.StatusIdle
	}
}
