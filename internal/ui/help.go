package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"soratra/internal/ui/input"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent renders the help for keys, used by the popup and the pager
func (r *HelpRenderer) RenderHelpContent(keys input.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Soratra Help"))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Type in the editor. Misspelled words are underlined in the pane below"))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  and suggestions appear under it once you pause typing."))
	help.WriteString("\n")

	writeSection(&help, sectionStyle.Render("Suggestions"), descStyle, keys.Apply, keys.ApplyNth, keys.Next, keys.Prev)
	writeSection(&help, sectionStyle.Render("Checking"), descStyle, keys.AnalyzeNow, keys.Overlay)
	writeSection(&help, sectionStyle.Render("Other"), descStyle, keys.Help, keys.HelpPager, keys.Quit)

	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  📝 completes the current word, ➡️ adds the next word"))

	return help.String()
}

func writeSection(b *strings.Builder, title string, descStyle lipgloss.Style, bindings ...key.Binding) {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	for _, binding := range bindings {
		h := binding.Help()
		fmt.Fprintf(b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc))
	}
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
