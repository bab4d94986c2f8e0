package views

import (
	"fmt"
	"strings"

	"soratra/internal/domain"
)

// ChipRenderer draws the suggestion area
type ChipRenderer struct {
	styles *Styles
}

// NewChipRenderer creates a new chip renderer
func NewChipRenderer(styles *Styles) *ChipRenderer {
	return &ChipRenderer{styles: styles}
}

// Render draws one chip per suggestion. An empty set renders nothing.
func (cr *ChipRenderer) Render(chips []domain.Suggestion, selected int) string {
	if len(chips) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(chips))
	for i, chip := range chips {
		style := cr.styles.Chip
		if i == selected {
			style = cr.styles.ChipSelected
		}
		label := chip.Label()
		if i < 9 {
			label = fmt.Sprintf("%s %s", cr.styles.ChipKey.Render(fmt.Sprint(i+1)), label)
		}
		rendered = append(rendered, style.Render(label))
	}
	return strings.Join(rendered, " ")
}
