package input

import (
	"soratra/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.EditorState
}

// ChipCount returns the number of chips in the current render
func (c *ModelContext) ChipCount() int {
	return len(c.State.Chips)
}

// SelectedChip returns the highlighted chip index
func (c *ModelContext) SelectedChip() int {
	return c.State.Selected
}
