package state

import (
	"soratra/internal/domain"
)

// Overlay is the highlighting layer drawn alongside the editable input.
// Its text must equal the input's value exactly and its scroll offset must
// equal the input's.
type Overlay struct {
	Text      string
	ScrollTop int
}

// Sync copies the raw input text, trailing whitespace included
func (o *Overlay) Sync(text string) {
	o.Text = text
}

// Scroll copies the input's first visible line
func (o *Overlay) Scroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	o.ScrollTop = offset
}

// EditorState contains all the editor state. It lives for the whole
// session and is only mutated from the UI loop.
type EditorState struct {
	// Text is the input's current value
	Text string
	// ScrollTop mirrors the input's first visible line
	ScrollTop int
	WordCount int
	Overlay   Overlay

	// Results of the last rendered cycle
	Errors     domain.ErrorSet
	Chips      []domain.Suggestion
	ChipCycle  uint64 // cycle the chips belong to; 0 when none are shown
	Selected   int    // highlighted chip
	Status     domain.Status
	Busy       bool
	LastCycle  uint64 // last cycle whose results were rendered
	LastFailed error  // error of the last failed cycle, nil after a success
}

// NewEditorState creates the state for an empty editor
func NewEditorState() *EditorState {
	return &EditorState{
		Status: domain.Status{Kind: domain.StatusIdle},
	}
}

// SetText replaces the text and keeps the overlay in agreement
func (s *EditorState) SetText(text string) {
	s.Text = text
	s.Overlay.Sync(text)
}

// SetScroll records the input's scroll offset and mirrors it to the overlay
func (s *EditorState) SetScroll(offset int) {
	s.Overlay.Scroll(offset)
	s.ScrollTop = s.Overlay.ScrollTop
}

// ReplaceChips swaps the whole chip set for a new cycle
func (s *EditorState) ReplaceChips(cycle uint64, chips []domain.Suggestion) {
	s.Chips = chips
	s.ChipCycle = cycle
	s.Selected = 0
	if len(chips) == 0 {
		s.ChipCycle = 0
	}
}

// ClearChips empties the suggestion area
func (s *EditorState) ClearChips() {
	s.ReplaceChips(0, nil)
}

// ChipAt returns the chip at index i of the current set
func (s *EditorState) ChipAt(i int) (domain.Suggestion, bool) {
	if i < 0 || i >= len(s.Chips) {
		return domain.Suggestion{}, false
	}
	return s.Chips[i], true
}

// MoveSelection cycles the highlighted chip by delta
func (s *EditorState) MoveSelection(delta int) {
	n := len(s.Chips)
	if n == 0 {
		s.Selected = 0
		return
	}
	s.Selected = ((s.Selected+delta)%n + n) % n
}
