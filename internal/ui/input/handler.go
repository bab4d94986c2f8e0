package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"soratra/internal/ui/input/types"
)

// Handler turns key presses into actions. Keys it does not consume belong
// to the text area.
type Handler struct {
	keys KeyMap
}

func New() *Handler {
	return &Handler{keys: DefaultKeyMap()}
}

// Keys returns the active key map
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey processes a key message and returns actions and whether the
// key was consumed
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, h.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, h.keys.Apply):
		// With no chips, tab is an ordinary character
		if ctx.ChipCount() == 0 {
			return nil, false
		}
		return []types.Action{types.ApplyChipAction{Index: ctx.SelectedChip()}}, true

	case key.Matches(msg, h.keys.ApplyNth):
		idx := int(msg.String()[strings.LastIndexByte(msg.String(), '+')+1] - '1')
		if idx >= ctx.ChipCount() {
			return nil, true
		}
		return []types.Action{types.ApplyChipAction{Index: idx}}, true

	case key.Matches(msg, h.keys.Next):
		return []types.Action{types.MoveChipAction{Delta: 1}}, true

	case key.Matches(msg, h.keys.Prev):
		return []types.Action{types.MoveChipAction{Delta: -1}}, true

	case key.Matches(msg, h.keys.AnalyzeNow):
		return []types.Action{types.AnalyzeNowAction{}}, true

	case key.Matches(msg, h.keys.Overlay):
		return []types.Action{types.ToggleOverlayAction{}}, true

	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, h.keys.HelpPager):
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}
	return nil, false
}
