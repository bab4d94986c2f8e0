package types

// ApplyChipAction applies the chip at Index of the current render
type ApplyChipAction struct {
	Index int
}

func (a ApplyChipAction) Type() string { return "apply_chip" }

// MoveChipAction moves the chip highlight by Delta
type MoveChipAction struct {
	Delta int
}

func (a MoveChipAction) Type() string { return "move_chip" }

// AnalyzeNowAction starts an analysis cycle without waiting for the debounce
type AnalyzeNowAction struct{}

func (a AnalyzeNowAction) Type() string { return "analyze_now" }

type ToggleOverlayAction struct{}

func (a ToggleOverlayAction) Type() string { return "toggle_overlay" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// OpenHelpPagerAction shows the full help in a pager
type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for Esc
}

func (a QuitAction) Type() string { return "quit" }
