package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// ChipCount is the number of suggestion chips currently shown
	ChipCount() int
	// SelectedChip is the index of the highlighted chip
	SelectedChip() int
}
