package ui

import (
	"soratra/internal/analysis"
	"soratra/internal/ui/coordinator"
)

// debounceMsg is delivered when a debounce timer expires
type debounceMsg struct {
	trigger analysis.Trigger
}

// analysisMsg carries the outcome of a finished analysis cycle
type analysisMsg struct {
	outcome coordinator.Outcome
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
