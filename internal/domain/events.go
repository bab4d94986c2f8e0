package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAnalysisStarted   EventType = "AnalysisStarted"
	EventAnalysisCompleted EventType = "AnalysisCompleted"
	EventAnalysisFailed    EventType = "AnalysisFailed"
	EventAnalysisSkipped   EventType = "AnalysisSkipped"
	EventAnalysisDropped   EventType = "AnalysisDropped"
	EventSuggestionApplied EventType = "SuggestionApplied"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AnalysisStartedEvent is emitted when a cycle begins consulting the collaborators
type AnalysisStartedEvent struct {
	Cycle     uint64
	TextLen   int
	Immediate bool // started by a suggestion, not by the debounce
}

func (e AnalysisStartedEvent) Type() EventType { return EventAnalysisStarted }

// AnalysisCompletedEvent is emitted when a cycle's results are rendered
type AnalysisCompletedEvent struct {
	Cycle       uint64
	Errors      int
	Suggestions int
	Kind        SuggestionKind
	Elapsed     time.Duration
}

func (e AnalysisCompletedEvent) Type() EventType { return EventAnalysisCompleted }

// AnalysisFailedEvent is emitted when either collaborator fails
type AnalysisFailedEvent struct {
	Cycle uint64
	Err   error
}

func (e AnalysisFailedEvent) Type() EventType { return EventAnalysisFailed }

// AnalysisSkippedEvent is emitted when a fired trigger finds empty text
type AnalysisSkippedEvent struct{}

func (e AnalysisSkippedEvent) Type() EventType { return EventAnalysisSkipped }

// AnalysisDroppedEvent is emitted when a finished cycle was superseded
type AnalysisDroppedEvent struct {
	Cycle  uint64
	Latest uint64
}

func (e AnalysisDroppedEvent) Type() EventType { return EventAnalysisDropped }

// SuggestionAppliedEvent is emitted when a chip rewrites the text
type SuggestionAppliedEvent struct {
	Suggestion Suggestion
}

func (e SuggestionAppliedEvent) Type() EventType { return EventSuggestionApplied }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs outside an analysis cycle
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
