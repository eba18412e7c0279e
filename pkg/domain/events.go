package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventApply     EventType = "apply"
	EventReject    EventType = "reject"
	EventRun       EventType = "run"
	EventEnumerate EventType = "enumerate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Name      string    `json:"name,omitempty"` // workbench name, if any
}

// DefinitionEvent is emitted when a definition is applied or rejected.
type DefinitionEvent struct {
	EventBase
	States      int   `json:"states"`
	Symbols     int   `json:"symbols"`
	Transitions int   `json:"transitions"`
	Err         error `json:"-"`
}

// RunEvent is emitted after an input has been simulated.
type RunEvent struct {
	EventBase
	Steps    int    `json:"steps"`
	Accepted bool   `json:"accepted"`
	Stalled  bool   `json:"stalled"`
	Err      error  `json:"-"`
	Final    string `json:"final_state,omitempty"`
}

// EnumerateEvent is emitted after a language enumeration.
type EnumerateEvent struct {
	EventBase
	MaxResults int           `json:"max_results"`
	MaxLength  int           `json:"max_length"`
	Found      int           `json:"found"`
	Duration   time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnApply     func(context.Context, *DefinitionEvent)
	OnReject    func(context.Context, *DefinitionEvent)
	OnRun       func(context.Context, *RunEvent)
	OnEnumerate func(context.Context, *EnumerateEvent)
}
