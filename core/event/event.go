// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by observers such as the
// presentation layer, logging and metrics.
package event

import "framer-go/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// ImageEvent is an event that concerns a specific image of the sequence.
type ImageEvent interface {
	Event
	// Image returns the image filename
	Image() string
}

// baseImageEvent provides common implementation for image events.
type baseImageEvent struct {
	image string
}

func (e *baseImageEvent) Image() string {
	return e.image
}

// StateChanged is published when the annotation state changes.
type StateChanged struct {
	baseImageEvent
	OldState state.AnnotationState
	NewState state.AnnotationState
}

func NewStateChanged(image string, oldState, newState state.AnnotationState) *StateChanged {
	return &StateChanged{
		baseImageEvent: baseImageEvent{image: image},
		OldState:       oldState,
		NewState:       newState,
	}
}

func (e *StateChanged) EventName() string {
	return "StateChanged"
}
