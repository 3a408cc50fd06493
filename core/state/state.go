// Package state defines the annotation state machine states.
package state

import "fmt"

// AnnotationState represents the interaction state of the annotator.
type AnnotationState int

const (
	// StateIdle waits for a new drag, a delete, a select or an advance.
	StateIdle AnnotationState = iota
	// StateDragging sizes a new rectangle from a fixed anchor to the pointer.
	StateDragging
	// StateLabelPrompt waits for a label choice for the just-finished rectangle.
	StateLabelPrompt
	// StateFinished indicates the session has been persisted and ended.
	StateFinished
)

// String returns the string representation of the state.
func (s AnnotationState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDragging:
		return "Dragging"
	case StateLabelPrompt:
		return "LabelPrompt"
	case StateFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Key is the current state, value is a list of valid target states.
var validTransitions = map[AnnotationState][]AnnotationState{
	StateIdle:        {StateDragging, StateFinished},
	StateDragging:    {StateLabelPrompt, StateIdle, StateFinished},
	StateLabelPrompt: {StateIdle, StateFinished},
	StateFinished:    {}, // Terminal state, no transitions allowed
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s AnnotationState) CanTransitionTo(target AnnotationState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s AnnotationState) ValidTransitions() []AnnotationState {
	return validTransitions[s]
}

// IsTerminal returns true if the state is a terminal state (no further transitions).
func (s AnnotationState) IsTerminal() bool {
	return s == StateFinished
}

// IsModal returns true while a modal interaction (drag or label prompt) is in flight.
func (s AnnotationState) IsModal() bool {
	return s == StateDragging || s == StateLabelPrompt
}

// CanAdjustSelection returns true if held keys may resize or move the selected region.
func (s AnnotationState) CanAdjustSelection() bool {
	return s == StateIdle || s == StateDragging
}

// CanCommit returns true if the current image may be committed.
func (s AnnotationState) CanCommit() bool {
	return s == StateIdle
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   AnnotationState
	To     AnnotationState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to AnnotationState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
