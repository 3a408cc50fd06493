package event

import (
	"errors"
	"testing"

	"framer-go/core/geometry"
	"framer-go/core/state"
)

func TestEvent_Names(t *testing.T) {
	rect := geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	tests := []struct {
		event    Event
		expected string
	}{
		{NewStateChanged("a.png", state.StateIdle, state.StateDragging), "StateChanged"},
		{NewImageLoaded("a.png", 0, 2, geometry.DisplayBox{}), "ImageLoaded"},
		{NewRegionAdded("a.png", rect, "cat", 1), "RegionAdded"},
		{NewRegionDeleted("a.png", rect, "cat", 0), "RegionDeleted"},
		{NewSelectionChanged("a.png", -1), "SelectionChanged"},
		{NewLabelPromptCancelled("a.png", rect), "LabelPromptCancelled"},
		{NewRegionDiscarded("a.png", rect, 1), "RegionDiscarded"},
		{NewImageCommitted("a.png", 3), "ImageCommitted"},
		{NewDatasetSaved("data.json", 2, nil), "DatasetSaved"},
		{NewSessionFinished(FinishReasonQuit, nil), "SessionFinished"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestImageEvent_Image(t *testing.T) {
	tests := []struct {
		name     string
		event    ImageEvent
		expected string
	}{
		{"StateChanged", NewStateChanged("img-1.png", state.StateIdle, state.StateDragging), "img-1.png"},
		{"ImageLoaded", NewImageLoaded("img-2.png", 1, 3, geometry.DisplayBox{}), "img-2.png"},
		{"RegionAdded", NewRegionAdded("img-3.png", geometry.Rect{}, "dog", 1), "img-3.png"},
		{"RegionDeleted", NewRegionDeleted("img-4.png", geometry.Rect{}, "dog", 0), "img-4.png"},
		{"SelectionChanged", NewSelectionChanged("img-5.png", 0), "img-5.png"},
		{"LabelPromptCancelled", NewLabelPromptCancelled("img-6.png", geometry.Rect{}), "img-6.png"},
		{"ImageCommitted", NewImageCommitted("img-7.png", 0), "img-7.png"},
		{"RegionDiscarded", NewRegionDiscarded("img-8.png", geometry.Rect{}, 1), "img-8.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Image(); got != tt.expected {
				t.Errorf("Image() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFinishReason_String(t *testing.T) {
	tests := []struct {
		reason   FinishReason
		expected string
	}{
		{FinishReasonExhausted, "Exhausted"},
		{FinishReasonQuit, "Quit"},
		{FinishReason(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.reason.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSessionFinished_Error(t *testing.T) {
	err := errors.New("disk full")
	e := NewSessionFinished(FinishReasonExhausted, err)
	if !errors.Is(e.Error, err) {
		t.Errorf("Error = %v, want %v", e.Error, err)
	}
}

func TestRegionAdded_Fields(t *testing.T) {
	rect := geometry.Rect{X: 10, Y: 10, Width: 100, Height: 50}
	e := NewRegionAdded("a.png", rect, "cat", 2)

	if e.Rect != rect {
		t.Errorf("Rect = %v, want %v", e.Rect, rect)
	}
	if e.Label != "cat" {
		t.Errorf("Label = %v, want cat", e.Label)
	}
	if e.Count != 2 {
		t.Errorf("Count = %d, want 2", e.Count)
	}
}
