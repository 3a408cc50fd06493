package annotator

import (
	"slices"

	"framer-go/core/input"
)

// StepKind says whether a held key resizes or moves the selected region.
type StepKind int

const (
	StepResize StepKind = iota
	StepMove
)

func (k StepKind) String() string {
	switch k {
	case StepResize:
		return "Resize"
	case StepMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Step is the adjustment applied to the selected region per repetition.
type Step struct {
	Kind StepKind
	DX   int
	DY   int
}

// Keymap binds keys to annotation actions. Discrete actions fire on key release.
type Keymap struct {
	Advance []input.Key
	Cancel  []input.Key
	Select  []input.Key
	Steps   map[input.Key]Step
}

// DefaultKeymap returns the standard bindings: Return commits the image,
// Backspace cancels the label prompt, T selects the hovered region, W/A/S/D
// resize and the arrow keys move the selection.
func DefaultKeymap() Keymap {
	return Keymap{
		Advance: []input.Key{input.KeyReturn, input.KeyEnter},
		Cancel:  []input.Key{input.KeyBackspace},
		Select:  []input.Key{input.KeyT},
		Steps: map[input.Key]Step{
			input.KeyA:     {Kind: StepResize, DX: -1},
			input.KeyD:     {Kind: StepResize, DX: 1},
			input.KeyW:     {Kind: StepResize, DY: -1},
			input.KeyS:     {Kind: StepResize, DY: 1},
			input.KeyLeft:  {Kind: StepMove, DX: -1},
			input.KeyRight: {Kind: StepMove, DX: 1},
			input.KeyUp:    {Kind: StepMove, DY: -1},
			input.KeyDown:  {Kind: StepMove, DY: 1},
		},
	}
}

func (k Keymap) isAdvance(key input.Key) bool { return slices.Contains(k.Advance, key) }
func (k Keymap) isCancel(key input.Key) bool  { return slices.Contains(k.Cancel, key) }
func (k Keymap) isSelect(key input.Key) bool  { return slices.Contains(k.Select, key) }
