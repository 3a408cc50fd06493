// Package input defines the primitive input events fed to the annotator.
// Events are produced by the presentation layer (or by tests) and consumed
// by a single input loop, one at a time.
package input

import "time"

// Input is the base interface for all input events.
type Input interface {
	// InputName returns the name of the input for logging/debugging
	InputName() string
}

// PointerInput is an input that carries a pointer position in drawable-area pixels.
type PointerInput interface {
	Input
	// Position returns the pointer position
	Position() (x, y int)
}

// basePointerInput provides common implementation for pointer inputs.
type basePointerInput struct {
	x, y int
}

func (p *basePointerInput) Position() (int, int) {
	return p.x, p.y
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
	ButtonTertiary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonTertiary:
		return "tertiary"
	default:
		return "none"
	}
}

// Key names a keyboard key. Values match fyne.KeyName strings so the
// presentation layer can convert with a plain type conversion.
type Key string

const (
	KeyReturn    Key = "Return"
	KeyEnter     Key = "KP_Enter"
	KeyBackspace Key = "BackSpace"
	KeyEscape    Key = "Escape"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyA         Key = "A"
	KeyD         Key = "D"
	KeyS         Key = "S"
	KeyT         Key = "T"
	KeyW         Key = "W"
)

// PointerDown is sent when a pointer button is pressed.
type PointerDown struct {
	basePointerInput
	Button Button
}

func NewPointerDown(x, y int, button Button) *PointerDown {
	return &PointerDown{
		basePointerInput: basePointerInput{x: x, y: y},
		Button:           button,
	}
}

func (p *PointerDown) InputName() string {
	return "PointerDown"
}

// PointerUp is sent when a pointer button is released.
type PointerUp struct {
	basePointerInput
	Button Button
}

func NewPointerUp(x, y int, button Button) *PointerUp {
	return &PointerUp{
		basePointerInput: basePointerInput{x: x, y: y},
		Button:           button,
	}
}

func (p *PointerUp) InputName() string {
	return "PointerUp"
}

// PointerMove is sent when the pointer moves, with or without a button held.
type PointerMove struct {
	basePointerInput
}

func NewPointerMove(x, y int) *PointerMove {
	return &PointerMove{basePointerInput{x: x, y: y}}
}

func (p *PointerMove) InputName() string {
	return "PointerMove"
}

// KeyDown is sent when a key is pressed.
type KeyDown struct {
	Key Key
	At  time.Time
}

func NewKeyDown(key Key, at time.Time) *KeyDown {
	return &KeyDown{Key: key, At: at}
}

func (k *KeyDown) InputName() string {
	return "KeyDown"
}

// KeyUp is sent when a key is released.
type KeyUp struct {
	Key Key
}

func NewKeyUp(key Key) *KeyUp {
	return &KeyUp{Key: key}
}

func (k *KeyUp) InputName() string {
	return "KeyUp"
}

// Tick is sent periodically so held keys can repeat.
type Tick struct {
	Now time.Time
}

func NewTick(now time.Time) *Tick {
	return &Tick{Now: now}
}

func (t *Tick) InputName() string {
	return "Tick"
}

// Quit is sent when the application is asked to terminate.
type Quit struct{}

func (q *Quit) InputName() string {
	return "Quit"
}
