package presentation

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"framer-go/core/input"
)

// FrameCanvas displays a rendered frame and reports pointer activity as
// primitive inputs in frame pixels.
type FrameCanvas struct {
	widget.BaseWidget
	canvas  *canvas.Image
	imageMu sync.RWMutex
	onInput func(in input.Input)
}

var (
	_ desktop.Mouseable = (*FrameCanvas)(nil)
	_ desktop.Hoverable = (*FrameCanvas)(nil)
)

// NewFrameCanvas creates a blank canvas of the given pixel size.
func NewFrameCanvas(width, height int) *FrameCanvas {
	fc := &FrameCanvas{
		canvas: canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height))),
	}
	fc.ExtendBaseWidget(fc)
	fc.canvas.FillMode = canvas.ImageFillOriginal
	fc.canvas.ScaleMode = canvas.ImageScalePixels
	return fc
}

// SetImage replaces the displayed frame.
func (c *FrameCanvas) SetImage(img image.Image) {
	if img == nil {
		return
	}
	c.imageMu.Lock()
	c.canvas.Image = img
	c.imageMu.Unlock()
	c.canvas.Refresh()
	c.Refresh()
}

// GetImage returns the displayed frame.
func (c *FrameCanvas) GetImage() image.Image {
	c.imageMu.RLock()
	defer c.imageMu.RUnlock()
	return c.canvas.Image
}

// SetOnInput sets the pointer input handler.
func (c *FrameCanvas) SetOnInput(fn func(in input.Input)) {
	c.onInput = fn
}

// CreateRenderer creates the widget renderer.
func (c *FrameCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.canvas)
}

// MinSize returns the frame size.
func (c *FrameCanvas) MinSize() fyne.Size {
	return c.canvas.MinSize()
}

// MouseDown handles button presses.
func (c *FrameCanvas) MouseDown(e *desktop.MouseEvent) {
	x, y := c.toPixels(e.Position)
	c.emit(input.NewPointerDown(x, y, toButton(e.Button)))
}

// MouseUp handles button releases.
func (c *FrameCanvas) MouseUp(e *desktop.MouseEvent) {
	x, y := c.toPixels(e.Position)
	c.emit(input.NewPointerUp(x, y, toButton(e.Button)))
}

// MouseIn handles the pointer entering the canvas.
func (c *FrameCanvas) MouseIn(e *desktop.MouseEvent) {
	c.MouseMoved(e)
}

// MouseMoved handles pointer motion, with or without a button held.
func (c *FrameCanvas) MouseMoved(e *desktop.MouseEvent) {
	x, y := c.toPixels(e.Position)
	c.emit(input.NewPointerMove(x, y))
}

// MouseOut handles the pointer leaving the canvas.
func (c *FrameCanvas) MouseOut() {}

func (c *FrameCanvas) emit(in input.Input) {
	if c.onInput != nil {
		c.onInput(in)
	}
}

// toPixels converts a widget position to frame pixels.
func (c *FrameCanvas) toPixels(pos fyne.Position) (int, int) {
	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if cv := app.Driver().CanvasForObject(c); cv != nil {
			scale = cv.Scale()
		}
	}
	return int(pos.X * scale), int(pos.Y * scale)
}

func toButton(b desktop.MouseButton) input.Button {
	switch {
	case b&desktop.MouseButtonPrimary != 0:
		return input.ButtonPrimary
	case b&desktop.MouseButtonSecondary != 0:
		return input.ButtonSecondary
	case b&desktop.MouseButtonTertiary != 0:
		return input.ButtonTertiary
	default:
		return 0
	}
}
