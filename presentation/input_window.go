package presentation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"framer-go/core/input"
)

// Driver consumes inputs one at a time. Both the annotation session and
// the review viewer satisfy it.
type Driver interface {
	Handle(ctx context.Context, in input.Input) error
	Finished() bool
}

// inputWindow feeds a Driver from a fyne window: pointer events from the
// canvas, key events from the window canvas, periodic ticks while keys are
// held, and a Quit when the window is closed. Every input is handled on
// the fyne UI goroutine.
type inputWindow struct {
	window fyne.Window
	canvas *FrameCanvas
	driver Driver
	ctx    context.Context
	logger *slog.Logger

	// redraw is called after each handled input.
	redraw func(in input.Input)
	// onDone is called once when the driver finishes or fails.
	onDone func(err error)

	repeat time.Duration
	held   map[input.Key]bool
	stop   chan struct{}

	doneOnce sync.Once
	err      error
}

func newInputWindow(ctx context.Context, app fyne.App, title string, driver Driver, repeat time.Duration, logger *slog.Logger) *inputWindow {
	w := &inputWindow{
		window: app.NewWindow(title),
		canvas: NewFrameCanvas(1, 1),
		driver: driver,
		ctx:    ctx,
		logger: logger,
		repeat: repeat,
		held:   make(map[input.Key]bool),
		stop:   make(chan struct{}),
	}

	w.canvas.SetOnInput(w.handle)
	w.window.SetPadded(false)
	w.window.SetContent(w.canvas)
	w.window.SetFixedSize(true)
	w.window.SetMaster()

	if dc, ok := w.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(w.keyDown)
		dc.SetOnKeyUp(w.keyUp)
	} else {
		w.logger.Warn("Window canvas does not report key presses; keyboard input disabled")
	}

	w.window.SetCloseIntercept(func() {
		w.logger.Info("Window close requested")
		w.handle(&input.Quit{})
		// Close even when the final save failed
		w.finish(w.err)
	})

	return w
}

func (w *inputWindow) keyDown(ev *fyne.KeyEvent) {
	key := input.Key(ev.Name)
	if w.held[key] {
		// Auto-repeat from the OS; ticks already cover held keys
		return
	}
	w.held[key] = true
	w.handle(input.NewKeyDown(key, time.Now()))
}

func (w *inputWindow) keyUp(ev *fyne.KeyEvent) {
	key := input.Key(ev.Name)
	delete(w.held, key)
	w.handle(input.NewKeyUp(key))
}

// handle passes one input to the driver and redraws.
func (w *inputWindow) handle(in input.Input) {
	if w.driver.Finished() {
		return
	}
	if err := w.driver.Handle(w.ctx, in); err != nil {
		w.logger.Error("Input handling failed", "input", in.InputName(), "error", err)
		w.finish(err)
		return
	}
	if w.redraw != nil {
		w.redraw(in)
	}
	if w.driver.Finished() {
		w.finish(nil)
	}
}

// startTicker sends ticks while any key is held.
func (w *inputWindow) startTicker() {
	if w.repeat <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(w.repeat)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case now := <-ticker.C:
				fyne.Do(func() {
					if len(w.held) > 0 {
						w.handle(input.NewTick(now))
					}
				})
			}
		}
	}()
}

func (w *inputWindow) finish(err error) {
	w.doneOnce.Do(func() {
		w.err = err
		close(w.stop)
		if w.onDone != nil {
			w.onDone(err)
		}
		w.window.Close()
	})
}

// Err returns the error that ended the window, if any.
func (w *inputWindow) Err() error {
	return w.err
}

// Show displays the window and starts key repeat.
func (w *inputWindow) Show() {
	w.window.Show()
	w.startTicker()
}
