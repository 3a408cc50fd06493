package presentation

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"framer-go/core/input"
)

func newTestInputWindow(t *testing.T, d Driver) *inputWindow {
	t.Helper()
	app := test.NewTempApp(t)
	return newInputWindow(context.Background(), app, "test", d, 0, slog.Default())
}

func TestInputWindow_HeldKeys(t *testing.T) {
	d := &fakeDriver{}
	w := newTestInputWindow(t, d)

	w.keyDown(&fyne.KeyEvent{Name: fyne.KeyA})
	// OS auto-repeat sends another key down while held
	w.keyDown(&fyne.KeyEvent{Name: fyne.KeyA})
	if !w.held[input.KeyA] {
		t.Error("A should be held after key down")
	}
	w.keyUp(&fyne.KeyEvent{Name: fyne.KeyA})
	if w.held[input.KeyA] {
		t.Error("A should not be held after key up")
	}

	want := []string{"KeyDown", "KeyUp"}
	if got := d.names(); !slices.Equal(got, want) {
		t.Errorf("inputs = %v, want %v", got, want)
	}
}

func TestInputWindow_FinishCallsDoneOnce(t *testing.T) {
	d := &fakeDriver{}
	w := newTestInputWindow(t, d)
	calls := 0
	var redraws int
	w.redraw = func(input.Input) { redraws++ }
	w.onDone = func(err error) {
		calls++
		if err != nil {
			t.Errorf("onDone error = %v, want nil", err)
		}
	}

	w.keyUp(&fyne.KeyEvent{Name: fyne.KeyReturn})
	// Inputs after the driver finished are dropped
	w.keyUp(&fyne.KeyEvent{Name: fyne.KeyReturn})
	w.finish(nil)

	if calls != 1 {
		t.Errorf("onDone called %d times, want 1", calls)
	}
	if redraws != 1 {
		t.Errorf("redraw called %d times, want 1", redraws)
	}
	if len(d.inputs) != 1 {
		t.Errorf("driver got %d inputs, want 1", len(d.inputs))
	}
}

func TestInputWindow_DriverError(t *testing.T) {
	saveErr := errors.New("disk full")
	d := &fakeDriver{err: saveErr}
	w := newTestInputWindow(t, d)
	var got error
	w.onDone = func(err error) { got = err }

	w.handle(&input.Quit{})

	if !errors.Is(got, saveErr) {
		t.Errorf("onDone error = %v, want %v", got, saveErr)
	}
	if !errors.Is(w.Err(), saveErr) {
		t.Errorf("Err() = %v, want %v", w.Err(), saveErr)
	}
}
