package presentation

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"

	"framer-go/application/viewer"
	"framer-go/core/input"
	"framer-go/presentation/render"
)

// ReviewWindow shows each image at native size with its persisted boxes.
type ReviewWindow struct {
	*inputWindow
	viewer *viewer.Viewer
}

// ReviewWindowConfig holds configuration for ReviewWindow.
type ReviewWindowConfig struct {
	App    fyne.App
	Viewer *viewer.Viewer
	OnDone func(err error)
	Logger *slog.Logger
}

// NewReviewWindow creates the review window for a started viewer.
func NewReviewWindow(ctx context.Context, cfg *ReviewWindowConfig) *ReviewWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &ReviewWindow{
		// No key repeat: the viewer only reacts to key releases
		inputWindow: newInputWindow(ctx, cfg.App, AppTitle, cfg.Viewer, 0, cfg.Logger.With("component", "review_window")),
		viewer:      cfg.Viewer,
	}
	w.redraw = w.onInput
	w.onDone = cfg.OnDone
	w.refresh()

	return w
}

func (w *ReviewWindow) onInput(in input.Input) {
	if _, ok := in.(*input.KeyUp); !ok {
		return
	}
	w.refresh()
}

func (w *ReviewWindow) refresh() {
	if w.viewer.Finished() {
		return
	}
	v := w.viewer.View()
	w.canvas.SetImage(render.Review(v))
	w.window.Resize(w.canvas.MinSize())

	title := fmt.Sprintf("%s - %s (%d/%d)", AppTitle, v.Image, v.Index+1, v.Total)
	if !v.Annotated {
		title += " - not annotated"
	}
	w.window.SetTitle(title)
}
