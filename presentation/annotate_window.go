package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"

	"framer-go/application/session"
	"framer-go/core/event"
	"framer-go/core/input"
	"framer-go/presentation/render"
)

// AppTitle prefixes every window title.
const AppTitle = "Framer"

// AnnotateWindow is the annotation window: the image with its regions on
// the left and the info panel for the selected region on the right.
type AnnotateWindow struct {
	*inputWindow
	session   *session.Session
	bridge    *UIEventBridge
	infoWidth int
	regions   int
}

// AnnotateWindowConfig holds configuration for AnnotateWindow.
type AnnotateWindowConfig struct {
	App     fyne.App
	Session *session.Session
	Bridge  *UIEventBridge
	// InfoWidth is the side panel width in pixels.
	InfoWidth   int
	RepeatDelay time.Duration
	// OnDone is called once when the session ends or fails.
	OnDone func(err error)
	Logger *slog.Logger
}

// NewAnnotateWindow creates the annotation window for a started session.
func NewAnnotateWindow(ctx context.Context, cfg *AnnotateWindowConfig) *AnnotateWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &AnnotateWindow{
		inputWindow: newInputWindow(ctx, cfg.App, AppTitle, cfg.Session, cfg.RepeatDelay, cfg.Logger.With("component", "annotate_window")),
		session:     cfg.Session,
		bridge:      cfg.Bridge,
		infoWidth:   cfg.InfoWidth,
	}
	w.redraw = w.onInput
	w.onDone = cfg.OnDone

	w.setupEventCallbacks()
	w.refresh()
	v := w.session.View()
	w.setTitle(v.Image, v.Index, v.Total)

	return w
}

func (w *AnnotateWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnImageLoaded: func(image string, index, total int) {
			// UI update must run on main thread
			fyne.Do(func() {
				w.regions = 0
				w.setTitle(image, index, total)
			})
		},
		OnRegionsChanged: func(image string, count int) {
			fyne.Do(func() {
				w.regions = count
				v := w.session.View()
				w.setTitle(v.Image, v.Index, v.Total)
			})
		},
		OnSessionFinished: func(reason event.FinishReason, err error) {
			w.logger.Info("Annotation finished", "reason", reason.String(), "error", err)
		},
	})
}

// onInput redraws unless the input cannot have changed the frame.
func (w *AnnotateWindow) onInput(in input.Input) {
	if _, ok := in.(*input.PointerMove); ok && !w.session.View().Annotation.Dragging {
		return
	}
	w.refresh()
}

func (w *AnnotateWindow) refresh() {
	if w.session.Finished() {
		return
	}
	w.canvas.SetImage(render.Annotation(w.session.View(), w.infoWidth))
}

func (w *AnnotateWindow) setTitle(image string, index, total int) {
	title := fmt.Sprintf("%s - %s (%d/%d)", AppTitle, image, index+1, total)
	if w.regions > 0 {
		title = fmt.Sprintf("%s - %d regions", title, w.regions)
	}
	w.window.SetTitle(title)
}
