// Package annotator implements the annotation state machine. A single input
// loop feeds it primitive events one at a time; dragging and label selection
// are explicit states rather than nested loops, so any interaction can be
// replayed from a sequence of synthetic inputs.
package annotator

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"framer-go/core/event"
	"framer-go/core/eventbus"
	"framer-go/core/geometry"
	"framer-go/core/input"
	"framer-go/core/state"
	"framer-go/domain/label"
	"framer-go/domain/region"
)

// Default tuning values.
const (
	DefaultRepeatDelay   = 10 * time.Millisecond
	DefaultMinRegionSize = 1
	DefaultPromptWidth   = 100
	DefaultPromptHeight  = 100
	DefaultMinRowHeight  = 16
)

// Action is what the owner of the annotator must do after an input.
type Action int

const (
	// ActionNone requires nothing beyond a redraw.
	ActionNone Action = iota
	// ActionAdvance asks for the current image to be committed.
	ActionAdvance
	// ActionQuit asks for the session to be persisted and ended.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAdvance:
		return "Advance"
	case ActionQuit:
		return "Quit"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// Config holds configuration for creating a new Annotator.
type Config struct {
	Labels *label.Set
	// Area is the drawable area; regions never leave it.
	Area          geometry.Size
	Keymap        Keymap
	PromptSize    geometry.Size
	MinRowHeight  int
	RepeatDelay   time.Duration
	MinRegionSize int
	EventBus      eventbus.EventBus
	Logger        *slog.Logger
}

// View is a snapshot of everything needed to draw the annotation layer.
type View struct {
	State    state.AnnotationState
	Regions  []region.Region
	Selected int
	// Live is the rectangle being dragged, valid while Dragging is true.
	Live     geometry.Rect
	Dragging bool
	// Prompt is set while waiting for a label.
	Prompt *Prompt
	// Pointer is the last known pointer position.
	Pointer geometry.Point
}

// Annotator is the interaction controller for one image at a time.
// It is not safe for concurrent use; all inputs must come from one goroutine.
type Annotator struct {
	cfg    Config
	model  *region.Model
	image  string
	state  state.AnnotationState
	logger *slog.Logger

	anchor  geometry.Point
	live    geometry.Rect
	prompt  *Prompt
	pointer geometry.Point

	// held maps held step keys to the time of their last step.
	held map[input.Key]time.Time
}

// New creates an annotator in the Idle state with an empty region model.
func New(cfg Config) (*Annotator, error) {
	if cfg.Labels == nil || cfg.Labels.Len() == 0 {
		return nil, label.ErrEmpty
	}
	if cfg.Area.Width <= 0 || cfg.Area.Height <= 0 {
		return nil, fmt.Errorf("drawable area %dx%d: %w", cfg.Area.Width, cfg.Area.Height, geometry.ErrInvalidSize)
	}
	if cfg.Keymap.Steps == nil {
		cfg.Keymap = DefaultKeymap()
	}
	if cfg.PromptSize.Width <= 0 || cfg.PromptSize.Height <= 0 {
		cfg.PromptSize = geometry.Size{Width: DefaultPromptWidth, Height: DefaultPromptHeight}
	}
	if cfg.MinRowHeight <= 0 {
		cfg.MinRowHeight = DefaultMinRowHeight
	}
	if cfg.RepeatDelay <= 0 {
		cfg.RepeatDelay = DefaultRepeatDelay
	}
	if cfg.MinRegionSize <= 0 {
		cfg.MinRegionSize = DefaultMinRegionSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Annotator{
		cfg:    cfg,
		model:  region.NewModel(cfg.Area),
		state:  state.StateIdle,
		logger: cfg.Logger.With("component", "annotator"),
		held:   make(map[input.Key]time.Time),
	}, nil
}

// Reset starts annotating image with an empty model and no selection.
// A finished annotator stays finished.
func (a *Annotator) Reset(image string) {
	a.model.Clear()
	a.image = image
	a.prompt = nil
	a.live = geometry.Rect{}
	if a.state.IsModal() {
		a.setState(state.StateIdle)
	}
}

// Finish moves the annotator into its terminal state.
func (a *Annotator) Finish() {
	if !a.state.IsTerminal() {
		a.setState(state.StateFinished)
	}
}

// State returns the current state.
func (a *Annotator) State() state.AnnotationState {
	return a.state
}

// Image returns the filename of the image being annotated.
func (a *Annotator) Image() string {
	return a.image
}

// Model returns the region model of the active image.
func (a *Annotator) Model() *region.Model {
	return a.model
}

// Labels returns the configured label set.
func (a *Annotator) Labels() *label.Set {
	return a.cfg.Labels
}

// Area returns the drawable area.
func (a *Annotator) Area() geometry.Size {
	return a.cfg.Area
}

// Snapshot returns the current view.
func (a *Annotator) Snapshot() View {
	v := View{
		State:    a.state,
		Regions:  a.model.Regions(),
		Selected: a.model.SelectedIndex(),
		Pointer:  a.pointer,
	}
	if a.state == state.StateDragging {
		v.Live = a.live
		v.Dragging = true
	}
	if a.prompt != nil {
		p := *a.prompt
		v.Prompt = &p
	}
	return v
}

// Handle processes one input and reports what the caller must do next.
func (a *Annotator) Handle(in input.Input) Action {
	if _, ok := in.(*input.Quit); ok {
		if a.state.IsTerminal() {
			return ActionNone
		}
		a.setState(state.StateFinished)
		return ActionQuit
	}
	if a.state.IsTerminal() {
		return ActionNone
	}

	switch in := in.(type) {
	case *input.PointerDown:
		a.pointer = position(in)
		a.handlePointerDown(in)
	case *input.PointerMove:
		a.pointer = position(in)
		if a.state == state.StateDragging {
			a.live = geometry.BoundingBox(a.anchor, a.clamp(a.pointer))
		}
	case *input.PointerUp:
		a.pointer = position(in)
		a.handlePointerUp(in)
	case *input.KeyDown:
		a.handleKeyDown(in)
	case *input.KeyUp:
		return a.handleKeyUp(in)
	case *input.Tick:
		a.handleTick(in.Now)
	}
	return ActionNone
}

func (a *Annotator) handlePointerDown(in *input.PointerDown) {
	if a.state != state.StateIdle || in.Button != input.ButtonPrimary {
		return
	}
	a.anchor = a.clamp(a.pointer)
	a.live = geometry.Rect{X: a.anchor.X, Y: a.anchor.Y}
	a.setState(state.StateDragging)
}

func (a *Annotator) handlePointerUp(in *input.PointerUp) {
	switch a.state {
	case state.StateDragging:
		if in.Button != input.ButtonPrimary {
			return
		}
		rect := geometry.BoundingBox(a.anchor, a.clamp(a.pointer))
		a.live = geometry.Rect{}
		if rect.Width < a.cfg.MinRegionSize || rect.Height < a.cfg.MinRegionSize {
			a.logger.Debug("Discarding degenerate rectangle", "rect", rect)
			a.publish(event.NewRegionDiscarded(a.image, rect, a.cfg.MinRegionSize))
			a.setState(state.StateIdle)
			return
		}
		p := LayoutPrompt(rect, a.cfg.Labels, a.cfg.PromptSize, a.cfg.Area, a.cfg.MinRowHeight)
		a.prompt = &p
		a.setState(state.StateLabelPrompt)

	case state.StateLabelPrompt:
		if in.Button != input.ButtonPrimary {
			return
		}
		l, ok := a.prompt.HitTest(a.pointer)
		if !ok {
			return
		}
		r := region.New(a.prompt.Target, l)
		hadSelection := a.model.SelectedIndex() >= 0
		a.model.Add(r)
		a.prompt = nil
		a.logger.Debug("Region added", "image", a.image, "region", r.String())
		a.publish(event.NewRegionAdded(a.image, r.Rect, r.Label, a.model.Len()))
		if hadSelection {
			a.publish(event.NewSelectionChanged(a.image, -1))
		}
		a.setState(state.StateIdle)

	case state.StateIdle:
		if in.Button != input.ButtonSecondary {
			return
		}
		hadSelection := a.model.SelectedIndex() >= 0
		removed, ok := a.model.DeleteAt(a.pointer)
		if !ok {
			return
		}
		a.logger.Debug("Region deleted", "image", a.image, "region", removed.String())
		a.publish(event.NewRegionDeleted(a.image, removed.Rect, removed.Label, a.model.Len()))
		if hadSelection {
			a.publish(event.NewSelectionChanged(a.image, -1))
		}
	}
}

func (a *Annotator) handleKeyDown(in *input.KeyDown) {
	step, ok := a.cfg.Keymap.Steps[in.Key]
	if !ok {
		return
	}
	if _, already := a.held[in.Key]; already {
		return
	}
	a.held[in.Key] = in.At
	if a.state.CanAdjustSelection() {
		a.applyStep(step)
	}
}

func (a *Annotator) handleKeyUp(in *input.KeyUp) Action {
	delete(a.held, in.Key)

	km := a.cfg.Keymap
	switch a.state {
	case state.StateLabelPrompt:
		if km.isCancel(in.Key) {
			a.logger.Debug("Label prompt cancelled", "image", a.image)
			a.publish(event.NewLabelPromptCancelled(a.image, a.prompt.Target))
			a.prompt = nil
			a.setState(state.StateIdle)
		}
	case state.StateIdle:
		switch {
		case km.isAdvance(in.Key):
			return ActionAdvance
		case km.isSelect(in.Key):
			before := a.model.SelectedIndex()
			a.model.Select(a.pointer)
			if after := a.model.SelectedIndex(); after != before {
				a.publish(event.NewSelectionChanged(a.image, after))
			}
		}
	}
	return ActionNone
}

func (a *Annotator) handleTick(now time.Time) {
	if !a.state.CanAdjustSelection() || len(a.held) == 0 {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(a.held)) {
		if now.Sub(a.held[key]) < a.cfg.RepeatDelay {
			continue
		}
		a.held[key] = now
		a.applyStep(a.cfg.Keymap.Steps[key])
	}
}

func (a *Annotator) applyStep(step Step) {
	switch step.Kind {
	case StepResize:
		a.model.ResizeSelected(step.DX, step.DY)
	case StepMove:
		a.model.MoveSelected(step.DX, step.DY)
	}
}

func (a *Annotator) setState(target state.AnnotationState) {
	old := a.state
	if !old.CanTransitionTo(target) {
		reason := fmt.Sprintf("allowed targets %v", old.ValidTransitions())
		a.logger.Error("Rejected state transition", "error", state.NewTransitionError(old, target, reason))
		return
	}
	a.state = target
	a.logger.Debug("State changed", "image", a.image, "from", old.String(), "to", target.String())
	a.publish(event.NewStateChanged(a.image, old, target))
}

func (a *Annotator) publish(e event.Event) {
	if a.cfg.EventBus != nil {
		a.cfg.EventBus.Publish(e)
	}
}

func (a *Annotator) clamp(p geometry.Point) geometry.Point {
	return geometry.ClampPoint(p, a.cfg.Area)
}

func position(in input.PointerInput) geometry.Point {
	x, y := in.Position()
	return geometry.Point{X: x, Y: y}
}
