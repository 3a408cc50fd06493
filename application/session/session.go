// Package session owns the annotation lifecycle: it walks the ordered image
// sequence, feeds input to the annotator, commits each image into the dataset
// record and persists the record on the two termination paths.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"framer-go/application/annotator"
	"framer-go/core/event"
	"framer-go/core/eventbus"
	"framer-go/core/geometry"
	"framer-go/core/input"
	"framer-go/domain/dataset"
	"framer-go/infrastructure/imagestore"
	"framer-go/infrastructure/logging"
)

// Common errors for session operations.
var (
	ErrNoImages = errors.New("no images to annotate")
	ErrFinished = errors.New("session finished")
	ErrBusy     = errors.New("image has an interaction in progress")
)

// Config holds configuration for creating a new Session.
type Config struct {
	Source     imagestore.Source
	Repository dataset.Repository
	// Annotator configures the state machine; its Area is also the area images are fitted into.
	Annotator annotator.Config
	EventBus  eventbus.EventBus
	Logger    *slog.Logger
}

// View is a snapshot of the session for drawing one frame.
type View struct {
	Image string
	Index int
	Total int
	// Picture is the image scaled to Box.
	Picture    image.Image
	Box        geometry.DisplayBox
	Area       geometry.Size
	Annotation annotator.View
	// Info describes the selected region, empty when nothing is selected.
	Info     []string
	Finished bool
}

// Session is the single owned object holding all mutable annotation state.
// It is not safe for concurrent use.
type Session struct {
	source   imagestore.Source
	repo     dataset.Repository
	ann      *annotator.Annotator
	eventBus eventbus.EventBus
	logger   *slog.Logger

	images  []string
	index   int
	record  *dataset.Record
	box     geometry.DisplayBox
	picture image.Image

	started  bool
	finished bool
}

// New lists the images and builds the annotator. It fails when there is
// nothing to annotate or the annotator configuration is invalid.
func New(ctx context.Context, cfg *Config) (*Session, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Source == nil || cfg.Repository == nil {
		return nil, fmt.Errorf("session requires an image source and a repository")
	}

	images, err := cfg.Source.List(ctx)
	if err != nil {
		if errors.Is(err, imagestore.ErrNoImages) {
			return nil, fmt.Errorf("%w: %v", ErrNoImages, err)
		}
		return nil, fmt.Errorf("list images: %w", err)
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	annCfg := cfg.Annotator
	if annCfg.EventBus == nil {
		annCfg.EventBus = cfg.EventBus
	}
	if annCfg.Logger == nil {
		annCfg.Logger = cfg.Logger
	}
	ann, err := annotator.New(annCfg)
	if err != nil {
		return nil, fmt.Errorf("create annotator: %w", err)
	}

	return &Session{
		source:   cfg.Source,
		repo:     cfg.Repository,
		ann:      ann,
		eventBus: cfg.EventBus,
		logger:   cfg.Logger.With("component", "session"),
		images:   images,
		record:   dataset.NewRecord(),
	}, nil
}

// Start loads the first image.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return nil
	}
	if err := s.load(ctx, 0); err != nil {
		return err
	}
	s.started = true
	s.logger.Info("Session started", "images", len(s.images), "location", s.repo.Location())
	return nil
}

// Handle feeds one input to the annotator and carries out the resulting
// action. Errors are fatal: the record could not be persisted or the next
// image could not be loaded.
func (s *Session) Handle(ctx context.Context, in input.Input) error {
	if s.finished {
		return ErrFinished
	}
	if !s.started {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}

	switch s.ann.Handle(in) {
	case annotator.ActionAdvance:
		return s.Advance(ctx)
	case annotator.ActionQuit:
		return s.Quit(ctx)
	}
	return nil
}

// Commit writes the current image's regions, normalized against its display
// box and in creation order, into the record. Committing again replaces the
// entry with the current regions.
func (s *Session) Commit() {
	name := s.images[s.index]
	regions := s.ann.Model().Normalize(s.box)
	s.record.Put(name, regions)

	s.logger.Info("Image committed", "image", name, "regions", len(regions))
	s.publishEvent(event.NewImageCommitted(name, len(regions)))
}

// Advance commits the current image and moves to the next one. After the
// last image the record is persisted and the session finishes. It fails with
// ErrBusy while a drag or label prompt is open.
func (s *Session) Advance(ctx context.Context) error {
	if s.finished {
		return ErrFinished
	}
	if st := s.ann.State(); !st.CanCommit() {
		return fmt.Errorf("advance from %s: %w", st, ErrBusy)
	}
	s.Commit()

	next := s.index + 1
	if next >= len(s.images) {
		return s.finish(ctx, event.FinishReasonExhausted)
	}
	if err := s.load(ctx, next); err != nil {
		// Keep what was committed so far.
		if saveErr := s.finish(ctx, event.FinishReasonQuit); saveErr != nil {
			return errors.Join(err, saveErr)
		}
		return err
	}
	return nil
}

// Quit persists the record, without the current image's uncommitted edits,
// and finishes the session. The record is written even when it is empty.
func (s *Session) Quit(ctx context.Context) error {
	if s.finished {
		return ErrFinished
	}
	return s.finish(ctx, event.FinishReasonQuit)
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool {
	return s.finished
}

// Record returns a copy of the dataset record.
func (s *Session) Record() *dataset.Record {
	return s.record.Clone()
}

// Images returns the image sequence.
func (s *Session) Images() []string {
	out := make([]string, len(s.images))
	copy(out, s.images)
	return out
}

// View returns a snapshot for drawing.
func (s *Session) View() View {
	v := View{
		Index:      s.index,
		Total:      len(s.images),
		Picture:    s.picture,
		Box:        s.box,
		Area:       s.ann.Area(),
		Annotation: s.ann.Snapshot(),
		Finished:   s.finished,
	}
	if s.index < len(s.images) {
		v.Image = s.images[s.index]
	}
	if r, ok := s.ann.Model().Selected(); ok {
		v.Info = annotator.InfoLines(r, s.box)
	}
	return v
}

func (s *Session) load(ctx context.Context, index int) error {
	name := s.images[index]
	ctx = logging.WithAttrs(logging.With(ctx, s.logger), "image", name, "index", index)
	img, err := s.source.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("load image %s: %w", name, err)
	}

	area := s.ann.Area()
	b := img.Bounds()
	box, err := geometry.FitImageToArea(b.Dx(), b.Dy(), area.Width, area.Height)
	if err != nil {
		return fmt.Errorf("fit image %s: %w", name, err)
	}

	s.index = index
	s.box = box
	s.picture = imagestore.Resize(img, box.Width, box.Height)
	s.ann.Reset(name)

	logging.From(ctx).Info("Image loaded",
		"native", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"display", fmt.Sprintf("%dx%d", box.Width, box.Height),
	)
	s.publishEvent(event.NewImageLoaded(name, index, len(s.images), box))
	return nil
}

func (s *Session) finish(ctx context.Context, reason event.FinishReason) error {
	s.finished = true
	s.ann.Finish()

	err := s.repo.Save(ctx, s.record)
	s.publishEvent(event.NewDatasetSaved(s.repo.Location(), s.record.Len(), err))
	if err != nil {
		err = fmt.Errorf("save dataset to %s: %w", s.repo.Location(), err)
		s.logger.Error("Failed to save dataset", "error", err)
	} else {
		s.logger.Info("Dataset saved", "location", s.repo.Location(), "images", s.record.Len())
	}

	s.publishEvent(event.NewSessionFinished(reason, err))
	s.logger.Info("Session finished", "reason", reason.String())
	return err
}

func (s *Session) publishEvent(e event.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(e)
	}
}
