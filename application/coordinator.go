// Package application wires the annotation and verification workflows to
// their collaborators and tracks progress from the event stream.
package application

import (
	"context"
	"log/slog"
	"sync"

	"framer-go/application/annotator"
	"framer-go/application/session"
	"framer-go/application/viewer"
	"framer-go/core/event"
	"framer-go/core/eventbus"
	"framer-go/core/input"
	"framer-go/domain/dataset"
	"framer-go/infrastructure/imagestore"
)

// Progress summarizes what happened so far in the running workflow.
type Progress struct {
	Image     string
	Index     int
	Total     int
	Regions   int // regions on the active image
	Committed int // images committed
	Saved     bool
	SaveError error
}

// Coordinator builds sessions and viewers from shared dependencies.
type Coordinator struct {
	eventBus   eventbus.EventBus
	source     imagestore.Source
	repository dataset.Repository
	annotator  annotator.Config
	logger     *slog.Logger

	subscription string
	progress     Progress
	progressMu   sync.RWMutex
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	EventBus   eventbus.EventBus
	Source     imagestore.Source
	Repository dataset.Repository
	Annotator  annotator.Config
	Logger     *slog.Logger
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Coordinator{
		eventBus:   cfg.EventBus,
		source:     cfg.Source,
		repository: cfg.Repository,
		annotator:  cfg.Annotator,
		logger:     cfg.Logger,
	}

	// Subscribe to events if event bus is available
	if c.eventBus != nil {
		c.subscription = c.eventBus.Subscribe(c.handleEvent)
	}

	return c
}

// NewSession creates an annotation session over the configured images.
func (c *Coordinator) NewSession(ctx context.Context) (*session.Session, error) {
	return session.New(ctx, &session.Config{
		Source:     c.source,
		Repository: c.repository,
		Annotator:  c.annotator,
		EventBus:   c.eventBus,
		Logger:     c.logger,
	})
}

// NewViewer creates a verification viewer over the persisted record.
func (c *Coordinator) NewViewer(ctx context.Context) (*viewer.Viewer, error) {
	return viewer.New(ctx, &viewer.Config{
		Source:     c.source,
		Repository: c.repository,
		Next:       c.AdvanceKeys(),
		Logger:     c.logger,
	})
}

// AdvanceKeys returns the keys that commit an image or show the next one.
func (c *Coordinator) AdvanceKeys() []input.Key {
	if len(c.annotator.Keymap.Advance) == 0 {
		return annotator.DefaultKeymap().Advance
	}
	return c.annotator.Keymap.Advance
}

// Progress returns the latest progress snapshot.
func (c *Coordinator) Progress() Progress {
	c.progressMu.RLock()
	defer c.progressMu.RUnlock()
	return c.progress
}

// Close detaches the coordinator from the event bus.
func (c *Coordinator) Close() {
	if c.eventBus != nil && c.subscription != "" {
		c.eventBus.Unsubscribe(c.subscription)
		c.subscription = ""
	}
}

// handleEvent handles events from the event bus.
func (c *Coordinator) handleEvent(e event.Event) {
	c.progressMu.Lock()
	defer c.progressMu.Unlock()

	switch evt := e.(type) {
	case *event.ImageLoaded:
		c.progress.Image = evt.Image()
		c.progress.Index = evt.Index
		c.progress.Total = evt.Total
		c.progress.Regions = 0
	case *event.RegionAdded:
		c.progress.Regions = evt.Count
	case *event.RegionDeleted:
		c.progress.Regions = evt.Count
	case *event.ImageCommitted:
		c.progress.Committed++
		c.logger.Debug("Progress", "committed", c.progress.Committed, "total", c.progress.Total)
	case *event.DatasetSaved:
		c.progress.Saved = evt.Error == nil
		c.progress.SaveError = evt.Error
	}
}
