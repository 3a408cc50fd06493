// Package presentation provides the fyne windows that drive annotation
// and review, with event bridging to the application layer.
package presentation

import (
	"log/slog"
	"sync"

	"framer-go/core/event"
	"framer-go/core/eventbus"
)

// UIEventBridge routes application events to UI callbacks. Inputs flow
// the other way directly to the session on the UI goroutine; the bridge
// only carries notifications.
type UIEventBridge struct {
	eventBus eventbus.EventBus
	logger   *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates. They run on the event
// bus goroutine; UI changes must go through fyne.Do.
type UICallbacks struct {
	OnImageLoaded     func(image string, index, total int)
	OnRegionsChanged  func(image string, count int)
	OnImageCommitted  func(image string, regions int)
	OnDatasetSaved    func(location string, images int, err error)
	OnSessionFinished func(reason event.FinishReason, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	EventBus eventbus.EventBus
	Logger   *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		eventBus:  cfg.EventBus,
		logger:    cfg.Logger,
		callbacks: &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
		b.subscriptionID = ""
	}
}

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.ImageLoaded:
		if callbacks.OnImageLoaded != nil {
			callbacks.OnImageLoaded(evt.Image(), evt.Index, evt.Total)
		}

	case *event.RegionAdded:
		if callbacks.OnRegionsChanged != nil {
			callbacks.OnRegionsChanged(evt.Image(), evt.Count)
		}

	case *event.RegionDeleted:
		if callbacks.OnRegionsChanged != nil {
			callbacks.OnRegionsChanged(evt.Image(), evt.Count)
		}

	case *event.ImageCommitted:
		if callbacks.OnImageCommitted != nil {
			callbacks.OnImageCommitted(evt.Image(), evt.Regions)
		}

	case *event.DatasetSaved:
		if evt.Error != nil {
			b.logger.Error("Dataset save failed", "location", evt.Location, "error", evt.Error)
		}
		if callbacks.OnDatasetSaved != nil {
			callbacks.OnDatasetSaved(evt.Location, evt.Images, evt.Error)
		}

	case *event.SessionFinished:
		if callbacks.OnSessionFinished != nil {
			callbacks.OnSessionFinished(evt.Reason, evt.Error)
		}
	}
}
