package eventbus

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"framer-go/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id      string
	handler EventHandler
	image   string // Empty string means subscribe to all events
}

// channelEventBus is a channel-based implementation of EventBus.
type channelEventBus struct {
	eventChan     chan event.Event
	subscriptions map[string]*subscription
	mu            sync.RWMutex
	closeMu       sync.RWMutex
	closed        atomic.Bool
	wg            sync.WaitGroup
	nextID        atomic.Uint64
	logger        *slog.Logger
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int) EventBus {
	return NewWithLogger(bufferSize, nil)
}

// NewWithLogger creates a new EventBus that reports dropped events and
// handler panics to logger. A nil logger falls back to slog.Default().
func NewWithLogger(bufferSize int, logger *slog.Logger) EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	bus := &channelEventBus{
		eventChan:     make(chan event.Event, bufferSize),
		subscriptions: make(map[string]*subscription),
		logger:        logger.With("component", "eventbus"),
	}

	bus.wg.Add(1)
	go bus.dispatch()

	return bus
}

// Publish publishes an event to all subscribers.
func (b *channelEventBus) Publish(e event.Event) {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()

	if b.closed.Load() {
		return
	}

	// Non-blocking send; observers must never stall the caller
	select {
	case b.eventChan <- e:
	default:
		b.logger.Warn("Event dropped, buffer full", "event", e.EventName())
	}
}

// Subscribe subscribes to all events.
func (b *channelEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe("", handler)
}

// SubscribeImage subscribes to events concerning a specific image.
func (b *channelEventBus) SubscribeImage(image string, handler EventHandler) string {
	return b.subscribe(image, handler)
}

func (b *channelEventBus) subscribe(image string, handler EventHandler) string {
	id := b.generateID()

	b.mu.Lock()
	b.subscriptions[id] = &subscription{
		id:      id,
		handler: handler,
		image:   image,
	}
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *channelEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	delete(b.subscriptions, subscriptionID)
	b.mu.Unlock()
}

// Close shuts down the event bus.
func (b *channelEventBus) Close() {
	b.closeMu.Lock()
	if b.closed.Swap(true) {
		b.closeMu.Unlock()
		return // Already closed
	}
	close(b.eventChan)
	b.closeMu.Unlock()

	b.wg.Wait()
}

// dispatch is the main event dispatch loop.
func (b *channelEventBus) dispatch() {
	defer b.wg.Done()

	for e := range b.eventChan {
		b.deliverEvent(e)
	}
}

// deliverEvent delivers an event to all matching subscribers.
func (b *channelEventBus) deliverEvent(e event.Event) {
	b.mu.RLock()
	// Copy subscriptions to avoid holding lock during handler execution
	subs := make([]*subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	var eventImage string
	if ie, ok := e.(event.ImageEvent); ok {
		eventImage = ie.Image()
	}

	for _, sub := range subs {
		if sub.image != "" {
			if eventImage == "" || sub.image != eventImage {
				continue
			}
		}

		// Catch panics to prevent one bad handler from affecting others
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Event handler panicked", "event", e.EventName(), "subscription", sub.id, "panic", r)
				}
			}()
			sub.handler(e)
		}()
	}
}

func (b *channelEventBus) generateID() string {
	return "sub-" + strconv.FormatUint(b.nextID.Add(1), 10)
}
