package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
)

// MemoryEventBus delivers events to subscribers in the same process. It is
// used when no Redis is configured, so a single API instance still gets a
// live feed.
type MemoryEventBus struct {
	mu          sync.Mutex
	subscribers map[string]map[chan *entities.PortalEvent]struct{}
	closed      bool
}

// NewMemoryEventBus creates an in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{subscribers: make(map[string]map[chan *entities.PortalEvent]struct{})}
}

// Publish hands the event to every current subscriber of channel without
// blocking; full subscribers miss it
func (b *MemoryEventBus) Publish(_ context.Context, channel string, event *entities.PortalEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
			log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, skipping event")
		}
	}
	return nil
}

// Subscribe registers a subscriber until ctx ends
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.PortalEvent, error) {
	eventChan := make(chan *entities.PortalEvent, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(eventChan)
		return eventChan, nil
	}
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.PortalEvent]struct{})
	}
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(channel, eventChan)
	}()
	return eventChan, nil
}

func (b *MemoryEventBus) remove(channel string, eventChan chan *entities.PortalEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers := b.subscribers[channel]
	if _, ok := subscribers[eventChan]; !ok {
		return
	}
	delete(subscribers, eventChan)
	close(eventChan)
	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}

// Close drops every subscriber; later subscriptions are closed immediately
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	b.closed = true
	return nil
}
