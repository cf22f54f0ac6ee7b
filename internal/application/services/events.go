package services

import (
	"context"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

// Option configures a dashboard service
type Option func(*options)

type options struct {
	events providers.EventBus
}

// WithEventBus makes the service announce the records it creates or
// changes on bus
func WithEventBus(bus providers.EventBus) Option {
	return func(o *options) {
		o.events = bus
	}
}

func publisherFrom(opts []Option) publisher {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return publisher{bus: o.events}
}

// publisher announces events on a best effort basis. The record is already
// saved when an event goes out, so a failed publish is logged and dropped.
type publisher struct {
	bus providers.EventBus
}

func (p publisher) publish(ctx context.Context, event *entities.PortalEvent, channels ...string) {
	if p.bus == nil {
		return
	}
	for _, channel := range channels {
		if err := p.bus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("channel", channel).
				Str("type", string(event.Type)).
				Msg("failed to publish portal event")
		}
	}
}
