package events

import (
	"errors"

	"github.com/Saranya396/projectt/internal/domain/providers"
	redisclient "github.com/Saranya396/projectt/internal/infrastructure/clients/redis"
	"github.com/Saranya396/projectt/pkg/config"
)

// New opens the event bus selected by cfg.Events. The returned close
// function releases the bus and any client opened for it.
func New(cfg *config.Config) (providers.EventBus, func() error, error) {
	if cfg.Events.Backend != config.EventsBackendRedis {
		bus := NewMemoryEventBus()
		return bus, bus.Close, nil
	}

	client, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	bus := NewRedisEventBus(client)
	return bus, func() error {
		return errors.Join(bus.Close(), client.Close())
	}, nil
}
