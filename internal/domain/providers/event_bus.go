package providers

import (
	"context"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.PortalEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.PortalEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelPrefix is shared by every portal channel
const EventChannelPrefix = "portal:"

// RoleChannel carries events for every user holding role
func RoleChannel(role entities.Role) string {
	return EventChannelPrefix + string(role)
}

// UserChannel carries events for one account. Email alone is not unique
// across roles, so the role is part of the name.
func UserChannel(role entities.Role, email string) string {
	return EventChannelPrefix + string(role) + ":" + email
}
