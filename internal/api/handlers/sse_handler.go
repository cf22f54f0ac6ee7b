package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

const defaultHeartbeat = 30 * time.Second

// SSEHandler streams portal events to open dashboards as Server-Sent Events
type SSEHandler struct {
	eventBus  providers.EventBus
	heartbeat time.Duration
	clients   map[string]int // user channel -> open streams
	mu        sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		heartbeat: defaultHeartbeat,
		clients:   make(map[string]int),
	}
}

// SetHeartbeat changes how often an idle stream is pinged
func (h *SSEHandler) SetHeartbeat(d time.Duration) {
	h.heartbeat = d
}

// StreamEvents handles GET /api/events. The stream carries events addressed
// to the session user and to everyone holding the user's role.
func (h *SSEHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)
	// streams outlive the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	userChannel := providers.UserChannel(user.Role, user.Email)
	roleChannel := providers.RoleChannel(user.Role)

	userEvents, err := h.eventBus.Subscribe(ctx, userChannel)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Str("channel", userChannel).Msg("failed to subscribe")
		respondWithError(w, http.StatusInternalServerError, "event stream unavailable")
		return
	}
	roleEvents, err := h.eventBus.Subscribe(ctx, roleChannel)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Str("channel", roleChannel).Msg("failed to subscribe")
		respondWithError(w, http.StatusInternalServerError, "event stream unavailable")
		return
	}

	h.registerClient(userChannel)
	defer h.unregisterClient(userChannel)

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	h.sendEvent(w, "connected", map[string]interface{}{
		"email":     user.Email,
		"role":      user.Role,
		"timestamp": time.Now(),
	})
	if err := rc.Flush(); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("streaming not supported")
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		var event *entities.PortalEvent
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			if err := rc.Flush(); err != nil {
				return
			}
			continue
		case event, ok = <-userEvents:
		case event, ok = <-roleEvents:
		}

		if !ok {
			// the bus dropped the subscription; the client reconnects
			return
		}
		h.sendEvent(w, string(event.Type), event)
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *SSEHandler) registerClient(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[channel]++
}

func (h *SSEHandler) unregisterClient(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[channel]--
	if h.clients[channel] <= 0 {
		delete(h.clients, channel)
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of open streams
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, n := range h.clients {
		count += n
	}
	return count
}
