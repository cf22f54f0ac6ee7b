package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

// Session is a logged-in user's navigation state
type Session struct {
	Token string
	State State
}

// User returns the session's user
func (s Session) User() entities.User {
	if s.State.User == nil {
		return entities.User{}
	}
	return *s.State.User
}

// Registry maps session tokens to sessions. Sessions never expire and are
// lost when the process exits.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Open logs user in from the login form and returns the new session
func (r *Registry) Open(user entities.User) Session {
	state := Transition(State{Page: PageAuth, Mode: ModeLogin}, Authenticated{User: user})
	s := Session{Token: uuid.NewString(), State: state}

	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by token
func (r *Registry) Get(token string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Apply runs ev against the session's state and stores the result
func (r *Registry) Apply(token string, ev Event) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return State{}, false
	}
	s.State = Transition(s.State, ev)
	r.sessions[token] = s
	return s.State, true
}

// Close forgets the token. The session ends on the home page whatever
// page it was on.
func (r *Registry) Close(token string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return State{}, false
	}
	delete(r.sessions, token)
	return Home(), true
}

// Len returns the number of open sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
