// Package session holds the portal's navigation state machine and the
// in-memory registry of logged-in sessions.
package session

import (
	"encoding/json"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

// Page is a top-level portal page
type Page string

const (
	PageHome         Page = "home"
	PageAuth         Page = "auth"
	PageDashboard    Page = "dashboard"
	PageAccessDenied Page = "access_denied"
)

// AuthMode selects the form shown on the auth page
type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignup AuthMode = "signup"
)

// Prefill carries the fields copied into the login form after signup
type Prefill struct {
	Email string        `json:"email"`
	Role  entities.Role `json:"role"`
}

// State is the navigation state of one session
type State struct {
	Page    Page
	Mode    AuthMode
	Prefill *Prefill
	Role    entities.Role
	User    *entities.User
}

// Home is the initial state
func Home() State {
	return State{Page: PageHome}
}

// LoggedIn reports whether a user is attached
func (s State) LoggedIn() bool {
	return s.User != nil
}

type stateJSON struct {
	Page    Page                  `json:"page"`
	Mode    AuthMode              `json:"mode,omitempty"`
	Prefill *Prefill              `json:"prefill,omitempty"`
	Role    entities.Role         `json:"role,omitempty"`
	User    *entities.UserProfile `json:"user,omitempty"`
}

// MarshalJSON renders the state without the user's password
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Page: s.Page, Mode: s.Mode, Prefill: s.Prefill, Role: s.Role}
	if s.User != nil {
		profile := s.User.Profile()
		out.User = &profile
	}
	return json.Marshal(out)
}
