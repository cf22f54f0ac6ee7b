package session

import (
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// Event is a navigation input
type Event interface {
	event()
}

// OpenAuth shows the auth page. An empty Mode means login.
type OpenAuth struct{ Mode AuthMode }

// SwitchMode flips the auth page between signup and login
type SwitchMode struct{ Mode AuthMode }

// Registered follows a successful signup
type Registered struct{ User entities.User }

// Authenticated follows a successful login
type Authenticated struct{ User entities.User }

// OpenDashboard asks for a role's dashboard
type OpenDashboard struct{ Role entities.Role }

// Logout ends the session
type Logout struct{}

// GoHome returns to the home page without logging out
type GoHome struct{}

func (OpenAuth) event()      {}
func (SwitchMode) event()    {}
func (Registered) event()    {}
func (Authenticated) event() {}
func (OpenDashboard) event() {}
func (Logout) event()        {}
func (GoHome) event()        {}

// Transition returns the state that follows s on ev. Pairs with no defined
// transition return s unchanged.
func Transition(s State, ev Event) State {
	switch e := ev.(type) {
	case OpenAuth:
		if s.Page != PageHome && s.Page != PageAccessDenied {
			return s
		}
		mode := e.Mode
		if mode != ModeSignup {
			mode = ModeLogin
		}
		return State{Page: PageAuth, Mode: mode, User: s.User}

	case SwitchMode:
		if s.Page != PageAuth || (e.Mode != ModeLogin && e.Mode != ModeSignup) {
			return s
		}
		return State{Page: PageAuth, Mode: e.Mode, User: s.User}

	case Registered:
		if s.Page != PageAuth || s.Mode != ModeSignup {
			return s
		}
		return State{
			Page:    PageAuth,
			Mode:    ModeLogin,
			Prefill: &Prefill{Email: e.User.Email, Role: e.User.Role},
			User:    s.User,
		}

	case Authenticated:
		if s.Page != PageAuth || s.Mode != ModeLogin {
			return s
		}
		user := e.User
		return State{Page: PageDashboard, Role: user.Role, User: &user}

	case OpenDashboard:
		if s.User != nil && s.User.Role == e.Role {
			return State{Page: PageDashboard, Role: e.Role, User: s.User}
		}
		return State{Page: PageAccessDenied, Role: e.Role, User: s.User}

	case Logout:
		if s.Page != PageDashboard && s.Page != PageAccessDenied {
			return s
		}
		return Home()

	case GoHome:
		return State{Page: PageHome, User: s.User}
	}
	return s
}
