package handlers

import (
	"context"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

// AccountService defines the account operations used by the auth handler.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, email string, role entities.Role, password string) (*entities.User, error)
}

// AuthHandler handles signup, login and session navigation.
type AuthHandler struct {
	accounts AccountService
	sessions *session.Registry
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts AccountService, sessions *session.Registry) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

type loginRequest struct {
	Email    string        `json:"email"`
	Role     entities.Role `json:"role"`
	Password string        `json:"password"`
}

type signupResponse struct {
	User  entities.UserProfile `json:"user"`
	State session.State        `json:"state"`
}

type loginResponse struct {
	Token string               `json:"token"`
	User  entities.UserProfile `json:"user"`
	State session.State        `json:"state"`
}

type stateResponse struct {
	State session.State `json:"state"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.accounts.Register(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	observability.LoggerFromContext(r.Context()).Info().
		Int64("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("account registered")

	signupForm := session.State{Page: session.PageAuth, Mode: session.ModeSignup}
	respondWithJSON(w, http.StatusCreated, signupResponse{
		User:  user.Profile(),
		State: session.Transition(signupForm, session.Registered{User: *user}),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Role, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	s := h.sessions.Open(*user)
	respondWithJSON(w, http.StatusOK, loginResponse{
		Token: s.Token,
		User:  user.Profile(),
		State: s.State,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}

	state, _ := h.sessions.Close(s.Token)
	respondWithJSON(w, http.StatusOK, stateResponse{State: state})
}

// Current handles GET /api/session
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{State: s.State})
}

// OpenDashboard handles POST /api/session/dashboard/{role}
func (h *AuthHandler) OpenDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}

	role := entities.Role(r.PathValue("role"))
	if !role.Valid() {
		respondWithError(w, http.StatusNotFound, "unknown dashboard")
		return
	}

	state, ok := h.sessions.Apply(s.Token, session.OpenDashboard{Role: role})
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "session required")
		return
	}

	if state.Page == session.PageAccessDenied {
		respondWithJSON(w, http.StatusForbidden, map[string]interface{}{
			"error": "access denied",
			"state": state,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{State: state})
}
