package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// SessionTokenHeader carries the token issued at login
const SessionTokenHeader = "X-Session-Token"

// RequireSession resolves the session token and rejects requests without a
// live session
func RequireSession(registry *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionTokenHeader)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "session required")
				return
			}

			s, ok := registry.Get(token)
			if !ok {
				writeError(w, http.StatusUnauthorized, "session expired or unknown")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), s)))
		})
	}
}

// RequireRole lets through only sessions whose user holds role. It must run
// inside RequireSession.
func RequireRole(role entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok || !s.State.LoggedIn() {
				writeError(w, http.StatusUnauthorized, "session required")
				return
			}
			if s.User().Role != role {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
