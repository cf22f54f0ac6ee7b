package middleware

import (
	"context"
	"net/http"
)

type routeKey struct{}

type matchedRoute struct {
	pattern string
}

// trackRoute makes the route matched further down visible to the caller.
// Middleware wrapping the mux copies the request, so the mux cannot fill in
// r.Pattern for them directly.
func trackRoute(r *http.Request) (*http.Request, *matchedRoute) {
	if m, ok := r.Context().Value(routeKey{}).(*matchedRoute); ok {
		return r, m
	}
	m := &matchedRoute{}
	return r.WithContext(context.WithValue(r.Context(), routeKey{}, m)), m
}

func (m *matchedRoute) name() string {
	if m.pattern == "" {
		return "unmatched"
	}
	return m.pattern
}

// RecordRoute wraps a mux handler and reports its pattern to the outer
// logging and observability middleware
func RecordRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m, ok := r.Context().Value(routeKey{}).(*matchedRoute); ok {
			m.pattern = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}
