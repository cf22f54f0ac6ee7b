package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

const maxBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps an application error to its HTTP status.
// Internal failures are logged and reported without detail.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Type == apperrors.ErrorTypeInternal {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondWithError(w, statusFor(appErr.Type), appErr.Message)
}

func statusFor(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorTypeForbidden:
		return http.StatusForbidden
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// currentUser returns the user of the session resolved by middleware
func currentUser(w http.ResponseWriter, r *http.Request) (entities.User, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok || !s.State.LoggedIn() {
		respondWithError(w, http.StatusUnauthorized, "session required")
		return entities.User{}, false
	}
	return s.User(), true
}
