package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

// AdminService defines the admin dashboard operations.
type AdminService interface {
	Users(ctx context.Context) ([]entities.User, error)
	Allow(ctx context.Context, id int64) (*entities.User, error)
	Deny(ctx context.Context, id int64) (*entities.User, error)
	Settings() entities.PlatformSettings
	UpdateSettings(update entities.PlatformSettingsUpdate) entities.PlatformSettings
}

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	service AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entities.Profiles(users))
}

// AllowUser handles POST /api/admin/users/{id}/allow
func (h *AdminHandler) AllowUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.Allow)
}

// DenyUser handles POST /api/admin/users/{id}/deny
func (h *AdminHandler) DenyUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.Deny)
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64) (*entities.User, error)) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := apply(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user.Profile())
}

// GetSettings handles GET /api/admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Settings())
}

// UpdateSettings handles PUT /api/admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update entities.PlatformSettingsUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.UpdateSettings(update))
}
