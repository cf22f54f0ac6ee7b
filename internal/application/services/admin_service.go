package services

import (
	"context"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

// AdminService backs the admin dashboard
type AdminService struct {
	accounts *AccountService
	settings *PlatformSettings
}

// NewAdminService creates a new admin dashboard service
func NewAdminService(accounts *AccountService, settings *PlatformSettings) *AdminService {
	return &AdminService{accounts: accounts, settings: settings}
}

// Users lists every registered account
func (s *AdminService) Users(ctx context.Context) ([]entities.User, error) {
	return s.accounts.ListUsers(ctx)
}

// Allow re-enables login for an account
func (s *AdminService) Allow(ctx context.Context, id int64) (*entities.User, error) {
	return s.accounts.SetStatus(ctx, id, entities.UserStatusActive)
}

// Deny blocks login for an account
func (s *AdminService) Deny(ctx context.Context, id int64) (*entities.User, error) {
	return s.accounts.SetStatus(ctx, id, entities.UserStatusDenied)
}

// Settings returns the platform toggles
func (s *AdminService) Settings() entities.PlatformSettings {
	return s.settings.Get()
}

// UpdateSettings changes the platform toggles
func (s *AdminService) UpdateSettings(update entities.PlatformSettingsUpdate) entities.PlatformSettings {
	return s.settings.Apply(update)
}
