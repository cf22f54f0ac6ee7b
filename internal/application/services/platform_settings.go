package services

import (
	"sync"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/pkg/config"
)

// PlatformSettings holds the admin toggles in memory. Nothing outside the
// admin dashboard reads them.
type PlatformSettings struct {
	mu       sync.RWMutex
	settings entities.PlatformSettings
}

// NewPlatformSettings seeds the toggles from configuration
func NewPlatformSettings(cfg config.PlatformConfig) *PlatformSettings {
	return &PlatformSettings{
		settings: entities.PlatformSettings{
			SelfSignupAllowed: cfg.SelfSignupAllowed,
			GmailRequired:     cfg.GmailRequired,
			MaintenanceMode:   cfg.MaintenanceMode,
		},
	}
}

// Get returns the current toggles
func (p *PlatformSettings) Get() entities.PlatformSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Apply sets the toggles present in update and returns the result
func (p *PlatformSettings) Apply(update entities.PlatformSettingsUpdate) entities.PlatformSettings {
	p.mu.Lock()
	defer p.mu.Unlock()

	if update.SelfSignupAllowed != nil {
		p.settings.SelfSignupAllowed = *update.SelfSignupAllowed
	}
	if update.GmailRequired != nil {
		p.settings.GmailRequired = *update.GmailRequired
	}
	if update.MaintenanceMode != nil {
		p.settings.MaintenanceMode = *update.MaintenanceMode
	}
	return p.settings
}
