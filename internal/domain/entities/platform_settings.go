package entities

// PlatformSettings are the admin dashboard toggles. They live in memory
// only and nothing in the portal enforces them.
type PlatformSettings struct {
	SelfSignupAllowed bool `json:"selfSignupAllowed"`
	GmailRequired     bool `json:"gmailRequired"`
	MaintenanceMode   bool `json:"maintenanceMode"`
}

// PlatformSettingsUpdate is a partial update; nil fields are left alone.
type PlatformSettingsUpdate struct {
	SelfSignupAllowed *bool `json:"selfSignupAllowed,omitempty"`
	GmailRequired     *bool `json:"gmailRequired,omitempty"`
	MaintenanceMode   *bool `json:"maintenanceMode,omitempty"`
}
