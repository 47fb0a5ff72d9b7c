package driving

import "github.com/custodia-labs/tally/internal/core/domain"

// SettingsService manages user preferences.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Reset removes a setting so its default applies again.
	Reset(key string) error

	// Keys lists the setting keys accepted by Set.
	Keys() []string

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
