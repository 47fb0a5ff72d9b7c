package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("count.workers"); implementations handle
// persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetStringSlice retrieves a string list configuration value.
	// Returns nil if key doesn't exist or isn't a list.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key and persists the change.
	// Deleting a missing key is not an error.
	Delete(key string) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
