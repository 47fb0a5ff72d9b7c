package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWorkers  = "count.workers"
	keyFormat   = "count.format"
	keyTaxonomy = "taxonomy.default"
	keyCleanup  = "extract.cleanup"
)

// settingKeys lists the keys accepted by Set, in display order.
var settingKeys = []string{keyWorkers, keyFormat, keyTaxonomy, keyCleanup}

// maxWorkers bounds count.workers.
const maxWorkers = 256

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	cleanup     driven.PostProcessorRegistry
}

// NewSettingsService creates a new settings service.
// cleanup is used to check step names given for extract.cleanup; when nil
// any name is accepted.
func NewSettingsService(configStore driven.ConfigStore, cleanup driven.PostProcessorRegistry) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		cleanup:     cleanup,
	}
}

// Get retrieves current settings. Stored values that are no longer valid
// fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Workers:  s.getWorkers(defaults.Workers),
		Format:   s.getFormat(defaults.Format),
		Taxonomy: s.configStore.GetString(keyTaxonomy),
		Cleanup:  s.configStore.GetStringSlice(keyCleanup),
	}

	return settings, nil
}

// Set validates and persists a single setting.
// An empty value for taxonomy.default or extract.cleanup resets the key.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxWorkers {
			return fmt.Errorf("%w: %s must be a number between 1 and %d", domain.ErrInvalidInput, key, maxWorkers)
		}
		return s.configStore.Set(key, n)

	case keyFormat:
		format, err := domain.ParseOutputFormat(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, format.String())

	case keyTaxonomy:
		if value == "" {
			return s.configStore.Delete(key)
		}
		return s.configStore.Set(key, value)

	case keyCleanup:
		names := splitList(value)
		if len(names) == 0 {
			return s.configStore.Delete(key)
		}
		if err := s.checkCleanup(names); err != nil {
			return err
		}
		return s.configStore.Set(key, names)

	default:
		return unknownKey(key)
	}
}

// Reset removes a setting so its default applies again.
func (s *SettingsService) Reset(key string) error {
	for _, k := range settingKeys {
		if k == key {
			return s.configStore.Delete(key)
		}
	}
	return unknownKey(key)
}

// Keys lists the setting keys accepted by Set.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) checkCleanup(names []string) error {
	if s.cleanup == nil {
		return nil
	}
	for _, name := range names {
		if !s.cleanup.Has(name) {
			return fmt.Errorf("%w: unknown cleanup step %q (available: %s)",
				domain.ErrInvalidInput, name, strings.Join(s.cleanup.Names(), ", "))
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getWorkers(defaultVal int) int {
	val := s.configStore.GetInt(keyWorkers)
	if val < 1 || val > maxWorkers {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	format, err := domain.ParseOutputFormat(s.configStore.GetString(keyFormat))
	if err != nil {
		return defaultVal
	}
	return format
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown setting %q (keys: %s)",
		domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
