package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/postprocessors"
)

func newTestSettingsService() (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	return NewSettingsService(store, postprocessors.NewDefaultRegistry()), store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService()

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Workers, settings.Workers)
	assert.Equal(t, defaults.Format, settings.Format)
	assert.Empty(t, settings.Taxonomy)
	assert.Empty(t, settings.Cleanup)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService()
	_ = store.Set("count.workers", 4)
	_ = store.Set("count.format", "csv")
	_ = store.Set("taxonomy.default", "finance")
	_ = store.Set("extract.cleanup", []string{"dehyphenate"})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, domain.OutputCSV, settings.Format)
	assert.Equal(t, "finance", settings.Taxonomy)
	assert.Equal(t, []string{"dehyphenate"}, settings.Cleanup)
}

func TestSettingsService_Get_InvalidStoredValuesFallBack(t *testing.T) {
	service, store := newTestSettingsService()
	_ = store.Set("count.workers", -3)
	_ = store.Set("count.format", "xml")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 1, settings.Workers)
	assert.Equal(t, domain.OutputTable, settings.Format)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected any
	}{
		{name: "workers", key: "count.workers", value: " 8 ", expected: 8},
		{name: "format", key: "count.format", value: "JSON", expected: "json"},
		{name: "taxonomy", key: "taxonomy.default", value: "finance", expected: "finance"},
		{name: "cleanup", key: "extract.cleanup", value: "dehyphenate, whitespace", expected: []string{"dehyphenate", "whitespace"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestSettingsService()

			require.NoError(t, service.Set(tt.key, tt.value))

			val, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "workers not a number", key: "count.workers", value: "many"},
		{name: "workers zero", key: "count.workers", value: "0"},
		{name: "workers too many", key: "count.workers", value: "100000"},
		{name: "unknown format", key: "count.format", value: "xml"},
		{name: "unknown cleanup step", key: "extract.cleanup", value: "whitespace,stem"},
		{name: "unknown key", key: "search.mode", value: "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestSettingsService()

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_Set_EmptyValueResets(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, service.Set("taxonomy.default", "finance"))
	require.NoError(t, service.Set("extract.cleanup", "whitespace"))

	require.NoError(t, service.Set("taxonomy.default", "  "))
	require.NoError(t, service.Set("extract.cleanup", " , "))

	_, ok := store.Get("taxonomy.default")
	assert.False(t, ok)
	_, ok = store.Get("extract.cleanup")
	assert.False(t, ok)
}

func TestSettingsService_Set_NoCleanupRegistryAcceptsAnyName(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.NoError(t, service.Set("extract.cleanup", "anything"))
}

func TestSettingsService_Reset(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, service.Set("count.workers", "4"))

	require.NoError(t, service.Reset("count.workers"))

	_, ok := store.Get("count.workers")
	assert.False(t, ok)
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, settings.Workers)
}

func TestSettingsService_Reset_UnknownKey(t *testing.T) {
	service, _ := newTestSettingsService()

	err := service.Reset("llm.provider")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "count.workers")
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newTestSettingsService()

	keys := service.Keys()
	assert.Equal(t, []string{"count.workers", "count.format", "taxonomy.default", "extract.cleanup"}, keys)

	keys[0] = "changed"
	assert.Equal(t, "count.workers", service.Keys()[0])
}

func TestSettingsService_ConfigPath(t *testing.T) {
	service, _ := newTestSettingsService()
	assert.Equal(t, ":memory:", service.ConfigPath())
}
