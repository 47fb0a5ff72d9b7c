package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("count.format", "table"))
	require.NoError(t, store.Set("count.format", "csv"))

	val, ok := store.Get("count.format")
	assert.True(t, ok)
	assert.Equal(t, "csv", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("taxonomy.default", "finance"))
	require.NoError(t, store.Set("count.workers", 4))

	assert.Equal(t, "finance", store.GetString("taxonomy.default"))
	assert.Empty(t, store.GetString("count.workers"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{name: "int", value: 4, expected: 4},
		{name: "int64", value: int64(8), expected: 8},
		{name: "float64", value: 3.5, expected: 0},
		{name: "string", value: "4", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("count.workers", tt.value))
			assert.Equal(t, tt.expected, store.GetInt("count.workers"))
		})
	}
}

func TestConfigStore_GetInt_NotFound(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{name: "string slice", value: []string{"dehyphenate", "whitespace"}, expected: []string{"dehyphenate", "whitespace"}},
		{name: "any slice", value: []any{"whitespace", 3}, expected: []string{"whitespace"}},
		{name: "wrong type", value: "whitespace", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("extract.cleanup", tt.value))
			assert.Equal(t, tt.expected, store.GetStringSlice("extract.cleanup"))
		})
	}
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("extract.cleanup", []string{"whitespace"}))

	got := store.GetStringSlice("extract.cleanup")
	got[0] = "changed"

	assert.Equal(t, []string{"whitespace"}, store.GetStringSlice("extract.cleanup"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("count.workers", 2))

	require.NoError(t, store.Delete("count.workers"))

	_, ok := store.Get("count.workers")
	assert.False(t, ok)
}

func TestConfigStore_Delete_Missing(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Delete("missing"))
}

func TestConfigStore_Load_NoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("count.format", "json"))

	require.NoError(t, store.Load())

	assert.Equal(t, "json", store.GetString("count.format"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
			if n%2 == 0 {
				_ = store.Delete(key)
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < 50; i += 2 {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
