package syncqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCacheRoundtrip(t *testing.T) {
	cache := NewDocumentCache(NewMemoryStore())

	require.NoError(t, cache.Cache("doc-1", []byte("contents"), time.Hour))

	data, err := cache.Document("doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("contents"), data)
}

func TestDocumentCacheMiss(t *testing.T) {
	cache := NewDocumentCache(NewMemoryStore())

	_, err := cache.Document("doc-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentCacheExpiryEvicts(t *testing.T) {
	store := NewMemoryStore()
	cache := NewDocumentCache(store)

	require.NoError(t, cache.Cache("doc-1", []byte("contents"), -time.Minute))

	_, err := cache.Document("doc-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// the blob and its metadata are gone, not just hidden
	_, err = store.Get(NSDocuments, "doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(NSMetadata, "doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentCacheSize(t *testing.T) {
	cache := NewDocumentCache(NewMemoryStore())

	require.NoError(t, cache.Cache("doc-1", make([]byte, 100), time.Hour))
	require.NoError(t, cache.Cache("doc-2", make([]byte, 250), time.Hour))

	size, err := cache.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(350), size)
}

func TestDocumentCacheClear(t *testing.T) {
	cache := NewDocumentCache(NewMemoryStore())

	require.NoError(t, cache.Cache("doc-1", []byte("contents"), time.Hour))
	require.NoError(t, cache.Clear())

	size, err := cache.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	_, err = cache.Document("doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsDefaults(t *testing.T) {
	settings := NewSettingsStore(NewMemoryStore()).Settings()

	assert.True(t, settings.AutoCache)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, int64(DefaultMaxCacheSize), settings.MaxCacheSizeBytes)
}

func TestSettingsSaveAndLoad(t *testing.T) {
	store := NewSettingsStore(NewMemoryStore())

	require.NoError(t, store.Save(Settings{
		AutoCache:            false,
		MaxCacheSizeBytes:    100 << 20,
		NotificationsEnabled: false,
	}))

	settings := store.Settings()
	assert.False(t, settings.AutoCache)
	assert.False(t, settings.NotificationsEnabled)
	assert.Equal(t, int64(100<<20), settings.MaxCacheSizeBytes)
}

func TestSettingsRepairsCacheSize(t *testing.T) {
	store := NewSettingsStore(NewMemoryStore())

	require.NoError(t, store.Save(Settings{AutoCache: true, MaxCacheSizeBytes: 0}))
	assert.Equal(t, int64(DefaultMaxCacheSize), store.Settings().MaxCacheSizeBytes)
}

func TestMemoryStoreListInsertionOrder(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Put("ns", "b", []byte("1")))
	require.NoError(t, store.Put("ns", "a", []byte("2")))
	require.NoError(t, store.Put("ns", "c", []byte("3")))

	// updating an existing key keeps its original position
	require.NoError(t, store.Put("ns", "b", []byte("1updated")))

	keys, err := store.Keys("ns")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	values, err := store.List("ns")
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, []byte("1updated"), values[0])
}
