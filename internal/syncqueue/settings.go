package syncqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	settingsKey = "settings"
	lastSyncKey = "lastSync"
)

// DefaultMaxCacheSize caps the local document cache at 500MB.
const DefaultMaxCacheSize = 500 << 20

// Settings controls local cache behavior for offline operation.
type Settings struct {
	AutoCache            bool  `json:"autoCache"`
	MaxCacheSizeBytes    int64 `json:"maxCacheSizeBytes"`
	NotificationsEnabled bool  `json:"notificationsEnabled"`
}

func DefaultSettings() Settings {
	return Settings{
		AutoCache:            true,
		MaxCacheSizeBytes:    DefaultMaxCacheSize,
		NotificationsEnabled: true,
	}
}

// SettingsStore persists offline settings and sync bookkeeping in the
// settings namespace.
type SettingsStore struct {
	store Store
}

func NewSettingsStore(store Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// Settings returns the stored settings, falling back to defaults when none
// were saved or the stored blob is unreadable.
func (s *SettingsStore) Settings() Settings {
	data, err := s.store.Get(NSSettings, settingsKey)
	if err != nil {
		return DefaultSettings()
	}

	var settings Settings
	err = json.Unmarshal(data, &settings)
	if err != nil {
		return DefaultSettings()
	}
	if settings.MaxCacheSizeBytes <= 0 {
		settings.MaxCacheSizeBytes = DefaultMaxCacheSize
	}
	return settings
}

func (s *SettingsStore) Save(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return s.store.Put(NSSettings, settingsKey, data)
}

// LastSync returns the time of the last completed sync, or nil if none
// happened yet.
func (s *SettingsStore) LastSync() *time.Time {
	data, err := s.store.Get(NSSettings, lastSyncKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return nil
	}

	var t time.Time
	err = json.Unmarshal(data, &t)
	if err != nil {
		return nil
	}
	return &t
}

func (s *SettingsStore) SetLastSync(t time.Time) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal sync time: %w", err)
	}
	return s.store.Put(NSSettings, lastSyncKey, data)
}
