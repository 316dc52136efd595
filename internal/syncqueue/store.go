package syncqueue

import (
	"errors"
	"sort"
	"sync"
)

// Store namespaces. Each namespace is an independent key space inside the
// same local store.
const (
	NSDocuments = "documents"
	NSMetadata  = "metadata"
	NSUploads   = "uploads"
	NSChanges   = "changes"
	NSSettings  = "settings"
)

var ErrNotFound = errors.New("key not found")

// Store is the local persistence layer for offline operation. Deletes are
// idempotent; List returns values in insertion order so queue draining is
// first-in first-out.
type Store interface {
	Put(ns, key string, value []byte) error
	Get(ns, key string) ([]byte, error)
	Delete(ns, key string) error
	List(ns string) ([][]byte, error)
	Keys(ns string) ([]string, error)
	Clear(ns string) error
}

type memoryEntry struct {
	value []byte
	seq   int64
}

// MemoryStore is the in-process Store used in tests and when no local
// database path is configured. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]memoryEntry
	seq  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]memoryEntry)}
}

func (s *MemoryStore) Put(ns, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.data[ns]
	if !ok {
		bucket = make(map[string]memoryEntry)
		s.data[ns] = bucket
	}

	entry, exists := bucket[key]
	if !exists {
		s.seq++
		entry.seq = s.seq
	}
	entry.value = append([]byte(nil), value...)
	bucket[key] = entry
	return nil
}

func (s *MemoryStore) Get(ns, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[ns][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), entry.value...), nil
}

func (s *MemoryStore) Delete(ns, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[ns], key)
	return nil
}

func (s *MemoryStore) List(ns string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.data[ns]
	entries := make([]memoryEntry, 0, len(bucket))
	for _, e := range bucket {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	values := make([][]byte, 0, len(entries))
	for _, e := range entries {
		values = append(values, append([]byte(nil), e.value...))
	}
	return values, nil
}

func (s *MemoryStore) Keys(ns string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.data[ns]
	type keyed struct {
		key string
		seq int64
	}
	entries := make([]keyed, 0, len(bucket))
	for k, e := range bucket {
		entries = append(entries, keyed{key: k, seq: e.seq})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return keys, nil
}

func (s *MemoryStore) Clear(ns string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, ns)
	return nil
}
