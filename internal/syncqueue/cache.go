package syncqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CacheMeta describes one cached document blob.
type CacheMeta struct {
	DocumentID string    `json:"documentId"`
	SizeBytes  int64     `json:"sizeBytes"`
	CachedAt   time.Time `json:"cachedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// DocumentCache holds document bytes locally so recently viewed files open
// without connectivity. Blobs live in the documents namespace, their
// bookkeeping in metadata.
type DocumentCache struct {
	store Store
}

func NewDocumentCache(store Store) *DocumentCache {
	return &DocumentCache{store: store}
}

// Cache stores a document blob with a TTL.
func (c *DocumentCache) Cache(documentID string, data []byte, ttl time.Duration) error {
	now := time.Now()
	meta := CacheMeta{
		DocumentID: documentID,
		SizeBytes:  int64(len(data)),
		CachedAt:   now,
		ExpiresAt:  now.Add(ttl),
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal cache metadata: %w", err)
	}

	err = c.store.Put(NSDocuments, documentID, data)
	if err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}

	err = c.store.Put(NSMetadata, documentID, metaData)
	if err != nil {
		return fmt.Errorf("failed to store cache metadata: %w", err)
	}

	return nil
}

// Document returns cached bytes, evicting and reporting a miss when the
// entry has expired.
func (c *DocumentCache) Document(documentID string) ([]byte, error) {
	metaData, err := c.store.Get(NSMetadata, documentID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var meta CacheMeta
	err = json.Unmarshal(metaData, &meta)
	if err != nil {
		c.evict(documentID)
		return nil, ErrNotFound
	}

	if time.Now().After(meta.ExpiresAt) {
		c.evict(documentID)
		return nil, ErrNotFound
	}

	return c.store.Get(NSDocuments, documentID)
}

// Size returns the total bytes held by the cache.
func (c *DocumentCache) Size() (int64, error) {
	values, err := c.store.List(NSMetadata)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, value := range values {
		var meta CacheMeta
		err := json.Unmarshal(value, &meta)
		if err != nil {
			continue
		}
		total += meta.SizeBytes
	}
	return total, nil
}

// Clear drops every cached blob and its metadata.
func (c *DocumentCache) Clear() error {
	err := c.store.Clear(NSDocuments)
	if err != nil {
		return err
	}
	return c.store.Clear(NSMetadata)
}

func (c *DocumentCache) evict(documentID string) {
	err := c.store.Delete(NSDocuments, documentID)
	if err != nil {
		slog.Error("failed to evict cached document", "document_id", documentID, "error", err)
	}
	err = c.store.Delete(NSMetadata, documentID)
	if err != nil {
		slog.Error("failed to evict cache metadata", "document_id", documentID, "error", err)
	}
}
