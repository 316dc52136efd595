package syncqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MaxUploadRetries is how many failed attempts a queued upload gets before
// it is dropped permanently. Queued changes have no such cap; only a
// terminal 4xx response removes them.
const MaxUploadRetries = 3

// PendingUpload is a file captured while offline, waiting to be pushed
// through the presign, transfer, and submit steps.
type PendingUpload struct {
	ID          string    `json:"id"`
	PortalID    string    `json:"portalId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"data"`
	Purpose     string    `json:"purpose"`
	RequestID   *string   `json:"requestId"`
	ItemKey     *string   `json:"itemKey"`
	RetryCount  int       `json:"retryCount"`
	QueuedAt    time.Time `json:"queuedAt"`
}

// PendingChange is an arbitrary API call captured while offline, replayed
// verbatim when connectivity returns.
type PendingChange struct {
	ID       string            `json:"id"`
	Method   string            `json:"method"`
	URL      string            `json:"url"`
	Headers  map[string]string `json:"headers"`
	Body     []byte            `json:"body"`
	QueuedAt time.Time         `json:"queuedAt"`
}

// UploadAPI is the server-side surface the queue drains uploads through.
type UploadAPI interface {
	// PresignUpload returns a pre-authorized PUT URL and the storage key the
	// object will land under.
	PresignUpload(fileName, contentType string) (url, key string, err error)

	// Transfer pushes the bytes to the presigned URL.
	Transfer(url string, data []byte, contentType string) error

	// Submit records the upload once the bytes are durable.
	Submit(upload PendingUpload, storageKey string) error
}

// Doer is the HTTP client used to replay queued changes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Status summarizes the local queue for the offline indicator.
type Status struct {
	PendingUploads int        `json:"pendingUploads"`
	PendingChanges int        `json:"pendingChanges"`
	LastSync       *time.Time `json:"lastSync"`
}

// Queue drains offline work sequentially: uploads first, then change
// replays. Processing one entry never blocks on another entry's outcome.
type Queue struct {
	store    Store
	api      UploadAPI
	client   Doer
	settings *SettingsStore
}

func NewQueue(store Store, api UploadAPI, client Doer) *Queue {
	return &Queue{
		store:    store,
		api:      api,
		client:   client,
		settings: NewSettingsStore(store),
	}
}

// EnqueueUpload captures a file for later submission.
func (q *Queue) EnqueueUpload(upload PendingUpload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.QueuedAt.IsZero() {
		upload.QueuedAt = time.Now()
	}

	data, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("failed to marshal pending upload: %w", err)
	}

	err = q.store.Put(NSUploads, upload.ID, data)
	if err != nil {
		return fmt.Errorf("failed to queue upload: %w", err)
	}

	slog.Debug("queued offline upload", "id", upload.ID, "file", upload.FileName)
	return nil
}

// EnqueueChange captures an API call for later replay.
func (q *Queue) EnqueueChange(change PendingChange) error {
	if change.ID == "" {
		change.ID = uuid.New().String()
	}
	if change.QueuedAt.IsZero() {
		change.QueuedAt = time.Now()
	}

	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal pending change: %w", err)
	}

	err = q.store.Put(NSChanges, change.ID, data)
	if err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	slog.Debug("queued offline change", "id", change.ID, "method", change.Method, "url", change.URL)
	return nil
}

// ProcessUploads drains the upload queue. Each upload runs presign, then
// transfer, then submit; any step failing counts as one failed attempt. An
// upload that reaches MaxUploadRetries failed attempts is dropped for good.
func (q *Queue) ProcessUploads() error {
	values, err := q.store.List(NSUploads)
	if err != nil {
		return fmt.Errorf("failed to list pending uploads: %w", err)
	}

	for _, value := range values {
		var upload PendingUpload
		err := json.Unmarshal(value, &upload)
		if err != nil {
			slog.Error("failed to decode pending upload, dropping", "error", err)
			continue
		}

		err = q.processUpload(upload)
		if err == nil {
			if delErr := q.store.Delete(NSUploads, upload.ID); delErr != nil {
				slog.Error("failed to remove completed upload", "id", upload.ID, "error", delErr)
			}
			slog.Info("offline upload synced", "id", upload.ID, "file", upload.FileName)
			continue
		}

		upload.RetryCount++
		if upload.RetryCount >= MaxUploadRetries {
			slog.Warn("dropping upload after repeated failures",
				"id", upload.ID, "file", upload.FileName, "attempts", upload.RetryCount, "error", err)
			if delErr := q.store.Delete(NSUploads, upload.ID); delErr != nil {
				slog.Error("failed to drop upload", "id", upload.ID, "error", delErr)
			}
			continue
		}

		slog.Warn("upload attempt failed, will retry",
			"id", upload.ID, "file", upload.FileName, "attempts", upload.RetryCount, "error", err)
		data, marshalErr := json.Marshal(upload)
		if marshalErr != nil {
			slog.Error("failed to re-marshal pending upload", "id", upload.ID, "error", marshalErr)
			continue
		}
		if putErr := q.store.Put(NSUploads, upload.ID, data); putErr != nil {
			slog.Error("failed to update pending upload", "id", upload.ID, "error", putErr)
		}
	}

	return nil
}

func (q *Queue) processUpload(upload PendingUpload) error {
	url, key, err := q.api.PresignUpload(upload.FileName, upload.ContentType)
	if err != nil {
		return fmt.Errorf("presign failed: %w", err)
	}

	err = q.api.Transfer(url, upload.Data, upload.ContentType)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	err = q.api.Submit(upload, key)
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	return nil
}

// ProcessChanges replays queued API calls. A 2xx response removes the
// change; a 4xx response is terminal and removes it too, since retrying a
// rejected request cannot succeed. Anything else stays queued indefinitely.
func (q *Queue) ProcessChanges() error {
	values, err := q.store.List(NSChanges)
	if err != nil {
		return fmt.Errorf("failed to list pending changes: %w", err)
	}

	for _, value := range values {
		var change PendingChange
		err := json.Unmarshal(value, &change)
		if err != nil {
			slog.Error("failed to decode pending change, dropping", "error", err)
			continue
		}

		status, err := q.replayChange(change)
		switch {
		case err != nil:
			slog.Warn("change replay failed, will retry", "id", change.ID, "url", change.URL, "error", err)

		case status >= 200 && status < 300:
			if delErr := q.store.Delete(NSChanges, change.ID); delErr != nil {
				slog.Error("failed to remove replayed change", "id", change.ID, "error", delErr)
			}
			slog.Info("offline change synced", "id", change.ID, "method", change.Method, "url", change.URL)

		case status >= 400 && status < 500:
			slog.Warn("change rejected by server, dropping", "id", change.ID, "url", change.URL, "status", status)
			if delErr := q.store.Delete(NSChanges, change.ID); delErr != nil {
				slog.Error("failed to drop rejected change", "id", change.ID, "error", delErr)
			}

		default:
			slog.Warn("change replay got server error, will retry", "id", change.ID, "url", change.URL, "status", status)
		}
	}

	return nil
}

func (q *Queue) replayChange(change PendingChange) (int, error) {
	req, err := http.NewRequest(change.Method, change.URL, bytes.NewReader(change.Body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range change.Headers {
		req.Header.Set(k, v)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// Sync drains both queues and records the sync time.
func (q *Queue) Sync() error {
	err := q.ProcessUploads()
	if err != nil {
		return err
	}

	err = q.ProcessChanges()
	if err != nil {
		return err
	}

	err = q.settings.SetLastSync(time.Now())
	if err != nil {
		slog.Error("failed to record last sync time", "error", err)
	}
	return nil
}

// Status reports pending counts and the last successful sync.
func (q *Queue) Status() (Status, error) {
	uploads, err := q.store.Keys(NSUploads)
	if err != nil {
		return Status{}, err
	}
	changes, err := q.store.Keys(NSChanges)
	if err != nil {
		return Status{}, err
	}

	return Status{
		PendingUploads: len(uploads),
		PendingChanges: len(changes),
		LastSync:       q.settings.LastSync(),
	}, nil
}

// Run drains the queues whenever connectivity is reported, and once at
// start if the first report says online. It returns when ctx is done or the
// connectivity channel closes.
func (q *Queue) Run(ctx context.Context, online <-chan bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case up, ok := <-online:
			if !ok {
				return
			}
			if !up {
				continue
			}
			err := q.Sync()
			if err != nil {
				slog.Error("sync failed", "error", err)
			}
		}
	}
}
