package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ownitpro/omgsystems/internal/db"
	"github.com/ownitpro/omgsystems/internal/logger"
	"github.com/ownitpro/omgsystems/internal/syncqueue"
)

// syncagent drains the local offline queue against the portal API. It runs
// alongside a desktop client: uploads and changes captured while offline are
// pushed whenever the API becomes reachable. It carries its own tiny env
// surface instead of the server config, which requires S3 and JWT secrets the
// agent must never hold.
func main() {
	logger.Init(os.Getenv("APP_ENV") == "development", os.Getenv("SENTRY_DSN"))

	localPath := envString("SYNC_DB_PATH", "./data/offline.db")
	apiURL := envString("SYNC_API_URL", "http://localhost:8090")
	token := os.Getenv("SYNC_PORTAL_TOKEN")
	interval := 30 * time.Second

	database, err := db.Init("sqlite", localPath)
	if err != nil {
		slog.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	store, err := syncqueue.NewSQLiteStore(database)
	if err != nil {
		slog.Error("failed to initialize local store", "error", err)
		os.Exit(1)
	}

	api := syncqueue.NewAPIClient(apiURL, token, http.DefaultClient)
	queue := syncqueue.NewQueue(store, api, http.DefaultClient)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	online := make(chan bool, 1)
	go probeConnectivity(ctx, apiURL, interval, online)

	slog.Info("sync agent started", "api_url", apiURL, "local_store", localPath)
	queue.Run(ctx, online)

	status, err := queue.Status()
	if err == nil {
		slog.Info("sync agent stopped", "pending_uploads", status.PendingUploads, "pending_changes", status.PendingChanges)
	}
}

// probeConnectivity polls the API health endpoint and reports transitions.
// The first successful probe triggers the start-while-online drain.
func probeConnectivity(ctx context.Context, apiURL string, interval time.Duration, online chan<- bool) {
	defer close(online)

	client := &http.Client{Timeout: 5 * time.Second}
	wasOnline := false

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		up := probe(ctx, client, apiURL+"/health")
		if up != wasOnline {
			select {
			case online <- up:
			case <-ctx.Done():
				return
			}
		}
		wasOnline = up

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func probe(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}
