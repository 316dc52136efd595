package model

import (
	"time"
)

const (
	NotificationTypeClientUpload = "client_upload"
)

// Notification is an in-app "bell" record for a dashboard user. The pipeline
// only ever inserts these; read/unread state lives elsewhere.
type Notification struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
