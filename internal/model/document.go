package model

import (
	"time"
)

// Coarse document classifications derived from the MIME type at creation
// time. The value is never recomputed after the record exists.
const (
	DocumentTypePDF   = "pdf"
	DocumentTypeImage = "image"
	DocumentTypeWord  = "word"
	DocumentTypeExcel = "excel"
	DocumentTypeOther = "other"
)

type Document struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	FolderID       *string   `db:"folder_id"`
	OrganizationID string    `db:"organization_id"`
	SizeBytes      int64     `db:"size_bytes"`
	StorageKey     string    `db:"storage_key"`
	StorageBucket  string    `db:"storage_bucket"`
	Type           string    `db:"type"`
	UploadedByID   string    `db:"uploaded_by_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
