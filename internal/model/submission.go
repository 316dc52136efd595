package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	OCRStatusPending = "pending"
)

// FolderPath is the ordered list of folder names from root to leaf, kept on
// the submission for display. It is redundant with the Folder chain and is
// stored as a JSON array.
type FolderPath []string

func (p FolderPath) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *FolderPath) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into FolderPath", src)
	}
}

// Submission records one client-originated upload event. Records are
// append-only: they are never updated or deleted by the submission pipeline.
type Submission struct {
	ID         string     `db:"id" json:"id"`
	PortalID   string     `db:"portal_id" json:"portalId"`
	RequestID  *string    `db:"request_id" json:"requestId"`
	ItemKey    *string    `db:"item_key" json:"itemKey"`
	FolderID   *string    `db:"folder_id" json:"folderId"`
	FolderPath FolderPath `db:"folder_path" json:"folderPath"`
	StorageKey string     `db:"storage_key" json:"storageKey"`
	FileName   string     `db:"file_name" json:"fileName"`
	SizeBytes  int64      `db:"size_bytes" json:"sizeBytes"`
	OCRStatus  string     `db:"ocr_status" json:"ocrStatus"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}
