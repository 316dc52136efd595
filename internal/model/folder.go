package model

import (
	"time"
)

// Folder is one node in an organization's folder tree. ParentID is nil for
// root-level folders. Within a given (organization_id, parent_id) pair the
// name is treated as unique by the resolver: a name collision means "found",
// never "create".
type Folder struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	OrganizationID string    `db:"organization_id"`
	ParentID       *string   `db:"parent_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
