package model

import (
	"time"
)

// PortalSession is the authenticated identity carried by a portal access
// token. It scopes every portal API call to a single portal.
type PortalSession struct {
	PortalID    string
	ClientName  string
	ClientEmail string
}

// Portal is a client-facing upload space tied to at most one organization.
// Clients authenticate with an access code; the hash is stored here.
type Portal struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	OrganizationID *string   `db:"organization_id"`
	CreatedByID    string    `db:"created_by_id"`
	ClientName     *string   `db:"client_name"`
	ClientEmail    *string   `db:"client_email"`
	AccessCodeHash string    `db:"access_code_hash"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
