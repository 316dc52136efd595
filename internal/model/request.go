package model

import (
	"time"
)

const (
	FulfillmentStatusSubmitted = "submitted"
)

// PortalRequest is a specific document ask tracked against a portal. Each
// request is a single item.
type PortalRequest struct {
	ID        string    `db:"id"`
	PortalID  string    `db:"portal_id"`
	Label     string    `db:"label"`
	CreatedAt time.Time `db:"created_at"`
}

// RequestFulfillment joins a portal request to the document that satisfied
// it. It is only written when the document record exists; a submission whose
// document step failed leaves the request unfulfilled.
type RequestFulfillment struct {
	ID         string    `db:"id"`
	RequestID  string    `db:"request_id"`
	DocumentID string    `db:"document_id"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}
