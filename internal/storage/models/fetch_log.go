// Package models contains the domain models for the application.
package models

import "time"

// FetchLogEntry records one attempt to fetch and parse a flat's
// booking calendar. Failures are recorded here rather than surfaced to
// schedule consumers: a broken feed degrades to "no bookings".
type FetchLogEntry struct {
	ID          string    `json:"id"`
	FlatID      string    `json:"flat_id"`
	Status      string    `json:"status"`
	Error       *string   `json:"error,omitempty"`
	EventsFound int       `json:"events_found"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Fetch status constants.
const (
	FetchStatusOK    = "ok"
	FetchStatusError = "error"
	FetchStatusEmpty = "empty"
)
