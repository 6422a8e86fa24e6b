package models

import "time"

// CompletionReport is a cleaner's record that a flat was turned over on
// a given day, with optional free-text notes. Reports carry no media;
// photo storage lives outside this service.
type CompletionReport struct {
	ID         string    `json:"id"`
	FlatID     string    `json:"flat_id"`
	ReportDate string    `json:"report_date"` // YYYY-MM-DD in the configured zone
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Report status constants.
const (
	ReportStatusDone    = "done"
	ReportStatusSkipped = "skipped"
	ReportStatusIssue   = "issue"
)

// ValidReportStatus reports whether s is one of the known statuses.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusDone, ReportStatusSkipped, ReportStatusIssue:
		return true
	}
	return false
}
