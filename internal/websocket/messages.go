package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeScheduleRefreshed MessageType = "schedule.refreshed"
	TypeFlatFetchError    MessageType = "flat.fetch_error"
	TypeDigestSent        MessageType = "digest.sent"
	TypeReportSubmitted   MessageType = "report.submitted"
	TypeNotification      MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ScheduleRefreshedPayload is the payload for schedule.refreshed events.
type ScheduleRefreshedPayload struct {
	StartDate  string `json:"start_date"`
	Days       int    `json:"days"`
	ActiveDays int    `json:"active_days"`
	Flats      int    `json:"flats"`
}

// FlatFetchErrorPayload is the payload for flat.fetch_error events.
type FlatFetchErrorPayload struct {
	FlatID   string `json:"flat_id"`
	FlatName string `json:"flat_name"`
	Message  string `json:"message"`
}

// DigestSentPayload is the payload for digest.sent events.
type DigestSentPayload struct {
	Days     int      `json:"days"`
	Channels []string `json:"channels"`
	Results  []string `json:"results"`
}

// ReportSubmittedPayload is the payload for report.submitted events.
type ReportSubmittedPayload struct {
	ReportID   string `json:"report_id"`
	FlatID     string `json:"flat_id"`
	FlatName   string `json:"flat_name"`
	ReportDate string `json:"report_date"`
	Status     string `json:"status"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level       string `json:"level"` // info, warning, error, success
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
