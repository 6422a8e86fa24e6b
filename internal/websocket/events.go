package websocket

import "log"

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastScheduleRefreshed announces that a fresh schedule was built.
func (b *EventBroadcaster) BroadcastScheduleRefreshed(startDate string, days, activeDays, flats int) {
	b.send(NewMessage(TypeScheduleRefreshed, ScheduleRefreshedPayload{
		StartDate:  startDate,
		Days:       days,
		ActiveDays: activeDays,
		Flats:      flats,
	}))
}

// BroadcastFlatFetchError announces that a flat's calendar feed failed.
// The schedule still renders; the flat simply contributes no bookings.
func (b *EventBroadcaster) BroadcastFlatFetchError(flatID, flatName string, err error) {
	b.send(NewMessage(TypeFlatFetchError, FlatFetchErrorPayload{
		FlatID:   flatID,
		FlatName: flatName,
		Message:  err.Error(),
	}))
}

// BroadcastDigestSent announces a completed digest push.
func (b *EventBroadcaster) BroadcastDigestSent(days int, channels, results []string) {
	b.send(NewMessage(TypeDigestSent, DigestSentPayload{
		Days:     days,
		Channels: channels,
		Results:  results,
	}))
}

// BroadcastReportSubmitted announces a cleaner's completion report.
func (b *EventBroadcaster) BroadcastReportSubmitted(reportID, flatID, flatName, reportDate, status string) {
	b.send(NewMessage(TypeReportSubmitted, ReportSubmittedPayload{
		ReportID:   reportID,
		FlatID:     flatID,
		FlatName:   flatName,
		ReportDate: reportDate,
		Status:     status,
	}))
}

// BroadcastNotification sends a generic notification to all clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	b.send(NewMessage(TypeNotification, NotificationPayload{
		Level:       level,
		Title:       title,
		Message:     message,
		Dismissible: true,
	}))
}

func (b *EventBroadcaster) send(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
