package present

import (
	"strings"
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

// EmptyWindowMessage is shown when the window contains no activity.
const EmptyWindowMessage = "No check-ins or check-outs in the selected window."

// Text renders the schedule as the compact one-line-per-day form used
// for the WhatsApp digest and the plain-text endpoint.
func Text(s booking.Schedule, flats []config.FlatConfig) string {
	if s.IsEmpty() {
		return EmptyWindowMessage
	}

	var lines []string
	for _, d := range s.Days() {
		var items []string
		for _, e := range DayEntries(s, d, flats) {
			items = append(items, e.Name+": "+textAction(e.Status))
		}
		lines = append(lines, d.Time(time.UTC).Format("Mon 02 Jan")+" - "+strings.Join(items, "; "))
	}
	return strings.Join(lines, "\n")
}

// textAction maps a status to its compact digest form.
func textAction(st booking.Status) string {
	switch st {
	case booking.StatusTurnover:
		return "out/clean/in"
	case booking.StatusCheckOut:
		return "out/clean"
	case booking.StatusCheckIn:
		return "check-in"
	default:
		return ""
	}
}
