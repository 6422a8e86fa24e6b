package present

import (
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

// Rows renders the schedule as spreadsheet rows, header first. One row
// per flat per active day.
func Rows(s booking.Schedule, flats []config.FlatConfig) [][]string {
	rows := [][]string{{"Date", "Flat", "Action"}}
	for _, d := range s.Days() {
		dateStr := d.String() + " (" + d.Time(time.UTC).Format("Mon") + ")"
		for _, e := range DayEntries(s, d, flats) {
			rows = append(rows, []string{dateStr, e.Name, rowAction(e.Status)})
		}
	}
	return rows
}

// rowAction maps a status to the spreadsheet action column.
func rowAction(st booking.Status) string {
	switch st {
	case booking.StatusTurnover:
		return "Check-out / Clean / Check-in"
	case booking.StatusCheckOut:
		return "Check-out / Clean"
	case booking.StatusCheckIn:
		return "Check-in"
	default:
		return ""
	}
}
