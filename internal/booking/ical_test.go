package booking

import (
	"testing"
	"time"
)

var london = mustLoadLocation("Europe/London")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestParseBookings_DateOnlyEvents(t *testing.T) {
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Booking.com//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:booking-1\r\n" +
		"SUMMARY:CLOSED - Not available\r\n" +
		"DTSTART;VALUE=DATE:20240601\r\n" +
		"DTEND;VALUE=DATE:20240605\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	stays := ParseBookings(raw, london)
	if len(stays) != 1 {
		t.Fatalf("expected 1 stay, got %d", len(stays))
	}
	want := StayInterval{
		CheckIn:  Date{2024, time.June, 1},
		CheckOut: Date{2024, time.June, 5},
	}
	if stays[0] != want {
		t.Errorf("stay = %+v, want %+v", stays[0], want)
	}
}

func TestParseBookings_CheckoutDayTakenAsIs(t *testing.T) {
	// The OTA encodes the checkout day directly in DTEND; it must not
	// be decremented by one per generic exclusive-end semantics.
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:booking-asis\r\n" +
		"DTSTART;VALUE=DATE:20240610\r\n" +
		"DTEND;VALUE=DATE:20240612\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	stays := ParseBookings(raw, london)
	if len(stays) != 1 {
		t.Fatalf("expected 1 stay, got %d", len(stays))
	}
	if got, want := stays[0].CheckOut, (Date{2024, time.June, 12}); got != want {
		t.Errorf("checkout = %v, want %v", got, want)
	}
}

func TestParseBookings_TimedEventsNormalizedToLocalDate(t *testing.T) {
	// 23:00 UTC on June 1st is already June 2nd in BST (+01:00).
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:booking-timed\r\n" +
		"DTSTART:20240601T230000Z\r\n" +
		"DTEND:20240605T100000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	stays := ParseBookings(raw, london)
	if len(stays) != 1 {
		t.Fatalf("expected 1 stay, got %d", len(stays))
	}
	want := StayInterval{
		CheckIn:  Date{2024, time.June, 2},
		CheckOut: Date{2024, time.June, 5},
	}
	if stays[0] != want {
		t.Errorf("stay = %+v, want %+v", stays[0], want)
	}
}

func TestParseBookings_SkipsInvalidEvents(t *testing.T) {
	tests := []struct {
		name  string
		event string
	}{
		{
			name: "zero length",
			event: "BEGIN:VEVENT\r\nUID:e1\r\n" +
				"DTSTART;VALUE=DATE:20240610\r\nDTEND;VALUE=DATE:20240610\r\nEND:VEVENT\r\n",
		},
		{
			name: "negative length",
			event: "BEGIN:VEVENT\r\nUID:e2\r\n" +
				"DTSTART;VALUE=DATE:20240612\r\nDTEND;VALUE=DATE:20240610\r\nEND:VEVENT\r\n",
		},
		{
			name:  "missing end",
			event: "BEGIN:VEVENT\r\nUID:e3\r\nDTSTART;VALUE=DATE:20240610\r\nEND:VEVENT\r\n",
		},
		{
			name:  "missing start",
			event: "BEGIN:VEVENT\r\nUID:e4\r\nDTEND;VALUE=DATE:20240612\r\nEND:VEVENT\r\n",
		},
		{
			name: "garbage dates",
			event: "BEGIN:VEVENT\r\nUID:e5\r\n" +
				"DTSTART;VALUE=DATE:notadate\r\nDTEND;VALUE=DATE:alsonot\r\nEND:VEVENT\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\n" + tt.event + "END:VCALENDAR\r\n")
			if stays := ParseBookings(raw, london); len(stays) != 0 {
				t.Errorf("expected event to be dropped, got %d stays", len(stays))
			}
		})
	}
}

func TestParseBookings_SiblingEventsSurviveBadOne(t *testing.T) {
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:bad\r\n" +
		"DTSTART;VALUE=DATE:20240610\r\n" +
		"DTEND;VALUE=DATE:20240610\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:good\r\n" +
		"DTSTART;VALUE=DATE:20240615\r\n" +
		"DTEND;VALUE=DATE:20240618\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	stays := ParseBookings(raw, london)
	if len(stays) != 1 {
		t.Fatalf("expected 1 stay, got %d", len(stays))
	}
	if got, want := stays[0].CheckIn, (Date{2024, time.June, 15}); got != want {
		t.Errorf("checkin = %v, want %v", got, want)
	}
}

func TestParseBookings_EmptyAndGarbageDocuments(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   \r\n"), []byte("this is not a calendar")} {
		if stays := ParseBookings(raw, london); len(stays) != 0 {
			t.Errorf("ParseBookings(%q) = %d stays, want 0", raw, len(stays))
		}
	}
}

func TestParseBookings_SortedByCheckIn(t *testing.T) {
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:later\r\n" +
		"DTSTART;VALUE=DATE:20240620\r\n" +
		"DTEND;VALUE=DATE:20240625\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:earlier\r\n" +
		"DTSTART;VALUE=DATE:20240601\r\n" +
		"DTEND;VALUE=DATE:20240605\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	stays := ParseBookings(raw, london)
	if len(stays) != 2 {
		t.Fatalf("expected 2 stays, got %d", len(stays))
	}
	if !stays[0].CheckIn.Before(stays[1].CheckIn) {
		t.Errorf("stays not sorted: %+v", stays)
	}
}
