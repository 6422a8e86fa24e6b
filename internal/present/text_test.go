package present

import (
	"strings"
	"testing"
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

var testFlats = []config.FlatConfig{
	{ID: "flat-7", Name: "Flat 7", Nickname: "F7", Color: "#e63946"},
	{ID: "flat-8", Name: "Flat 8", Nickname: "F8", Color: "#457b9d"},
}

func testSchedule() booking.Schedule {
	byFlat := map[string][]booking.StayInterval{
		"flat-7": {{
			CheckIn:  booking.Date{Year: 2024, Month: time.June, Day: 1},
			CheckOut: booking.Date{Year: 2024, Month: time.June, Day: 5},
		}},
		"flat-8": {
			{
				CheckIn:  booking.Date{Year: 2024, Month: time.June, Day: 1},
				CheckOut: booking.Date{Year: 2024, Month: time.June, Day: 3},
			},
			{
				CheckIn:  booking.Date{Year: 2024, Month: time.June, Day: 3},
				CheckOut: booking.Date{Year: 2024, Month: time.June, Day: 6},
			},
		},
	}
	return booking.BuildSchedule(byFlat, booking.Date{Year: 2024, Month: time.June, Day: 1}, 10)
}

func TestTextEmptySchedule(t *testing.T) {
	if got := Text(booking.Schedule{}, testFlats); got != EmptyWindowMessage {
		t.Errorf("Text(empty) = %q, want %q", got, EmptyWindowMessage)
	}
}

func TestTextRendering(t *testing.T) {
	text := Text(testSchedule(), testFlats)

	lines := strings.Split(text, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 active days, got %d:\n%s", len(lines), text)
	}

	// June 1st: both flats check in; flat names sorted.
	if !strings.Contains(lines[0], "Sat 01 Jun") {
		t.Errorf("line 0 missing date: %q", lines[0])
	}
	if !strings.Contains(lines[0], "Flat 7: check-in; Flat 8: check-in") {
		t.Errorf("line 0 = %q", lines[0])
	}

	// June 3rd: flat 8 same-day turnover.
	if !strings.Contains(lines[1], "Flat 8: out/clean/in") {
		t.Errorf("line 1 = %q", lines[1])
	}

	// June 5th: flat 7 checkout only.
	if !strings.Contains(lines[2], "Flat 7: out/clean") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestTextFallsBackToFlatID(t *testing.T) {
	byFlat := map[string][]booking.StayInterval{
		"mystery": {{
			CheckIn:  booking.Date{Year: 2024, Month: time.June, Day: 1},
			CheckOut: booking.Date{Year: 2024, Month: time.June, Day: 2},
		}},
	}
	s := booking.BuildSchedule(byFlat, booking.Date{Year: 2024, Month: time.June, Day: 1}, 3)

	text := Text(s, testFlats)
	if !strings.Contains(text, "mystery: check-in") {
		t.Errorf("unknown flat should render under its ID, got:\n%s", text)
	}
}
