package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
	"github.com/cleanerboard/backend/internal/storage/models"
)

// stubFetcher serves canned calendar bodies per URL.
type stubFetcher struct {
	bodies map[string][]byte
	errs   map[string]error
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.bodies[url], nil
}

// memRecorder collects fetch log entries in memory.
type memRecorder struct {
	mu      sync.Mutex
	entries []models.FetchLogEntry
}

func (r *memRecorder) Record(_ context.Context, entry *models.FetchLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memRecorder) byFlat() map[string]models.FetchLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]models.FetchLogEntry, len(r.entries))
	for _, e := range r.entries {
		out[e.FlatID] = e
	}
	return out
}

func calendarFor(checkIn, checkOut string) []byte {
	return []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\nUID:stay\r\n" +
		"DTSTART;VALUE=DATE:" + checkIn + "\r\n" +
		"DTEND;VALUE=DATE:" + checkOut + "\r\n" +
		"END:VEVENT\r\nEND:VCALENDAR\r\n")
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Timezone = "Europe/London"
	cfg.Flats = []config.FlatConfig{
		{ID: "flat-7", Name: "Flat 7", CalendarURL: "https://ota.example/7.ics"},
		{ID: "flat-8", Name: "Flat 8", CalendarURL: "https://ota.example/8.ics"},
	}
	cfg.Normalize()
	return cfg
}

func TestBuildAssemblesAllFlats(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string][]byte{
		"https://ota.example/7.ics": calendarFor("20240601", "20240605"),
		"https://ota.example/8.ics": calendarFor("20240603", "20240606"),
	}}
	svc := NewService(testConfig(), fetcher, nil, nil)

	sched := svc.Build(context.Background(), booking.Date{Year: 2024, Month: time.June, Day: 1}, 14)

	if flags := sched[booking.Date{Year: 2024, Month: time.June, Day: 1}]["flat-7"]; !flags.CheckIn {
		t.Errorf("flat-7 should check in on June 1, schedule = %v", sched)
	}
	if flags := sched[booking.Date{Year: 2024, Month: time.June, Day: 3}]["flat-8"]; !flags.CheckIn {
		t.Errorf("flat-8 should check in on June 3, schedule = %v", sched)
	}
}

func TestBuildFetchFailureDegradesToEmpty(t *testing.T) {
	// One feed down: its flat contributes nothing, the other flat's
	// schedule is unaffected, and nothing errors.
	fetcher := &stubFetcher{
		bodies: map[string][]byte{
			"https://ota.example/7.ics": calendarFor("20240601", "20240605"),
		},
		errs: map[string]error{
			"https://ota.example/8.ics": errors.New("connection refused"),
		},
	}
	recorder := &memRecorder{}
	svc := NewService(testConfig(), fetcher, recorder, nil)

	sched := svc.Build(context.Background(), booking.Date{Year: 2024, Month: time.June, Day: 1}, 14)

	for d, flats := range sched {
		if _, ok := flats["flat-8"]; ok {
			t.Errorf("flat-8 must not appear (feed down), but found on %v", d)
		}
	}
	if flags := sched[booking.Date{Year: 2024, Month: time.June, Day: 5}]["flat-7"]; !flags.CheckOut {
		t.Errorf("flat-7 checkout missing, schedule = %v", sched)
	}

	entries := recorder.byFlat()
	if entries["flat-8"].Status != models.FetchStatusError {
		t.Errorf("flat-8 fetch status = %q, want error", entries["flat-8"].Status)
	}
	if entries["flat-8"].Error == nil {
		t.Error("flat-8 entry should carry the fetch error")
	}
	if entries["flat-7"].Status != models.FetchStatusOK || entries["flat-7"].EventsFound != 1 {
		t.Errorf("flat-7 entry = %+v", entries["flat-7"])
	}
}

func TestBuildEmptyBodyYieldsNoBookings(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string][]byte{
		"https://ota.example/7.ics": []byte(""),
		"https://ota.example/8.ics": calendarFor("20240601", "20240603"),
	}}
	recorder := &memRecorder{}
	svc := NewService(testConfig(), fetcher, recorder, nil)

	sched := svc.Build(context.Background(), booking.Date{Year: 2024, Month: time.June, Day: 1}, 14)

	for d, flats := range sched {
		if _, ok := flats["flat-7"]; ok {
			t.Errorf("flat-7 must not appear (empty feed), but found on %v", d)
		}
	}
	if entries := recorder.byFlat(); entries["flat-7"].Status != models.FetchStatusEmpty {
		t.Errorf("flat-7 fetch status = %q, want empty", entries["flat-7"].Status)
	}
}

func TestBuildSkipsFlatsWithoutURL(t *testing.T) {
	cfg := testConfig()
	cfg.Flats = append(cfg.Flats, config.FlatConfig{ID: "flat-9", Name: "Flat 9"})

	fetcher := &stubFetcher{bodies: map[string][]byte{}}
	recorder := &memRecorder{}
	svc := NewService(cfg, fetcher, recorder, nil)

	svc.Build(context.Background(), booking.Date{Year: 2024, Month: time.June, Day: 1}, 7)

	if entries := recorder.byFlat(); entries["flat-9"].Status != models.FetchStatusEmpty {
		t.Errorf("flat-9 fetch status = %q, want empty", entries["flat-9"].Status)
	}
}

func TestClampDays(t *testing.T) {
	svc := NewService(testConfig(), &stubFetcher{}, nil, nil)

	tests := []struct {
		in, want int
	}{
		{0, 14},
		{-5, 14},
		{1, 1},
		{30, 30},
		{60, 60},
		{61, 60},
		{1000, 60},
	}
	for _, tt := range tests {
		if got := svc.ClampDays(tt.in); got != tt.want {
			t.Errorf("ClampDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
