package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
	"github.com/cleanerboard/backend/internal/schedule"
)

// stubFetcher serves one canned calendar for every URL.
type stubFetcher struct {
	body []byte
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, nil
}

func testService(body string) *schedule.Service {
	cfg := config.DefaultConfig()
	cfg.Flats = []config.FlatConfig{
		{ID: "flat-7", Name: "Flat 7", CalendarURL: "https://ota.example/7.ics"},
	}
	cfg.Normalize()
	return schedule.NewService(cfg, &stubFetcher{body: []byte(body)}, nil, nil)
}

const oneStay = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\nUID:stay\r\n" +
	"DTSTART;VALUE=DATE:20240601\r\n" +
	"DTEND;VALUE=DATE:20240605\r\n" +
	"END:VEVENT\r\nEND:VCALENDAR\r\n"

func TestGetScheduleReturnsWindow(t *testing.T) {
	handler := GetSchedule(testService(oneStay), nil)

	req := httptest.NewRequest("GET", "/api/schedule?days=14&start=2024-06-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body)
	}

	var resp ScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Days != 14 {
		t.Errorf("days = %d, want 14", resp.Days)
	}
	if got := resp.StartDate.String(); got != "2024-06-01" {
		t.Errorf("start_date = %q, want 2024-06-01", got)
	}
	if len(resp.DaysList) != 2 {
		t.Fatalf("active days = %d, want 2 (check-in and check-out), body = %s", len(resp.DaysList), rec.Body)
	}

	first := resp.DaysList[0]
	if first.Date != (booking.Date{Year: 2024, Month: 6, Day: 1}) {
		t.Errorf("first day = %v, want June 1", first.Date)
	}
	if len(first.Flats) != 1 || !first.Flats[0].CheckIn || first.Flats[0].CheckOut {
		t.Errorf("first day flats = %+v, want a single check-in for flat-7", first.Flats)
	}
	if first.Flats[0].Status != booking.StatusCheckIn {
		t.Errorf("first day status = %v, want check_in", first.Flats[0].Status)
	}
}

func TestGetScheduleRejectsBadParams(t *testing.T) {
	handler := GetSchedule(testService(oneStay), nil)

	for _, query := range []string{"?days=abc", "?start=June-1st", "?days=7&start=2024/06/01"} {
		req := httptest.NewRequest("GET", "/api/schedule"+query, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestGetScheduleClampsOversizedWindow(t *testing.T) {
	handler := GetSchedule(testService(oneStay), nil)

	req := httptest.NewRequest("GET", "/api/schedule?days=500&start=2024-06-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp ScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Days != 60 {
		t.Errorf("days = %d, want clamped to 60", resp.Days)
	}
}

func TestGetScheduleTextEmptyWindow(t *testing.T) {
	handler := GetScheduleText(testService(""))

	req := httptest.NewRequest("GET", "/api/schedule/text?start=2030-01-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "No check-ins or check-outs") {
		t.Errorf("body = %q, want the empty-window message", body)
	}
}

func TestGetSchedulePDFContentType(t *testing.T) {
	handler := GetSchedulePDF(testService(oneStay))

	req := httptest.NewRequest("GET", "/api/schedule/pdf?start=2024-06-01", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body does not start with a PDF header")
	}
}
