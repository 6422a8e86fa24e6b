package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cleanerboard/backend/internal/api/middleware"
	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/present"
	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/websocket"
)

// ScheduleFlatEntry is one flat's activity on one day.
type ScheduleFlatEntry struct {
	FlatID   string         `json:"flat_id"`
	Name     string         `json:"name"`
	Nickname string         `json:"nickname,omitempty"`
	Color    string         `json:"color,omitempty"`
	CheckIn  bool           `json:"check_in"`
	CheckOut bool           `json:"check_out"`
	Status   booking.Status `json:"status"`
}

// ScheduleDay is one day that has at least one check-in or check-out.
type ScheduleDay struct {
	Date    booking.Date        `json:"date"`
	Weekday string              `json:"weekday"`
	Flats   []ScheduleFlatEntry `json:"flats"`
}

// ScheduleResponse represents the derived schedule for a window.
type ScheduleResponse struct {
	StartDate booking.Date  `json:"start_date"`
	Days      int           `json:"days"`
	Timezone  string        `json:"timezone"`
	DaysList  []ScheduleDay `json:"days_list"`
}

// windowParams parses the days and start query parameters. days falls
// back to the service default and is capped at the configured maximum;
// start defaults to today in the configured zone.
func windowParams(r *http.Request, svc *schedule.Service) (booking.Date, int, error) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return booking.Date{}, 0, fmt.Errorf("days must be an integer, got %q", raw)
		}
		days = parsed
	}
	days = svc.ClampDays(days)

	start := booking.Today(svc.Location())
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := booking.ParseDate(raw)
		if err != nil {
			return booking.Date{}, 0, fmt.Errorf("start must be YYYY-MM-DD, got %q", raw)
		}
		start = parsed
	}

	return start, days, nil
}

// GetSchedule returns a handler that builds and returns the schedule as
// JSON. broadcaster may be nil.
func GetSchedule(svc *schedule.Service, broadcaster *websocket.EventBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, days, err := windowParams(r, svc)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		sched := svc.Build(r.Context(), start, days)

		response := ScheduleResponse{
			StartDate: start,
			Days:      days,
			Timezone:  svc.Location().String(),
			DaysList:  []ScheduleDay{},
		}
		for _, d := range sched.Days() {
			day := ScheduleDay{Date: d, Weekday: d.Weekday().String()}
			for _, e := range present.DayEntries(sched, d, svc.Flats()) {
				flags := sched[d][e.FlatID]
				day.Flats = append(day.Flats, ScheduleFlatEntry{
					FlatID:   e.FlatID,
					Name:     e.Name,
					Nickname: e.Nickname,
					Color:    e.Color,
					CheckIn:  flags.CheckIn,
					CheckOut: flags.CheckOut,
					Status:   e.Status,
				})
			}
			response.DaysList = append(response.DaysList, day)
		}

		if broadcaster != nil {
			broadcaster.BroadcastScheduleRefreshed(start.String(), days, len(response.DaysList), len(svc.Flats()))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetScheduleText returns a handler that renders the schedule as the
// plain-text digest, the same text the WhatsApp channel sends.
func GetScheduleText(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, days, err := windowParams(r, svc)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		sched := svc.Build(r.Context(), start, days)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, present.Text(sched, svc.Flats()))
	}
}

// GetSchedulePDF returns a handler that renders the schedule as a PDF
// download.
func GetSchedulePDF(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, days, err := windowParams(r, svc)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		sched := svc.Build(r.Context(), start, days)

		pdfBytes, err := present.PDF(sched, svc.Flats(), "Cleaner Schedule")
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to render PDF")
			return
		}

		filename := fmt.Sprintf("cleaner_schedule_%04d%02d%02d.pdf", start.Year, start.Month, start.Day)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(pdfBytes)
	}
}
