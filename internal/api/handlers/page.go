package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/present"
	"github.com/cleanerboard/backend/internal/schedule"
)

// SchedulePage returns a handler that serves the cleaner's web view.
// Unlike the API endpoints this page is forgiving: an unparsable days
// value falls back to the default window rather than erroring, so a
// mangled link still shows a schedule.
func SchedulePage(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				days = parsed
			}
		}
		days = svc.ClampDays(days)

		start := booking.Today(svc.Location())
		sched := svc.Build(r.Context(), start, days)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := present.HTML(w, sched, svc.Flats(), days, svc.MaxDays()); err != nil {
			log.Printf("Schedule page render failed: %v", err)
		}
	}
}
