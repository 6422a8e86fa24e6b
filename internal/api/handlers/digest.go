package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cleanerboard/backend/internal/api/middleware"
	"github.com/cleanerboard/backend/internal/schedule"
)

// DigestRunResponse reports the outcome of an on-demand digest push.
type DigestRunResponse struct {
	Days    int      `json:"days"`
	Digest  string   `json:"digest"`
	Results []string `json:"results"`
}

// RunDigest returns a handler that triggers an immediate digest push to
// every enabled channel, outside the cron schedule. The response echoes
// the effective window, after defaulting and clamping.
func RunDigest(svc *schedule.Service, digest *schedule.DigestScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "days must be an integer")
				return
			}
			days = parsed
		}
		days = svc.ClampDays(days)

		text, results, err := digest.Run(r.Context(), days)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Digest run failed")
			return
		}
		if results == nil {
			results = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DigestRunResponse{
			Days:    days,
			Digest:  text,
			Results: results,
		})
	}
}
