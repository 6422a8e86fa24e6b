package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/storage"
)

// FlatFetchState summarizes the most recent feed fetch for a flat.
type FlatFetchState struct {
	Status      string    `json:"status"`
	EventsFound int       `json:"events_found"`
	Error       string    `json:"error,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// FlatResponse is one configured flat with its latest fetch outcome.
type FlatResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Nickname    string          `json:"nickname,omitempty"`
	Color       string          `json:"color,omitempty"`
	HasCalendar bool            `json:"has_calendar"`
	LastFetch   *FlatFetchState `json:"last_fetch,omitempty"`
}

// ListFlats returns a handler that lists the configured flats. Feed
// URLs stay server-side; only whether a flat has one is exposed.
func ListFlats(svc *schedule.Service, fetchLog *storage.FetchLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		flats := make([]FlatResponse, 0, len(svc.Flats()))
		for _, flat := range svc.Flats() {
			resp := FlatResponse{
				ID:          flat.ID,
				Name:        flat.Name,
				Nickname:    flat.Nickname,
				Color:       flat.Color,
				HasCalendar: flat.CalendarURL != "",
			}

			entry, err := fetchLog.Latest(ctx, flat.ID)
			if err == nil && entry != nil {
				state := &FlatFetchState{
					Status:      entry.Status,
					EventsFound: entry.EventsFound,
					FetchedAt:   entry.FetchedAt,
				}
				if entry.Error != nil {
					state.Error = *entry.Error
				}
				resp.LastFetch = state
			}

			flats = append(flats, resp)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(flats)
	}
}
