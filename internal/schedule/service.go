// Package schedule orchestrates the per-request pipeline: fetch every
// flat's calendar, parse it into stay intervals, and build the day
// window. Nothing is cached between requests; booking calendars change
// upstream and freshness is bounded by request freshness.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
	"github.com/cleanerboard/backend/internal/storage/models"
)

// CalendarFetcher downloads a raw calendar document.
type CalendarFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchRecorder persists per-flat fetch outcomes.
type FetchRecorder interface {
	Record(ctx context.Context, entry *models.FetchLogEntry) error
}

// FetchErrorSink is notified when a flat's feed fails. The schedule
// still renders without that flat's bookings.
type FetchErrorSink interface {
	BroadcastFlatFetchError(flatID, flatName string, err error)
}

// Service builds schedules for the configured flats.
type Service struct {
	flats       []config.FlatConfig
	loc         *time.Location
	fetcher     CalendarFetcher
	recorder    FetchRecorder
	errorSink   FetchErrorSink
	defaultDays int
	maxDays     int
}

// NewService creates the schedule service. recorder and errorSink may
// be nil.
func NewService(cfg *config.Config, fetcher CalendarFetcher, recorder FetchRecorder, errorSink FetchErrorSink) *Service {
	return &Service{
		flats:       cfg.Flats,
		loc:         cfg.Location(),
		fetcher:     fetcher,
		recorder:    recorder,
		errorSink:   errorSink,
		defaultDays: cfg.DefaultDays,
		maxDays:     cfg.MaxDays,
	}
}

// Flats returns the configured flats.
func (s *Service) Flats() []config.FlatConfig {
	return s.flats
}

// Location returns the configured timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// DefaultDays returns the default window size.
func (s *Service) DefaultDays() int {
	return s.defaultDays
}

// MaxDays returns the window size cap.
func (s *Service) MaxDays() int {
	return s.maxDays
}

// ClampDays maps a requested window size into [1, MaxDays], with
// non-positive values falling back to the default.
func (s *Service) ClampDays(days int) int {
	if days <= 0 {
		return s.defaultDays
	}
	if days > s.maxDays {
		return s.maxDays
	}
	return days
}

// Build fetches all flat calendars concurrently and derives the
// schedule for [start, start+days). A failed fetch or an unparsable
// feed degrades to zero intervals for that flat; Build itself never
// fails.
func (s *Service) Build(ctx context.Context, start booking.Date, days int) booking.Schedule {
	days = s.ClampDays(days)

	byFlat := make(map[string][]booking.StayInterval, len(s.flats))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, flat := range s.flats {
		wg.Add(1)
		go func(flat config.FlatConfig) {
			defer wg.Done()
			stays := s.loadFlat(ctx, flat)
			mu.Lock()
			byFlat[flat.ID] = stays
			mu.Unlock()
		}(flat)
	}
	wg.Wait()

	return booking.BuildSchedule(byFlat, start, days)
}

// BuildFromToday derives the schedule starting today in the configured
// zone.
func (s *Service) BuildFromToday(ctx context.Context, days int) (booking.Schedule, booking.Date) {
	start := booking.Today(s.loc)
	return s.Build(ctx, start, days), start
}

// loadFlat fetches and parses one flat's feed, recording the outcome.
func (s *Service) loadFlat(ctx context.Context, flat config.FlatConfig) []booking.StayInterval {
	if flat.CalendarURL == "" {
		s.record(ctx, flat.ID, models.FetchStatusEmpty, nil, 0)
		return nil
	}

	raw, err := s.fetcher.Fetch(ctx, flat.CalendarURL)
	if err != nil {
		log.Printf("Calendar fetch failed for %s (%s): %v", flat.ID, flat.Name, err)
		s.record(ctx, flat.ID, models.FetchStatusError, err, 0)
		if s.errorSink != nil {
			s.errorSink.BroadcastFlatFetchError(flat.ID, flat.Name, err)
		}
		return nil
	}

	stays := booking.ParseBookings(raw, s.loc)
	status := models.FetchStatusOK
	if len(stays) == 0 {
		status = models.FetchStatusEmpty
	}
	s.record(ctx, flat.ID, status, nil, len(stays))

	return stays
}

func (s *Service) record(ctx context.Context, flatID, status string, fetchErr error, events int) {
	if s.recorder == nil {
		return
	}
	entry := &models.FetchLogEntry{
		FlatID:      flatID,
		Status:      status,
		EventsFound: events,
	}
	if fetchErr != nil {
		msg := fetchErr.Error()
		entry.Error = &msg
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		log.Printf("Failed to record fetch outcome for %s: %v", flatID, err)
	}
}
