// Package present renders a derived schedule for its consumers: plain
// text for WhatsApp, rows for the spreadsheet export, HTML for the
// cleaner's web view, and PDF for the email attachment. Every renderer
// maps booking.Status to its own display strings; none re-derives the
// label from the raw flags.
package present

import (
	"sort"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

// Entry is one flat's labeled activity on one day, resolved to display
// metadata, ready for any renderer.
type Entry struct {
	FlatID   string
	Name     string
	Nickname string
	Color    string
	Status   booking.Status
}

// DayEntries resolves a day's flags into display entries, ordered by
// flat display name.
func DayEntries(s booking.Schedule, d booking.Date, flats []config.FlatConfig) []Entry {
	byID := make(map[string]config.FlatConfig, len(flats))
	for _, f := range flats {
		byID[f.ID] = f
	}

	entries := make([]Entry, 0, len(s[d]))
	for flatID, flags := range s[d] {
		e := Entry{
			FlatID: flatID,
			Name:   flatID,
			Status: booking.Label(flags),
		}
		if f, ok := byID[flatID]; ok {
			e.Name = f.Name
			e.Nickname = f.Nickname
			e.Color = f.Color
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].FlatID < entries[j].FlatID
	})
	return entries
}
