package booking

import (
	"bytes"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// StayInterval is one guest's booked date range for a flat. CheckOut is
// the day the flat becomes free for cleaning and the next arrival: the
// upstream OTA feeds encode the checkout day directly in DTEND, so the
// end boundary is taken as-is and never decremented. Invariant:
// CheckOut is strictly after CheckIn.
type StayInterval struct {
	CheckIn  Date `json:"check_in"`
	CheckOut Date `json:"check_out"`
}

// ParseBookings extracts stay intervals from a raw iCal document.
//
// Boundary values come in two encodings: bare dates (VALUE=DATE) and
// date-times. Bare dates are read literally; date-times are converted
// to loc and truncated to the calendar date. Events missing either
// boundary, or whose computed interval is zero or negative length, are
// skipped. A document that fails to parse at all yields an empty slice:
// upstream feeds are unreliable and bad data must degrade to "no
// bookings", never to a caller-visible error.
func ParseBookings(raw []byte, loc *time.Location) []StayInterval {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	var stays []StayInterval
	for _, ve := range cal.Events() {
		checkIn, ok := civilBoundary(ve.GetProperty(ical.ComponentPropertyDtStart), loc)
		if !ok {
			continue
		}
		checkOut, ok := civilBoundary(ve.GetProperty(ical.ComponentPropertyDtEnd), loc)
		if !ok {
			continue
		}
		if !checkIn.Before(checkOut) {
			continue
		}
		stays = append(stays, StayInterval{CheckIn: checkIn, CheckOut: checkOut})
	}

	sort.Slice(stays, func(i, j int) bool {
		if stays[i].CheckIn != stays[j].CheckIn {
			return stays[i].CheckIn.Before(stays[j].CheckIn)
		}
		return stays[i].CheckOut.Before(stays[j].CheckOut)
	})

	return stays
}

// civilBoundary normalizes a DTSTART/DTEND property to a calendar date.
// The second return value is false when the property is missing or its
// value does not parse.
func civilBoundary(p *ical.IANAProperty, loc *time.Location) (Date, bool) {
	if p == nil {
		return Date{}, false
	}
	val := strings.TrimSpace(p.Value)
	if val == "" {
		return Date{}, false
	}

	// VALUE=DATE, or a value without a time part, is an all-day
	// boundary: the date is literal and must not be zone-shifted.
	allDay := !strings.Contains(val, "T")
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}
	if allDay {
		t, err := time.ParseInLocation("20060102", val, loc)
		if err != nil {
			return Date{}, false
		}
		return DateOf(t, loc), true
	}

	// Timed boundary: resolve the instant in its own zone, then take
	// the local date in the configured zone.
	var t time.Time
	var err error
	if strings.HasSuffix(val, "Z") {
		t, err = time.Parse("20060102T150405Z", val)
	} else {
		tz := loc
		if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
			if l, lerr := time.LoadLocation(tzs[0]); lerr == nil {
				tz = l
			}
		}
		t, err = time.ParseInLocation("20060102T150405", val, tz)
	}
	if err != nil {
		return Date{}, false
	}
	return DateOf(t, loc), true
}
