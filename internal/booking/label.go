package booking

import "fmt"

// Flags records whether a flat has a check-in and/or check-out on a
// given day. A flat only appears in a day's schedule entry when at
// least one flag is set.
type Flags struct {
	CheckIn  bool `json:"check_in"`
	CheckOut bool `json:"check_out"`
}

// Status classifies a flat's day. It is the single source of truth for
// every rendering (text, HTML, PDF, sheet rows); presenters map a
// Status to their own display strings rather than re-deriving it from
// the flags.
type Status int

const (
	// StatusNone means neither flag is set. Builder output never
	// contains it; it exists so the zero value is distinguishable.
	StatusNone Status = iota

	// StatusCheckIn: a guest arrives, no departure that day.
	StatusCheckIn

	// StatusCheckOut: a guest departs, the flat needs cleaning.
	StatusCheckOut

	// StatusTurnover: same-day turnover, departure and arrival on the
	// same day. Cleaning is time-boxed between the two.
	StatusTurnover
)

// Label derives the day status from the flags.
func Label(f Flags) Status {
	switch {
	case f.CheckIn && f.CheckOut:
		return StatusTurnover
	case f.CheckOut:
		return StatusCheckOut
	case f.CheckIn:
		return StatusCheckIn
	default:
		return StatusNone
	}
}

// String returns the wire/JSON name of the status.
func (s Status) String() string {
	switch s {
	case StatusCheckIn:
		return "check_in"
	case StatusCheckOut:
		return "check_out"
	case StatusTurnover:
		return "turnover"
	default:
		return "none"
	}
}

// RequiresCleaning reports whether the status implies a cleaning visit.
func (s Status) RequiresCleaning() bool {
	return s == StatusCheckOut || s == StatusTurnover
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the wire
// names MarshalText produces.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "check_in":
		*s = StatusCheckIn
	case "check_out":
		*s = StatusCheckOut
	case "turnover":
		*s = StatusTurnover
	case "none":
		*s = StatusNone
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}
