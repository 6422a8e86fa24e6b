package booking

import "sort"

// Schedule maps each day in a window to the flats that have a check-in
// or check-out that day. Days with no activity are absent, and a flat
// never appears with both flags false.
type Schedule map[Date]map[string]Flags

// BuildSchedule projects stay intervals onto the window
// [start, start+days). Flags use existence checks, so overlapping or
// duplicate intervals for a flat never double-count: a checkout from
// one interval and a check-in from another landing on the same day
// simply set both flags. days <= 0 yields an empty schedule.
func BuildSchedule(byFlat map[string][]StayInterval, start Date, days int) Schedule {
	schedule := make(Schedule)
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		dayMap := make(map[string]Flags)
		for flatID, stays := range byFlat {
			var f Flags
			for _, stay := range stays {
				if stay.CheckIn == d {
					f.CheckIn = true
				}
				if stay.CheckOut == d {
					f.CheckOut = true
				}
			}
			if f.CheckIn || f.CheckOut {
				dayMap[flatID] = f
			}
		}
		if len(dayMap) > 0 {
			schedule[d] = dayMap
		}
	}
	return schedule
}

// Days returns the schedule's days in ascending order. Ordering is a
// presentation concern; this is a convenience so every presenter
// iterates identically.
func (s Schedule) Days() []Date {
	days := make([]Date, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// FlatsOn returns the flat IDs with activity on d, sorted.
func (s Schedule) FlatsOn(d Date) []string {
	flats := make([]string, 0, len(s[d]))
	for id := range s[d] {
		flats = append(flats, id)
	}
	sort.Strings(flats)
	return flats
}

// IsEmpty reports whether the window contains no activity at all.
func (s Schedule) IsEmpty() bool {
	return len(s) == 0
}
