// Package daterange resolves symbolic range kinds into concrete
// calendar intervals with display labels.
package daterange

import (
	"fmt"
	"time"
)

type Kind int

const (
	Today Kind = iota
	ThisWeek
	ThisMonth
	LastMonth
	ThisYear
	Custom
)

var kindNames = []string{"Today", "This Week", "This Month", "Last Month", "This Year", "Custom"}

func (k Kind) String() string {
	if k < Today || k > Custom {
		return "Unknown"
	}
	return kindNames[k]
}

// Range is a resolved interval. Start is midnight of the first day and
// End is 23:59:59.999 of the last day, both inclusive. A fresh value is
// constructed on every resolve and never mutated in place.
type Range struct {
	Kind  Kind
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve returns the concrete range for kind relative to now. Weeks
// start on Sunday. Custom resolves as ThisMonth here; use CustomRange
// when explicit bounds are available.
func Resolve(kind Kind, now time.Time) Range {
	switch kind {
	case Today:
		return Range{
			Kind:  Today,
			Start: startOfDay(now),
			End:   endOfDay(now),
			Label: now.Format("Jan 2, 2006"),
		}
	case ThisWeek:
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		weekEnd := now.AddDate(0, 0, 6-int(now.Weekday()))
		return Range{
			Kind:  ThisWeek,
			Start: startOfDay(weekStart),
			End:   endOfDay(weekEnd),
			Label: fmt.Sprintf("%s – %s", weekStart.Format("Jan 2"), weekEnd.Format("Jan 2, 2006")),
		}
	case LastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		last := first.AddDate(0, 1, -1)
		return Range{
			Kind:  LastMonth,
			Start: first,
			End:   endOfDay(last),
			Label: first.Format("January 2006"),
		}
	case ThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return Range{
			Kind:  ThisYear,
			Start: first,
			End:   endOfDay(last),
			Label: fmt.Sprintf("%d", now.Year()),
		}
	default: // ThisMonth, and Custom without bounds
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return Range{
			Kind:  ThisMonth,
			Start: first,
			End:   endOfDay(last),
			Label: first.Format("January 2006"),
		}
	}
}

// CustomRange builds a range from explicit bounds. End is normalized to
// the end of its day. Zero bounds silently fall back to ThisMonth; a
// start after end is a caller error and is not re-validated here.
func CustomRange(now, start, end time.Time) Range {
	if start.IsZero() || end.IsZero() {
		return Resolve(ThisMonth, now)
	}
	return Range{
		Kind:  Custom,
		Start: startOfDay(start),
		End:   endOfDay(end),
		Label: fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
