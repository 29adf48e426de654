package period

import (
	"fmt"
	"time"
)

// Granularity is the period unit used to bucket records.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// Parse converts a query-string value into a Granularity.
func Parse(s string) (Granularity, error) {
	switch Granularity(s) {
	case Day, Week, Month, Year:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("invalid granularity: %q (must be day, week, month, or year)", s)
}

// Range is an inclusive period boundary pair aligned to the natural
// boundary of a granularity. End is the final instant of the period at
// millisecond precision (23:59:59.999), matching the mobile client's
// convention. Weeks run Sunday through Saturday.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive day count of the range (end-start+1).
// Computed on UTC-normalized calendar dates so DST transitions in the
// range's location cannot skew the division.
func (r Range) Days() int {
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Calc computes the period range containing ref for the given granularity.
func Calc(g Granularity, ref time.Time) Range {
	var start, nextStart time.Time
	switch g {
	case Day:
		start = startOfDay(ref)
		nextStart = start.AddDate(0, 0, 1)
	case Week:
		// Sunday on or before ref.
		start = startOfDay(ref).AddDate(0, 0, -int(ref.Weekday()))
		nextStart = start.AddDate(0, 0, 7)
	case Month:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		nextStart = start.AddDate(0, 1, 0)
	case Year:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		nextStart = start.AddDate(1, 0, 0)
	default:
		start = startOfDay(ref)
		nextStart = start.AddDate(0, 0, 1)
	}
	return Range{Start: start, End: nextStart.Add(-time.Millisecond)}
}

// StepNext moves d forward by exactly one unit of g without re-aligning to
// a period boundary. Month and year steps clamp the day-of-month to the
// last day of the target month (Jan 31 -> Feb 29 in a leap year) instead of
// relying on AddDate's rollover normalization.
func StepNext(g Granularity, d time.Time) time.Time {
	return step(g, d, 1)
}

// StepPrevious moves d backward by exactly one unit of g. Same clamping
// policy as StepNext.
func StepPrevious(g Granularity, d time.Time) time.Time {
	return step(g, d, -1)
}

func step(g Granularity, d time.Time, dir int) time.Time {
	switch g {
	case Day:
		return d.AddDate(0, 0, dir)
	case Week:
		return d.AddDate(0, 0, 7*dir)
	case Month:
		return addMonthsClamped(d, dir)
	case Year:
		return addMonthsClamped(d, 12*dir)
	}
	return d.AddDate(0, 0, dir)
}

// addMonthsClamped adds months to d, clamping the day-of-month to the
// target month's length when the source day does not exist there.
func addMonthsClamped(d time.Time, months int) time.Time {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location()).AddDate(0, months, 0)
	day := d.Day()
	if last := DaysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatLabel renders the display label for the period containing d.
func FormatLabel(g Granularity, d time.Time) string {
	switch g {
	case Day:
		return d.Format("Jan 2, 2006")
	case Week:
		r := Calc(Week, d)
		return fmt.Sprintf("%s ~ %s, %d", r.Start.Format("Jan 2"), r.End.Format("Jan 2"), r.Start.Year())
	case Month:
		return d.Format("January 2006")
	case Year:
		return d.Format("2006")
	}
	return d.Format("Jan 2, 2006")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
