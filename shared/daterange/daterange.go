// Package daterange models stays as half-open calendar date intervals [start, end).
package daterange

import (
	"fmt"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

// Range is a half-open interval of calendar days. The end day is not occupied.
type Range struct {
	Start time.Time
	End   time.Time
}

// New truncates both bounds to calendar days and requires end after start.
func New(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}

	if !r.End.After(r.Start) {
		return Range{}, failure.InvalidRange("check-out date must be after check-in date") // nolint:wrapcheck
	}

	return r, nil
}

// Parse reads two YYYY-MM-DD dates in the application timezone.
func Parse(start, end string) (Range, error) {
	s, err := timezone.ParseDate(start)
	if err != nil {
		return Range{}, failure.BadRequestFromString(fmt.Sprintf("invalid check-in date %q", start)) // nolint:wrapcheck
	}

	e, err := timezone.ParseDate(end)
	if err != nil {
		return Range{}, failure.BadRequestFromString(fmt.Sprintf("invalid check-out date %q", end)) // nolint:wrapcheck
	}

	return New(s, e)
}

// Day reduces t to its calendar day, as seen in t's own location, at midnight UTC.
// Dates from the database and from requests then compare by day alone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two stays share at least one night.
// Touching boundaries (one ends the day the other starts) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Nights counts calendar days between start and end.
func (r Range) Nights() int {
	return int(Day(r.End).Sub(Day(r.Start)).Hours() / constant.HoursInADay)
}

// Contains reports whether day is one of the occupied nights.
func (r Range) Contains(day time.Time) bool {
	d := Day(day)

	return !d.Before(r.Start) && d.Before(r.End)
}

func (r Range) Equal(other Range) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(constant.CalendarDate), r.End.Format(constant.CalendarDate))
}
