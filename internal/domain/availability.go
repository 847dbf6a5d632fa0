package domain

import (
	"fmt"
	"time"

	"github.com/peertutor/TutorBookingService/pkg/types"
)

// DayOfWeek is a closed enumeration of the seven canonical day names.
// Template lookups go through exhaustive switches rather than free-form
// string map indexing, so a misspelled day cannot silently produce an
// empty schedule.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// AllDays lists the days in calendar order starting from Monday
var AllDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek validates a lowercase day name
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	day := DayOfWeek(s)
	switch day {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return day, nil
	default:
		return "", fmt.Errorf("unknown day of week: %q", s)
	}
}

// DayOfWeekFromTime maps time.Weekday to the canonical day name
func DayOfWeekFromTime(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// String returns the lowercase day name
func (d DayOfWeek) String() string {
	return string(d)
}

// AvailabilityRange is a single bookable time range within a day, half-open [Start, End)
type AvailabilityRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks the range has well-formed times and positive length
func (r AvailabilityRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("range start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("range end: %w", err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("range start %s must be before end %s", r.Start, r.End)
	}
	return nil
}

// WeeklyTemplate is a tutor's recurring weekly availability: an ordered
// list of ranges per day. A nil or all-empty template means the tutor has
// not configured availability and produces zero slots everywhere.
type WeeklyTemplate struct {
	Monday    []AvailabilityRange
	Tuesday   []AvailabilityRange
	Wednesday []AvailabilityRange
	Thursday  []AvailabilityRange
	Friday    []AvailabilityRange
	Saturday  []AvailabilityRange
	Sunday    []AvailabilityRange
}

// RangesFor returns the day's ranges; a day with no ranges yields nil
func (t *WeeklyTemplate) RangesFor(day DayOfWeek) []AvailabilityRange {
	if t == nil {
		return nil
	}
	switch day {
	case Monday:
		return t.Monday
	case Tuesday:
		return t.Tuesday
	case Wednesday:
		return t.Wednesday
	case Thursday:
		return t.Thursday
	case Friday:
		return t.Friday
	case Saturday:
		return t.Saturday
	default:
		return t.Sunday
	}
}

// SetRanges replaces the day's ranges
func (t *WeeklyTemplate) SetRanges(day DayOfWeek, ranges []AvailabilityRange) {
	switch day {
	case Monday:
		t.Monday = ranges
	case Tuesday:
		t.Tuesday = ranges
	case Wednesday:
		t.Wednesday = ranges
	case Thursday:
		t.Thursday = ranges
	case Friday:
		t.Friday = ranges
	case Saturday:
		t.Saturday = ranges
	default:
		t.Sunday = ranges
	}
}

// IsEmpty returns true if no day has any range configured
func (t *WeeklyTemplate) IsEmpty() bool {
	if t == nil {
		return true
	}
	for _, day := range AllDays {
		if len(t.RangesFor(day)) > 0 {
			return false
		}
	}
	return true
}

// Validate checks every day's ranges are well-formed, chronologically
// ordered and non-overlapping within the day
func (t *WeeklyTemplate) Validate() error {
	for _, day := range AllDays {
		ranges := t.RangesFor(day)
		for i, r := range ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			if i == 0 {
				continue
			}
			prev := ranges[i-1]
			if r.Start.IsBefore(prev.End) {
				return fmt.Errorf("%s: range %s-%s overlaps or is out of order with %s-%s",
					day, r.Start, r.End, prev.Start, prev.End)
			}
		}
	}
	return nil
}
