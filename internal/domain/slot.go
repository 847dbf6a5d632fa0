package domain

import (
	"time"

	"github.com/peertutor/TutorBookingService/pkg/types"
)

// BookingSlot is one bookable (or blocked) slot in a tutor's calendar:
// a template range projected onto a concrete date. Slots are constructed
// fresh on every generation call and never persisted.
type BookingSlot struct {
	TutorID   int64
	Day       time.Time // start of the calendar day in the tutor's location
	Start     types.TimeString
	End       types.TimeString
	Available bool
}

// IntervalsOverlap reports whether two half-open minute intervals
// [aStart, aEnd) and [bStart, bEnd) intersect. Touching boundaries do not
// overlap: a session ending at 14:00 does not conflict with a slot
// starting at 14:00.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// ContainsRange reports whether [start, start+durationMinutes) lies fully
// inside the slot's [Start, End) interval. Malformed times yield false.
func (s *BookingSlot) ContainsRange(start types.TimeString, durationMinutes int) bool {
	slotStart, err := s.Start.Minutes()
	if err != nil {
		return false
	}
	slotEnd, err := s.End.Minutes()
	if err != nil {
		return false
	}
	reqStart, err := start.Minutes()
	if err != nil {
		return false
	}
	reqEnd := reqStart + durationMinutes

	return reqStart >= slotStart && reqStart < slotEnd && reqEnd <= slotEnd
}
