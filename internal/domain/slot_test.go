package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"partial overlap", 540, 600, 570, 630, true},
		{"contained", 540, 660, 570, 600, true},
		{"disjoint", 540, 600, 660, 720, false},
		{"touching end to start", 540, 600, 600, 660, false},
		{"touching start to end", 600, 660, 540, 600, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBookingSlot_ContainsRange(t *testing.T) {
	slot := &BookingSlot{
		TutorID:   42,
		Day:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Start:     ts(t, "09:00"),
		End:       ts(t, "12:00"),
		Available: true,
	}

	assert.True(t, slot.ContainsRange(ts(t, "09:00"), 180))
	assert.True(t, slot.ContainsRange(ts(t, "10:00"), 60))
	assert.True(t, slot.ContainsRange(ts(t, "11:00"), 60)) // конец ровно на границе

	assert.False(t, slot.ContainsRange(ts(t, "08:30"), 60))  // начало раньше слота
	assert.False(t, slot.ContainsRange(ts(t, "11:30"), 60))  // выходит за конец
	assert.False(t, slot.ContainsRange(ts(t, "12:00"), 15))  // старт на закрытии
	assert.False(t, slot.ContainsRange(types.TimeString("junk"), 60))
}

func TestWeeklyTemplate_Validate(t *testing.T) {
	t.Run("valid ordered ranges", func(t *testing.T) {
		template := &WeeklyTemplate{}
		template.SetRanges(Monday, []AvailabilityRange{
			{Start: ts(t, "09:00"), End: ts(t, "12:00")},
			{Start: ts(t, "14:00"), End: ts(t, "18:00")},
		})
		assert.NoError(t, template.Validate())
	})

	t.Run("adjacent ranges are allowed", func(t *testing.T) {
		template := &WeeklyTemplate{}
		template.SetRanges(Tuesday, []AvailabilityRange{
			{Start: ts(t, "09:00"), End: ts(t, "12:00")},
			{Start: ts(t, "12:00"), End: ts(t, "15:00")},
		})
		assert.NoError(t, template.Validate())
	})

	t.Run("overlapping ranges rejected", func(t *testing.T) {
		template := &WeeklyTemplate{}
		template.SetRanges(Monday, []AvailabilityRange{
			{Start: ts(t, "09:00"), End: ts(t, "12:00")},
			{Start: ts(t, "11:00"), End: ts(t, "14:00")},
		})
		assert.Error(t, template.Validate())
	})

	t.Run("out of order ranges rejected", func(t *testing.T) {
		template := &WeeklyTemplate{}
		template.SetRanges(Monday, []AvailabilityRange{
			{Start: ts(t, "14:00"), End: ts(t, "18:00")},
			{Start: ts(t, "09:00"), End: ts(t, "12:00")},
		})
		assert.Error(t, template.Validate())
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		template := &WeeklyTemplate{}
		template.SetRanges(Friday, []AvailabilityRange{
			{Start: ts(t, "12:00"), End: ts(t, "09:00")},
		})
		assert.Error(t, template.Validate())
	})
}

func TestWeeklyTemplate_IsEmpty(t *testing.T) {
	var nilTemplate *WeeklyTemplate
	assert.True(t, nilTemplate.IsEmpty())
	assert.True(t, (&WeeklyTemplate{}).IsEmpty())

	template := &WeeklyTemplate{}
	template.SetRanges(Sunday, []AvailabilityRange{
		{Start: ts(t, "10:00"), End: ts(t, "11:00")},
	})
	assert.False(t, template.IsEmpty())
}

func TestSession_IsBlocking(t *testing.T) {
	blocking := []SessionStatus{StatusPending, StatusConfirmed}
	nonBlocking := []SessionStatus{StatusCompleted, StatusCancelledByStudent, StatusCancelledByTutor, StatusNoShow}

	for _, status := range blocking {
		s := &Session{Status: status}
		assert.True(t, s.IsBlocking(), "status %s must block the calendar", status)
	}
	for _, status := range nonBlocking {
		s := &Session{Status: status}
		assert.False(t, s.IsBlocking(), "status %s must not block the calendar", status)
	}
}

func TestDayOfWeekFromTime(t *testing.T) {
	// Понедельник 2026-09-07 и далее по дням
	base := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for i, want := range AllDays {
		got := DayOfWeekFromTime(base.AddDate(0, 0, i).Weekday())
		assert.Equal(t, want, got)
	}
}
