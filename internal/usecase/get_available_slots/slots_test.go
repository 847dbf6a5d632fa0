package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

func weekdayTemplate(t *testing.T) *domain.WeeklyTemplate {
	t.Helper()
	template := &domain.WeeklyTemplate{}
	morning := domain.AvailabilityRange{Start: ts(t, "09:00"), End: ts(t, "12:00")}
	evening := domain.AvailabilityRange{Start: ts(t, "14:00"), End: ts(t, "18:00")}
	for _, day := range []domain.DayOfWeek{
		domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday,
	} {
		template.SetRanges(day, []domain.AvailabilityRange{morning, evening})
	}
	return template
}

func session(start, end time.Time, status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:      1,
		TutorID: 42,
		StartAt: start,
		EndAt:   end,
		Status:  status,
	}
}

// Понедельник 2026-09-07
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestGenerateAvailableSlots_EmptyCalendarProducesOneSlotPerRange(t *testing.T) {
	template := weekdayTemplate(t)

	slots, err := generateAvailableSlots(42, template, nil, monday, 7, time.UTC)
	require.NoError(t, err)

	// 5 рабочих дней по 2 диапазона
	require.Len(t, slots, 10)
	for _, slot := range slots {
		assert.True(t, slot.Available, "slot %s %s must be available on empty calendar", slot.Day.Format(domain.DateFormat), slot.Start)
		assert.Equal(t, int64(42), slot.TutorID)
	}

	// Хронологический порядок
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Day.Equal(cur.Day) {
			assert.True(t, prev.Start.IsBefore(cur.Start))
		} else {
			assert.True(t, prev.Day.Before(cur.Day))
		}
	}
}

func TestGenerateAvailableSlots_BookingNeverAddsAvailability(t *testing.T) {
	template := weekdayTemplate(t)

	baseline, err := generateAvailableSlots(42, template, nil, monday, 7, time.UTC)
	require.NoError(t, err)

	booked := []*domain.Session{
		session(monday.Add(9*time.Hour), monday.Add(10*time.Hour), domain.StatusConfirmed),
	}
	withBooking, err := generateAvailableSlots(42, template, booked, monday, 7, time.UTC)
	require.NoError(t, err)

	require.Len(t, withBooking, len(baseline))
	for i := range baseline {
		if !baseline[i].Available {
			assert.False(t, withBooking[i].Available,
				"adding a booking must never turn an unavailable slot available")
		}
	}
}

func TestGenerateAvailableSlots_BoundaryTouchIsNotConflict(t *testing.T) {
	template := &domain.WeeklyTemplate{}
	template.SetRanges(domain.Monday, []domain.AvailabilityRange{
		{Start: ts(t, "09:00"), End: ts(t, "10:00")},
		{Start: ts(t, "10:00"), End: ts(t, "11:00")},
		{Start: ts(t, "11:00"), End: ts(t, "12:00")},
	})

	// Сессия ровно 10:00-11:00: соседние слоты, касающиеся её границ,
	// конфликтом не считаются
	booked := []*domain.Session{
		session(monday.Add(10*time.Hour), monday.Add(11*time.Hour), domain.StatusPending),
	}

	slots, err := generateAvailableSlots(42, template, booked, monday, 1, time.UTC)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available, "09:00-10:00 touches the session end-to-start only")
	assert.False(t, slots[1].Available, "10:00-11:00 is fully occupied")
	assert.True(t, slots[2].Available, "11:00-12:00 touches the session start-to-end only")
}

func TestGenerateAvailableSlots_PartialOverlapBlocksWholeSlot(t *testing.T) {
	template := &domain.WeeklyTemplate{}
	template.SetRanges(domain.Monday, []domain.AvailabilityRange{
		{Start: ts(t, "09:00"), End: ts(t, "12:00")},
	})

	// Сессия занимает только час из трёхчасового диапазона
	booked := []*domain.Session{
		session(monday.Add(10*time.Hour), monday.Add(11*time.Hour), domain.StatusConfirmed),
	}

	slots, err := generateAvailableSlots(42, template, booked, monday, 1, time.UTC)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// Слот не разбивается на свободные под-диапазоны
	assert.False(t, slots[0].Available)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "12:00", slots[0].End.String())
}

func TestGenerateAvailableSlots_CancelledSessionsDoNotBlock(t *testing.T) {
	template := weekdayTemplate(t)

	booked := []*domain.Session{
		session(monday.Add(9*time.Hour), monday.Add(10*time.Hour), domain.StatusCancelledByStudent),
		session(monday.Add(14*time.Hour), monday.Add(15*time.Hour), domain.StatusCancelledByTutor),
		session(monday.Add(15*time.Hour), monday.Add(16*time.Hour), domain.StatusNoShow),
		session(monday.Add(16*time.Hour), monday.Add(17*time.Hour), domain.StatusCompleted),
	}

	slots, err := generateAvailableSlots(42, template, booked, monday, 1, time.UTC)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.True(t, slot.Available, "non-blocking sessions must not affect slot %s", slot.Start)
	}
}

func TestGenerateAvailableSlots_Deterministic(t *testing.T) {
	template := weekdayTemplate(t)
	booked := []*domain.Session{
		session(monday.Add(9*time.Hour), monday.Add(11*time.Hour), domain.StatusConfirmed),
	}

	first, err := generateAvailableSlots(42, template, booked, monday, 14, time.UTC)
	require.NoError(t, err)
	second, err := generateAvailableSlots(42, template, booked, monday, 14, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateAvailableSlots_SessionSpanningMidnightClampedPerDay(t *testing.T) {
	template := &domain.WeeklyTemplate{}
	template.SetRanges(domain.Monday, []domain.AvailabilityRange{
		{Start: ts(t, "22:00"), End: ts(t, "24:00")},
	})
	template.SetRanges(domain.Tuesday, []domain.AvailabilityRange{
		{Start: ts(t, "00:00"), End: ts(t, "02:00")},
		{Start: ts(t, "09:00"), End: ts(t, "12:00")},
	})

	// Сессия 23:00 понедельника - 01:00 вторника
	booked := []*domain.Session{
		session(monday.Add(23*time.Hour), monday.Add(25*time.Hour), domain.StatusConfirmed),
	}

	slots, err := generateAvailableSlots(42, template, booked, monday, 2, time.UTC)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.False(t, slots[0].Available, "monday 22:00-24:00 overlaps the session head")
	assert.False(t, slots[1].Available, "tuesday 00:00-02:00 overlaps the session tail")
	assert.True(t, slots[2].Available, "tuesday morning is untouched")
}

func TestGenerateAvailableSlots_EmptyTemplate(t *testing.T) {
	slots, err := generateAvailableSlots(42, &domain.WeeklyTemplate{}, nil, monday, 28, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestApplyNoticePolicy_TodayPastSlotsBecomeUnavailable(t *testing.T) {
	template := weekdayTemplate(t)
	slots, err := generateAvailableSlots(42, template, nil, monday, 2, time.UTC)
	require.NoError(t, err)

	// Сейчас понедельник 13:00, минимальный срок бронирования 60 минут
	now := monday.Add(13 * time.Hour)
	slots = applyNoticePolicy(slots, now, 60, time.UTC)

	require.Len(t, slots, 4)
	assert.False(t, slots[0].Available, "monday morning is already over")
	assert.True(t, slots[1].Available, "monday evening ends after now+notice")
	assert.True(t, slots[2].Available, "tuesday is unaffected")
	assert.True(t, slots[3].Available, "tuesday is unaffected")
}
