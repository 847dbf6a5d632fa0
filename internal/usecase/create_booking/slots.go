package create_booking

import (
	"fmt"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

const minutesPerDay = 24 * 60

// generateDaySlots строит слоты одного календарного дня из недельного шаблона
// и помечает занятые. Логика конфликтов та же, что и при выдаче расписания:
// полуоткрытые интервалы, частичное пересечение блокирует слот целиком
func generateDaySlots(
	tutorID int64,
	template *domain.WeeklyTemplate,
	sessions []*domain.Session,
	date time.Time,
	loc *time.Location,
) ([]domain.BookingSlot, error) {
	day := domain.DayOfWeekFromTime(date.Weekday())
	ranges := template.RangesFor(day)
	slots := make([]domain.BookingSlot, 0, len(ranges))

	for _, rng := range ranges {
		rangeStart, err := rng.Start.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedTemplate, day, rng.Start, err)
		}
		rangeEnd, err := rng.End.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedTemplate, day, rng.End, err)
		}

		slots = append(slots, domain.BookingSlot{
			TutorID:   tutorID,
			Day:       date,
			Start:     rng.Start,
			End:       rng.End,
			Available: !hasBlockingConflict(date, rangeStart, rangeEnd, sessions, loc),
		})
	}

	return slots, nil
}

// hasBlockingConflict проверяет пересечение диапазона дня с занимающими
// календарь сессиями, обрезая сессии по границам суток
func hasBlockingConflict(date time.Time, rangeStart, rangeEnd int, sessions []*domain.Session, loc *time.Location) bool {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	for _, s := range sessions {
		if !s.IsBlocking() {
			continue
		}

		if !s.EndAt.After(dayStart) || !s.StartAt.Before(dayEnd) {
			continue
		}

		sessionStart := 0
		if s.StartAt.After(dayStart) {
			local := s.StartAt.In(loc)
			sessionStart = local.Hour()*60 + local.Minute()
		}

		sessionEnd := minutesPerDay
		if s.EndAt.Before(dayEnd) {
			local := s.EndAt.In(loc)
			sessionEnd = local.Hour()*60 + local.Minute()
		}

		if domain.IntervalsOverlap(sessionStart, sessionEnd, rangeStart, rangeEnd) {
			return true
		}
	}

	return false
}
