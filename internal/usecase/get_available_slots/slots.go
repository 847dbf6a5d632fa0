package get_available_slots

import (
	"fmt"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

const minutesPerDay = 24 * 60

// generateAvailableSlots разворачивает недельный шаблон репетитора на окно
// [windowStart, windowStart+daysAhead) и помечает конфликты с занятыми сессиями.
//
// На каждую пару (день, диапазон шаблона) создаётся ровно один слот с теми же
// границами start/end. Слот недоступен тогда и только тогда, когда его интервал
// [start, end) пересекается хотя бы с одной pending/confirmed сессией в этот
// календарный день. Частичное пересечение блокирует слот целиком - слоты не
// разбиваются на под-диапазоны.
//
// Функция чистая: результат полностью определяется аргументами
func generateAvailableSlots(
	tutorID int64,
	template *domain.WeeklyTemplate,
	sessions []*domain.Session,
	windowStart time.Time,
	daysAhead int,
	loc *time.Location,
) ([]domain.BookingSlot, error) {
	slots := make([]domain.BookingSlot, 0)

	// Репетитор не настроил доступность - пустой результат, не ошибка
	if template.IsEmpty() || daysAhead <= 0 {
		return slots, nil
	}

	// Нормализуем начало окна к началу суток, чтобы частичный первый день
	// не искажал генерацию
	start := startOfDay(windowStart.In(loc))

	for i := 0; i < daysAhead; i++ {
		date := start.AddDate(0, 0, i)
		day := domain.DayOfWeekFromTime(date.Weekday())

		for _, rng := range template.RangesFor(day) {
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
	}

	return slots, nil
}

// hasBlockingConflict проверяет, пересекается ли диапазон [rangeStart, rangeEnd)
// в минутах данного календарного дня хотя бы с одной занимающей календарь сессией.
//
// Сессия, выходящая за границы дня (например, начавшаяся накануне вечером),
// обрезается до рассматриваемого дня перед сравнением, поэтому блокирует
// только те диапазоны, в которые реально попадает
func hasBlockingConflict(date time.Time, rangeStart, rangeEnd int, sessions []*domain.Session, loc *time.Location) bool {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	for _, s := range sessions {
		// Отменённые сессии и no-show никогда не блокируют слоты
		if !s.IsBlocking() {
			continue
		}

		// Сессия не касается этого календарного дня
		if !s.EndAt.After(dayStart) || !s.StartAt.Before(dayEnd) {
			continue
		}

		sessionStart := 0
		if s.StartAt.After(dayStart) {
			sessionStart = minutesOfDay(s.StartAt.In(loc))
		}

		sessionEnd := minutesPerDay
		if s.EndAt.Before(dayEnd) {
			sessionEnd = minutesOfDay(s.EndAt.In(loc))
		}

		if domain.IntervalsOverlap(sessionStart, sessionEnd, rangeStart, rangeEnd) {
			return true
		}
	}

	return false
}

// applyNoticePolicy помечает недоступными сегодняшние слоты, которые целиком
// заканчиваются раньше минимально допустимого времени начала (now + notice).
// Слот, пересекающий эту границу, остаётся доступным - точное время старта
// проверяется при создании бронирования
func applyNoticePolicy(slots []domain.BookingSlot, now time.Time, noticeMinutes int, loc *time.Location) []domain.BookingSlot {
	localNow := now.In(loc)
	today := startOfDay(localNow)
	minAllowed := minutesOfDay(localNow) + noticeMinutes

	for i := range slots {
		if !slots[i].Available {
			continue
		}
		if slots[i].Day.Before(today) {
			slots[i].Available = false
			continue
		}
		if !slots[i].Day.Equal(today) {
			continue
		}
		end, err := slots[i].End.Minutes()
		if err != nil {
			continue
		}
		if end <= minAllowed {
			slots[i].Available = false
		}
	}

	return slots
}

// minutesOfDay возвращает минуты с начала суток для локального времени
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
