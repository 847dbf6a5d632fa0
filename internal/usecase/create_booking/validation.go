package create_booking

import (
	"fmt"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

const maxSubjectNameLength = 100

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: student ID must be positive", ErrInvalidInput)
	}

	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutor ID must be positive", ErrInvalidInput)
	}

	if req.StudentID == req.TutorID {
		return fmt.Errorf("%w: a tutor cannot book a session with themselves", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes {
		return fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidInput, domain.MinSessionDurationMinutes)
	}

	if req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxSessionDurationMinutes)
	}

	if req.SubjectName == "" {
		return fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}

	if len(req.SubjectName) > maxSubjectNameLength {
		return fmt.Errorf("%w: subject name must not exceed %d characters", ErrInvalidInput, maxSubjectNameLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSelection проверяет, что запрошенный интервал [start, start+duration)
// целиком помещается в слот и что слот свободен.
//
// Следствие политики "слот блокируется целиком": если интервал проходит
// проверку, любой его под-интервал в том же слоте тоже проходит
func validateSelection(slot *domain.BookingSlot, start types.TimeString, durationMinutes int) error {
	slotStart, err := slot.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: slot start %q", ErrMalformedTemplate, slot.Start)
	}
	slotEnd, err := slot.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: slot end %q", ErrMalformedTemplate, slot.End)
	}
	reqStart, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time %q", ErrInvalidInput, start)
	}
	reqEnd := reqStart + durationMinutes

	if reqStart < slotStart {
		return fmt.Errorf("%w: %s is before slot opening %s", ErrStartsBeforeSlotOpens, start, slot.Start)
	}

	if reqStart >= slotEnd || reqEnd > slotEnd {
		return fmt.Errorf("%w: selection ends at %02d:%02d, slot closes at %s",
			ErrBeyondSlotEnd, reqEnd/60, reqEnd%60, slot.End)
	}

	if !slot.Available {
		return ErrSlotUnavailable
	}

	return nil
}

// findSlotForSelection ищет слот дня, которому принадлежит запрошенный интервал.
//
// Если старт не попадает ни в один слот, но интервал пересекает более поздний
// слот того же дня, возвращается этот слот - validateSelection даст точную
// причину отказа ("начало раньше открытия слота"). Полное непопадание - nil
func findSlotForSelection(slots []domain.BookingSlot, start types.TimeString, durationMinutes int) *domain.BookingSlot {
	reqStart, err := start.Minutes()
	if err != nil {
		return nil
	}
	reqEnd := reqStart + durationMinutes

	for i := range slots {
		slotStart, err := slots[i].Start.Minutes()
		if err != nil {
			continue
		}
		slotEnd, err := slots[i].End.Minutes()
		if err != nil {
			continue
		}

		if reqStart >= slotStart && reqStart < slotEnd {
			return &slots[i]
		}

		if reqStart < slotStart && reqEnd > slotStart {
			return &slots[i]
		}
	}

	return nil
}
