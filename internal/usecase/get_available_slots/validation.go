package get_available_slots

import (
	"fmt"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req Request) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutor ID must be positive", ErrInvalidInput)
	}

	if req.DaysAhead < 0 {
		return fmt.Errorf("%w: days ahead must not be negative", ErrInvalidInput)
	}

	if req.DaysAhead > domain.MaxDaysAhead {
		return fmt.Errorf("%w: days ahead must not exceed %d", ErrInvalidInput, domain.MaxDaysAhead)
	}

	return nil
}
