package create_booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peertutor/TutorBookingService/internal/api/handlers"
	"github.com/peertutor/TutorBookingService/internal/api/middleware"
	createBooking "github.com/peertutor/TutorBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidDateTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgUnauthorized     = "требуется аутентификация"
	msgTutorNotFound    = "репетитор не найден"
	msgTutorInactive    = "профиль репетитора деактивирован"
	msgDateInPast       = "дата занятия уже прошла"
	msgTooLateToBook    = "до начала занятия осталось слишком мало времени"
	msgNoMatchingSlot   = "в это время у репетитора нет свободных слотов"
	msgStartsBeforeSlot = "занятие начинается раньше открытия слота"
	msgBeyondSlotEnd    = "занятие выходит за границу доступного времени"
	msgSlotUnavailable  = "это время уже занято"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// ID студента берется из контекста аутентификации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var body CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := body.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTutorNotFound):
			h.logger.Warn("POST /bookings - Tutor not found: tutor_id=%d", body.TutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, createBooking.ErrTutorInactive):
			h.logger.Warn("POST /bookings - Tutor inactive: tutor_id=%d", body.TutorID)
			handlers.RespondNotFound(w, msgTutorInactive)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: tutor_id=%d, date=%s", body.TutorID, body.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: tutor_id=%d, date=%s %s",
				body.TutorID, body.Date, body.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrNoMatchingSlot):
			h.logger.Warn("POST /bookings - No matching slot: tutor_id=%d, date=%s %s",
				body.TutorID, body.Date, body.StartTime)
			handlers.RespondConflict(w, msgNoMatchingSlot)

		case errors.Is(err, createBooking.ErrStartsBeforeSlotOpens):
			h.logger.Warn("POST /bookings - Starts before slot opens: tutor_id=%d, date=%s %s",
				body.TutorID, body.Date, body.StartTime)
			handlers.RespondConflict(w, msgStartsBeforeSlot)

		case errors.Is(err, createBooking.ErrBeyondSlotEnd):
			h.logger.Warn("POST /bookings - Beyond slot end: tutor_id=%d, date=%s %s",
				body.TutorID, body.Date, body.StartTime)
			handlers.RespondConflict(w, msgBeyondSlotEnd)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: tutor_id=%d, date=%s %s",
				body.TutorID, body.Date, body.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%d, tutor_id=%d, error=%v",
				studentID, body.TutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: session_id=%d, student_id=%d, tutor_id=%d",
		result.Session.ID, studentID, body.TutorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
