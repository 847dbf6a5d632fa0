package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/peertutor/TutorBookingService/internal/api/handlers"
	getAvailableSlots "github.com/peertutor/TutorBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays    = "некорректное количество дней"
	msgTutorNotFound  = "репетитор не найден"
	msgTutorInactive  = "профиль репетитора деактивирован"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/available-slots
// Query params: from (optional, YYYY-MM-DD, по умолчанию сегодня),
// days (optional, по умолчанию серверное значение)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tutorIDStr := vars["tutorId"]
	tutorID, err := strconv.ParseInt(tutorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/available-slots - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			h.logger.Warn("GET /tutors/{id}/available-slots - Invalid days param: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(tutorID, r.URL.Query().Get("from"), days)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTutorNotFound):
			h.logger.Warn("GET /tutors/{id}/available-slots - Tutor not found: tutor_id=%d", tutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, getAvailableSlots.ErrTutorInactive):
			h.logger.Warn("GET /tutors/{id}/available-slots - Tutor inactive: tutor_id=%d", tutorID)
			handlers.RespondNotFound(w, msgTutorInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/available-slots - Invalid input: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /tutors/{id}/available-slots - Failed to get slots: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tutors/{id}/available-slots - Slots retrieved successfully: tutor_id=%d, slots_count=%d",
		tutorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
