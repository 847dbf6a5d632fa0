package get_availability_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/peertutor/TutorBookingService/internal/api/handlers"
	"github.com/peertutor/TutorBookingService/internal/service/availability"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/availability
// Публичный маршрут: шаблон виден всем, пустой шаблон - валидный ответ
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	result, err := h.service.GetTemplate(r.Context(), tutorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/availability - Invalid input: tutor_id=%d", tutorID)
			handlers.RespondBadRequest(w, msgInvalidTutorID)

		default:
			h.logger.Error("GET /tutors/{id}/availability - Failed to get template: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/{id}/availability - Template retrieved successfully: tutor_id=%d", tutorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
