package update_availability_template

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/peertutor/TutorBookingService/internal/api/handlers"
	"github.com/peertutor/TutorBookingService/internal/api/middleware"
	"github.com/peertutor/TutorBookingService/internal/service/availability"
	"github.com/peertutor/TutorBookingService/internal/service/availability/models"
)

const (
	msgInvalidTutorID  = "некорректный ID репетитора"
	msgInvalidBody     = "некорректное тело запроса"
	msgUnauthorized    = "требуется аутентификация"
	msgAccessDenied    = "доступ запрещен"
	msgInvalidTemplate = "некорректный шаблон доступности"
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

// Handle PUT /api/v1/tutors/{tutorId}/availability
// Репетитор целиком заменяет свой недельный шаблон
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /tutors/{id}/availability - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tutors/{id}/availability - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	var body models.WeeklyTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("PUT /tutors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq := &models.UpdateTemplateRequest{
		UserID:   userID,
		TutorID:  tutorID,
		Template: body,
	}

	result, err := h.service.UpdateTemplate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /tutors/{id}/availability - Access denied: user_id=%d, tutor_id=%d", userID, tutorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availability.ErrInvalidTemplate):
			h.logger.Warn("PUT /tutors/{id}/availability - Invalid template: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /tutors/{id}/availability - Invalid input: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /tutors/{id}/availability - Failed to update template: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tutors/{id}/availability - Template updated successfully: tutor_id=%d", tutorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
