package get_tutor_sessions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/peertutor/TutorBookingService/internal/api/handlers"
	"github.com/peertutor/TutorBookingService/internal/api/middleware"
	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/service/sessions"
	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized   = "требуется аутентификация"
	msgAccessDenied   = "доступ запрещен"
	msgInvalidStatus  = "недопустимый статус"
)

type Handler struct {
	service SessionsService
	logger  Logger
}

func NewHandler(service SessionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive
// Доступно только самому репетитору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /tutors/{id}/bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/bookings - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	serviceReq := &models.GetTutorSessionsRequest{
		UserID:  authUserID,
		TutorID: tutorID,
	}

	query := r.URL.Query()

	if startStr := query.Get("startDate"); startStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /tutors/{id}/bookings - Invalid start date: %q", startStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.StartDate = &startDate
	}

	if endStr := query.Get("endDate"); endStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /tutors/{id}/bookings - Invalid end date: %q", endStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		serviceReq.Status = &status
	}

	serviceReq.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetTutorSessions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /tutors/{id}/bookings - Access denied: user_id=%d, tutor_id=%d", authUserID, tutorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/bookings - Invalid filter: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /tutors/{id}/bookings - Failed to get bookings: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/{id}/bookings - Bookings retrieved successfully: tutor_id=%d, count=%d",
		tutorID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
