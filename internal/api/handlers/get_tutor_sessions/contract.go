package get_tutor_sessions

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	GetTutorSessions(ctx context.Context, req *models.GetTutorSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
