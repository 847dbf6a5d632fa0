package cancel_booking

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
