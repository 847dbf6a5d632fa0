package update_booking_status

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	UpdateStatus(ctx context.Context, sessionID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
