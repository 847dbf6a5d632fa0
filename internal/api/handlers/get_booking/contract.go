package get_booking

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
