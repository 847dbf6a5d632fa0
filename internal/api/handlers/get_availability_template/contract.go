package get_availability_template

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetTemplate(ctx context.Context, tutorID int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
