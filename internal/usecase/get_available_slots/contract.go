package get_available_slots

import (
	"context"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория шаблонов доступности
type AvailabilityRepository interface {
	// GetTemplate возвращает недельный шаблон репетитора (пустой, если не настроен)
	GetTemplate(ctx context.Context, tutorID int64) (*domain.WeeklyTemplate, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// GetByTutorWithFilter получает сессии репетитора в заданном окне
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetTutor(ctx context.Context, tutorID int64) (*profileservice.TutorProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
