package create_booking

import (
	"context"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// Create создает новую сессию и возвращает её с заполненными ID и timestamps
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	// GetByTutorWithFilter получает сессии репетитора в заданном окне
	// Внутри транзакции с заданными границами окна строки блокируются FOR UPDATE
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error)
}

// AvailabilityRepository интерфейс репозитория шаблонов доступности
type AvailabilityRepository interface {
	GetTemplate(ctx context.Context, tutorID int64) (*domain.WeeklyTemplate, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetTutor(ctx context.Context, tutorID int64) (*profileservice.TutorProfile, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в транзакции с уровнем изоляции Serializable
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
