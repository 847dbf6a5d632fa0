package availability

import (
	"context"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория шаблонов доступности
type AvailabilityRepository interface {
	GetTemplate(ctx context.Context, tutorID int64) (*domain.WeeklyTemplate, error)
	ReplaceTemplate(ctx context.Context, tutorID int64, template *domain.WeeklyTemplate) error
}

// ProfileCache интерфейс для инвалидации закешированного профиля
type ProfileCache interface {
	Invalidate(ctx context.Context, tutorID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
