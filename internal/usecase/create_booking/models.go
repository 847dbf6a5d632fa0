package create_booking

import (
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StudentID       int64            // ID студента (из заголовка аутентификации)
	TutorID         int64            // ID репетитора
	Date            time.Time        // Календарная дата сессии (время игнорируется)
	StartTime       types.TimeString // Время начала "HH:MM" в таймзоне репетитора
	DurationMinutes int              // Длительность в минутах
	SubjectName     string           // Предмет занятия
	Notes           *string          // Комментарий студента (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	Session *domain.Session
}
