package domain

import "time"

// SessionStatus represents the status of a tutoring session
type SessionStatus string

const (
	StatusPending            SessionStatus = "pending"
	StatusConfirmed          SessionStatus = "confirmed"
	StatusCompleted          SessionStatus = "completed"
	StatusCancelledByStudent SessionStatus = "cancelled_by_student"
	StatusCancelledByTutor   SessionStatus = "cancelled_by_tutor"
	StatusNoShow             SessionStatus = "no_show"
)

// Session represents a booked tutoring session
type Session struct {
	ID        int64
	TutorID   int64
	StudentID int64
	StartAt   time.Time
	EndAt     time.Time
	Status    SessionStatus

	// Denormalized data for history
	SubjectName string
	HourlyRate  float64
	PriceAmount float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the session occupies the tutor's calendar.
// Only pending and confirmed sessions conflict with new bookings;
// cancelled sessions never block slots.
func (s *Session) IsBlocking() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// IsCancelled returns true if the session has been cancelled
func (s *Session) IsCancelled() bool {
	return s.Status == StatusCancelledByStudent || s.Status == StatusCancelledByTutor
}

// CanBeCancelled returns true if the session can still be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// DurationMinutes returns the session length in whole minutes
func (s *Session) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// TutorSessionsFilter фильтр для получения сессий репетитора
type TutorSessionsFilter struct {
	TutorID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально, не включается)
	Status          *SessionStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые сессии и no-show
}
