package models

import (
	"errors"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// CancelSessionRequest запрос на отмену сессии
type CancelSessionRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса сессии
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetStudentSessionsRequest запрос на получение сессий студента
type GetStudentSessionsRequest struct {
	UserID    int64   `json:"userId"`
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// GetTutorSessionsRequest запрос на получение сессий репетитора
type GetTutorSessionsRequest struct {
	UserID          int64      `json:"userId"`
	TutorID         int64      `json:"tutorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые сессии
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTutorSessionsRequest) ToDomainFilter() (domain.TutorSessionsFilter, error) {
	filter := domain.TutorSessionsFilter{
		TutorID:         r.TutorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID        int64     `json:"id"`
	TutorID   int64     `json:"tutorId"`
	StudentID int64     `json:"studentId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Status    string    `json:"status"`

	// Денормализованные данные
	SubjectName string  `json:"subjectName"`
	HourlyRate  float64 `json:"hourlyRate"`
	PriceAmount float64 `json:"priceAmount"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		TutorID:            s.TutorID,
		StudentID:          s.StudentID,
		StartAt:            s.StartAt,
		EndAt:              s.EndAt,
		Status:             string(s.Status),
		SubjectName:        s.SubjectName,
		HourlyRate:         s.HourlyRate,
		PriceAmount:        s.PriceAmount,
		Notes:              s.Notes,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.CancelledAt != nil {
		formatted := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	result := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if resp := FromDomainSession(s); resp != nil {
			result.Sessions = append(result.Sessions, *resp)
		}
	}

	return result
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	switch domain.SessionStatus(status) {
	case domain.StatusPending:
		return domain.StatusPending, nil
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelledByStudent:
		return domain.StatusCancelledByStudent, nil
	case domain.StatusCancelledByTutor:
		return domain.StatusCancelledByTutor, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}
