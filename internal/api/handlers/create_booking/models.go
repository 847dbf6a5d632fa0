package create_booking

import (
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
	createBooking "github.com/peertutor/TutorBookingService/internal/usecase/create_booking"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TutorID         int64   `json:"tutorId"`
	Date            string  `json:"date"`      // YYYY-MM-DD
	StartTime       string  `json:"startTime"` // HH:MM в таймзоне репетитора
	DurationMinutes int     `json:"durationMinutes"`
	SubjectName     string  `json:"subjectName"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest создает запрос use case из HTTP запроса
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (createBooking.Request, error) {
	req := createBooking.Request{
		StudentID:       studentID,
		TutorID:         r.TutorID,
		DurationMinutes: r.DurationMinutes,
		SubjectName:     r.SubjectName,
		Notes:           r.Notes,
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return req, err
	}
	req.Date = date

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return req, err
	}
	req.StartTime = start

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.SessionResponse {
	return models.FromDomainSession(resp.Session)
}
