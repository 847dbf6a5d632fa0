package get_available_slots

import (
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	getAvailableSlots "github.com/peertutor/TutorBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TutorID     int64           `json:"tutorId"`
	WindowStart string          `json:"windowStart"`
	DaysAhead   int             `json:"daysAhead"`
	Timezone    string          `json:"timezone"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота расписания
type AvailableSlot struct {
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Day:       slot.Day.Format(domain.DateFormat),
			Start:     slot.Start.String(),
			End:       slot.End.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		TutorID:     resp.TutorID,
		WindowStart: resp.WindowStart.Format(domain.DateFormat),
		DaysAhead:   resp.DaysAhead,
		Timezone:    resp.Timezone,
		Slots:       slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(tutorID int64, fromStr string, days int) (getAvailableSlots.Request, error) {
	req := getAvailableSlots.Request{
		TutorID:   tutorID,
		DaysAhead: days,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return req, err
		}
		req.From = from
	}

	return req, nil
}
