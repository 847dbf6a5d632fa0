package models

import (
	"fmt"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

// Request модели

// UpdateTemplateRequest запрос на замену недельного шаблона доступности
type UpdateTemplateRequest struct {
	UserID   int64             `json:"userId"`
	TutorID  int64             `json:"tutorId"`
	Template WeeklyTemplateDTO `json:"template"`
}

// WeeklyTemplateDTO недельный шаблон в транспортном виде
type WeeklyTemplateDTO struct {
	Monday    []RangeDTO `json:"monday,omitempty"`
	Tuesday   []RangeDTO `json:"tuesday,omitempty"`
	Wednesday []RangeDTO `json:"wednesday,omitempty"`
	Thursday  []RangeDTO `json:"thursday,omitempty"`
	Friday    []RangeDTO `json:"friday,omitempty"`
	Saturday  []RangeDTO `json:"saturday,omitempty"`
	Sunday    []RangeDTO `json:"sunday,omitempty"`
}

// RangeDTO один диапазон доступности "HH:MM"-"HH:MM"
type RangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Response модели

// TemplateResponse ответ с недельным шаблоном репетитора
type TemplateResponse struct {
	TutorID  int64             `json:"tutorId"`
	Template WeeklyTemplateDTO `json:"template"`
}

// Методы конвертации

// ToDomainTemplate конвертирует DTO в domain модель с проверкой формата времени
func (t WeeklyTemplateDTO) ToDomainTemplate() (*domain.WeeklyTemplate, error) {
	template := &domain.WeeklyTemplate{}

	for _, day := range domain.AllDays {
		dtoRanges := t.rangesFor(day)
		if len(dtoRanges) == 0 {
			continue
		}

		ranges := make([]domain.AvailabilityRange, 0, len(dtoRanges))
		for _, r := range dtoRanges {
			start, err := types.NewTimeStringFromString(r.Start)
			if err != nil {
				return nil, fmt.Errorf("%s: start %q: %w", day, r.Start, err)
			}
			end, err := types.NewTimeStringFromString(r.End)
			if err != nil {
				return nil, fmt.Errorf("%s: end %q: %w", day, r.End, err)
			}
			ranges = append(ranges, domain.AvailabilityRange{Start: start, End: end})
		}

		template.SetRanges(day, ranges)
	}

	return template, nil
}

func (t WeeklyTemplateDTO) rangesFor(day domain.DayOfWeek) []RangeDTO {
	switch day {
	case domain.Monday:
		return t.Monday
	case domain.Tuesday:
		return t.Tuesday
	case domain.Wednesday:
		return t.Wednesday
	case domain.Thursday:
		return t.Thursday
	case domain.Friday:
		return t.Friday
	case domain.Saturday:
		return t.Saturday
	default:
		return t.Sunday
	}
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(tutorID int64, template *domain.WeeklyTemplate) *TemplateResponse {
	dto := WeeklyTemplateDTO{}

	for _, day := range domain.AllDays {
		ranges := template.RangesFor(day)
		if len(ranges) == 0 {
			continue
		}

		dtoRanges := make([]RangeDTO, 0, len(ranges))
		for _, r := range ranges {
			dtoRanges = append(dtoRanges, RangeDTO{
				Start: r.Start.String(),
				End:   r.End.String(),
			})
		}

		switch day {
		case domain.Monday:
			dto.Monday = dtoRanges
		case domain.Tuesday:
			dto.Tuesday = dtoRanges
		case domain.Wednesday:
			dto.Wednesday = dtoRanges
		case domain.Thursday:
			dto.Thursday = dtoRanges
		case domain.Friday:
			dto.Friday = dtoRanges
		case domain.Saturday:
			dto.Saturday = dtoRanges
		default:
			dto.Sunday = dtoRanges
		}
	}

	return &TemplateResponse{
		TutorID:  tutorID,
		Template: dto,
	}
}
