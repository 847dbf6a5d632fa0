package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
	"github.com/peertutor/TutorBookingService/pkg/ptr"
)

// UseCase создания бронирования
//
// Проверка доступности и вставка сессии выполняются в одной Serializable
// транзакции: конкурирующие бронирования одного репетитора либо видят чужую
// сессию через FOR UPDATE, либо завершаются serialization failure
type UseCase struct {
	sessionRepo      SessionRepository
	availabilityRepo AvailabilityRepository
	profileClient    ProfileServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	log              Logger

	noticeMinutes int
}

// NewUseCase создает новый экземпляр usecase создания бронирования
func NewUseCase(
	sessionRepo SessionRepository,
	availabilityRepo AvailabilityRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	log Logger,
	noticeMinutes int,
) *UseCase {
	if noticeMinutes < 0 {
		noticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}

	return &UseCase{
		sessionRepo:      sessionRepo,
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		txManager:        txManager,
		timeProvider:     timeProvider,
		log:              log,
		noticeMinutes:    noticeMinutes,
	}
}

// Execute выполняет создание бронирования
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем профиль репетитора (вне транзакции - внешний HTTP вызов)
	profile, err := uc.profileClient.GetTutor(ctx, req.TutorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrTutorNotFound) {
			return nil, fmt.Errorf("%w: tutor_id=%d", ErrTutorNotFound, req.TutorID)
		}
		uc.log.Error("CreateBooking: failed to get tutor profile tutor_id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: get tutor profile: %v", ErrInternal, err)
	}

	if !profile.Active {
		return nil, fmt.Errorf("%w: tutor_id=%d", ErrTutorInactive, req.TutorID)
	}

	loc := uc.resolveLocation(profile)

	// 3. Собираем границы сессии в таймзоне репетитора
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	// Границы собираются как настенное время через time.Date: смещение от
	// полуночи в день перевода часов уехало бы на час от запрошенного HH:MM
	startAt := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(),
		startMinutes/60, startMinutes%60, 0, 0, loc)
	endMinutes := startMinutes + req.DurationMinutes
	endAt := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(),
		endMinutes/60, endMinutes%60, 0, 0, loc)

	// 4. Проверяем временные ограничения
	if err := uc.validateTiming(date, startAt, now, loc); err != nil {
		return nil, err
	}

	// 5. Проверка доступности и вставка - атомарно
	var created *domain.Session
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		template, err := uc.availabilityRepo.GetTemplate(txCtx, req.TutorID)
		if err != nil {
			return fmt.Errorf("%w: get availability template: %v", ErrInternal, err)
		}

		if template.IsEmpty() {
			return fmt.Errorf("%w: tutor has no availability", ErrNoMatchingSlot)
		}

		// Захватываем сессии дня с запасом в сутки: бронь, пересекающая
		// полночь, должна попасть в расчёт. Внутри транзакции строки
		// блокируются FOR UPDATE
		sessions, err := uc.sessionRepo.GetByTutorWithFilter(txCtx, domain.TutorSessionsFilter{
			TutorID:   req.TutorID,
			StartDate: ptr.Ptr(date.AddDate(0, 0, -1)),
			EndDate:   ptr.Ptr(date.AddDate(0, 0, 2)),
		})
		if err != nil {
			return fmt.Errorf("%w: get tutor sessions: %v", ErrInternal, err)
		}

		slots, err := generateDaySlots(req.TutorID, template, sessions, date, loc)
		if err != nil {
			return err
		}

		slot := findSlotForSelection(slots, req.StartTime, req.DurationMinutes)
		if slot == nil {
			return fmt.Errorf("%w: %s %s", ErrNoMatchingSlot, date.Format(domain.DateFormat), req.StartTime)
		}

		if err := validateSelection(slot, req.StartTime, req.DurationMinutes); err != nil {
			return err
		}

		created, err = uc.sessionRepo.Create(txCtx, &domain.Session{
			TutorID:     req.TutorID,
			StudentID:   req.StudentID,
			StartAt:     startAt,
			EndAt:       endAt,
			Status:      domain.StatusConfirmed,
			SubjectName: req.SubjectName,
			HourlyRate:  profile.HourlyRate,
			PriceAmount: calculatePrice(profile.HourlyRate, req.DurationMinutes),
			Notes:       req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: create session: %v", ErrInternal, err)
		}

		return nil
	})

	if txErr != nil {
		if isBusinessError(txErr) {
			return nil, txErr
		}
		uc.log.Error("CreateBooking: transaction failed tutor_id=%d student_id=%d: %v",
			req.TutorID, req.StudentID, txErr)
		if errors.Is(txErr, ErrInternal) || errors.Is(txErr, ErrMalformedTemplate) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: booking transaction: %v", ErrInternal, txErr)
	}

	uc.log.Info("CreateBooking: created session_id=%d tutor_id=%d student_id=%d start=%s duration=%d",
		created.ID, req.TutorID, req.StudentID, startAt.Format(time.RFC3339), req.DurationMinutes)

	return &Response{Session: created}, nil
}

// validateTiming проверяет дату и минимальный срок бронирования
func (uc *UseCase) validateTiming(date, startAt, now time.Time, loc *time.Location) error {
	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	if date.Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}

	if date.After(today.AddDate(0, 0, domain.MaxDaysAhead)) {
		return fmt.Errorf("%w: date is more than %d days ahead", ErrInvalidInput, domain.MaxDaysAhead)
	}

	if startAt.Before(now.Add(time.Duration(uc.noticeMinutes) * time.Minute)) {
		return fmt.Errorf("%w: at least %d minutes of notice required", ErrTooLateToBook, uc.noticeMinutes)
	}

	return nil
}

// resolveLocation загружает таймзону репетитора, при ошибке откатывается на UTC
func (uc *UseCase) resolveLocation(profile *profileservice.TutorProfile) *time.Location {
	if profile.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		uc.log.Warn("CreateBooking: unknown timezone %q for tutor_id=%d, falling back to UTC",
			profile.Timezone, profile.ID)
		return time.UTC
	}

	return loc
}

// calculatePrice считает стоимость сессии по часовой ставке с округлением
// до копеек
func calculatePrice(hourlyRate float64, durationMinutes int) float64 {
	price := hourlyRate * float64(durationMinutes) / 60.0
	return math.Round(price*100) / 100
}

// isBusinessError отличает бизнес-отказ от инфраструктурной ошибки транзакции
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrNoMatchingSlot,
		ErrStartsBeforeSlotOpens,
		ErrBeyondSlotEnd,
		ErrSlotUnavailable,
		ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
