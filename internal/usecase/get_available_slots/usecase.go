package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
	"github.com/peertutor/TutorBookingService/pkg/ptr"
)

// UseCase генерации доступных слотов репетитора
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	profileClient    ProfileServiceClient
	timeProvider     TimeProvider
	log              Logger

	defaultDaysAhead int
	noticeMinutes    int
}

// NewUseCase создает новый экземпляр usecase получения доступных слотов
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	profileClient ProfileServiceClient,
	timeProvider TimeProvider,
	log Logger,
	defaultDaysAhead int,
	noticeMinutes int,
) *UseCase {
	if defaultDaysAhead <= 0 {
		defaultDaysAhead = domain.DefaultDaysAhead
	}
	if noticeMinutes < 0 {
		noticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}

	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		profileClient:    profileClient,
		timeProvider:     timeProvider,
		log:              log,
		defaultDaysAhead: defaultDaysAhead,
		noticeMinutes:    noticeMinutes,
	}
}

// Execute выполняет генерацию доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.defaultDaysAhead
	}

	now := uc.timeProvider.Now()

	// 2. Получаем профиль репетитора (таймзона, активность)
	profile, err := uc.profileClient.GetTutor(ctx, req.TutorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrTutorNotFound) {
			return nil, fmt.Errorf("%w: tutor_id=%d", ErrTutorNotFound, req.TutorID)
		}
		uc.log.Error("GetAvailableSlots: failed to get tutor profile tutor_id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: get tutor profile: %v", ErrInternal, err)
	}

	if !profile.Active {
		return nil, fmt.Errorf("%w: tutor_id=%d", ErrTutorInactive, req.TutorID)
	}

	// 3. Определяем таймзону репетитора (все расчёты слотов - в ней)
	loc := uc.resolveLocation(profile)

	// Явная дата запроса - календарная: её компоненты интерпретируются в
	// таймзоне репетитора, а не конвертируются как момент времени
	var windowStart time.Time
	if req.From.IsZero() {
		windowStart = startOfDay(now.In(loc))
	} else {
		windowStart = time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, loc)
	}

	// 4. Получаем недельный шаблон доступности
	template, err := uc.availabilityRepo.GetTemplate(ctx, req.TutorID)
	if err != nil {
		uc.log.Error("GetAvailableSlots: failed to get template tutor_id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: get availability template: %v", ErrInternal, err)
	}

	if template.IsEmpty() {
		uc.log.Info("GetAvailableSlots: tutor_id=%d has no availability template", req.TutorID)
		return &Response{
			TutorID:     req.TutorID,
			WindowStart: windowStart,
			DaysAhead:   daysAhead,
			Timezone:    loc.String(),
			Slots:       []domain.BookingSlot{},
		}, nil
	}

	// 5. Получаем сессии в окне с запасом по краям: сессия, пересекающая
	// границу суток, может блокировать слоты соседнего дня
	fetchStart := windowStart.AddDate(0, 0, -1)
	fetchEnd := windowStart.AddDate(0, 0, daysAhead+domain.SessionFetchPaddingDays)

	sessions, err := uc.sessionRepo.GetByTutorWithFilter(ctx, domain.TutorSessionsFilter{
		TutorID:   req.TutorID,
		StartDate: ptr.Ptr(fetchStart),
		EndDate:   ptr.Ptr(fetchEnd),
	})
	if err != nil {
		uc.log.Error("GetAvailableSlots: failed to get sessions tutor_id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: get tutor sessions: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты и помечаем конфликты
	slots, err := generateAvailableSlots(req.TutorID, template, sessions, windowStart, daysAhead, loc)
	if err != nil {
		uc.log.Error("GetAvailableSlots: generation failed tutor_id=%d: %v", req.TutorID, err)
		return nil, err
	}

	// 7. Применяем минимальный срок бронирования к сегодняшним слотам
	slots = applyNoticePolicy(slots, now, uc.noticeMinutes, loc)

	uc.log.Info("GetAvailableSlots: tutor_id=%d window=%s days=%d slots=%d",
		req.TutorID, windowStart.Format(domain.DateFormat), daysAhead, len(slots))

	return &Response{
		TutorID:     req.TutorID,
		WindowStart: windowStart,
		DaysAhead:   daysAhead,
		Timezone:    loc.String(),
		Slots:       slots,
	}, nil
}

// resolveLocation загружает таймзону репетитора, при ошибке откатывается на UTC
func (uc *UseCase) resolveLocation(profile *profileservice.TutorProfile) *time.Location {
	if profile.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		uc.log.Warn("GetAvailableSlots: unknown timezone %q for tutor_id=%d, falling back to UTC",
			profile.Timezone, profile.ID)
		return time.UTC
	}

	return loc
}
