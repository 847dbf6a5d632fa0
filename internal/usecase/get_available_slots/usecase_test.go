package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
)

type fakeAvailabilityRepo struct {
	template *domain.WeeklyTemplate
	err      error
}

func (f *fakeAvailabilityRepo) GetTemplate(_ context.Context, _ int64) (*domain.WeeklyTemplate, error) {
	return f.template, f.err
}

type fakeSessionRepo struct {
	sessions []*domain.Session
	filter   domain.TutorSessionsFilter
}

func (f *fakeSessionRepo) GetByTutorWithFilter(_ context.Context, filter domain.TutorSessionsFilter) ([]*domain.Session, error) {
	f.filter = filter
	return f.sessions, nil
}

type fakeProfileClient struct {
	profile *profileservice.TutorProfile
	err     error
}

func (f *fakeProfileClient) GetTutor(_ context.Context, _ int64) (*profileservice.TutorProfile, error) {
	return f.profile, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeTutor(timezone string) *profileservice.TutorProfile {
	return &profileservice.TutorProfile{
		ID:          42,
		DisplayName: "Test Tutor",
		HourlyRate:  1500,
		Timezone:    timezone,
		Active:      true,
	}
}

func newTestUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	profileClient ProfileServiceClient,
	now time.Time,
) *UseCase {
	return NewUseCase(
		availabilityRepo,
		sessionRepo,
		profileClient,
		&fixedTimeProvider{now: now},
		nopLogger{},
		domain.DefaultDaysAhead,
		domain.DefaultMinBookingNoticeMinutes,
	)
}

func TestExecute_TutorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeSessionRepo{},
		&fakeProfileClient{err: profileservice.ErrTutorNotFound},
		monday,
	)

	_, err := uc.Execute(context.Background(), Request{TutorID: 42})
	assert.ErrorIs(t, err, ErrTutorNotFound)
}

func TestExecute_TutorInactive(t *testing.T) {
	profile := activeTutor("UTC")
	profile.Active = false

	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeSessionRepo{},
		&fakeProfileClient{profile: profile},
		monday,
	)

	_, err := uc.Execute(context.Background(), Request{TutorID: 42})
	assert.ErrorIs(t, err, ErrTutorInactive)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeSessionRepo{},
		&fakeProfileClient{profile: activeTutor("UTC")},
		monday,
	)

	_, err := uc.Execute(context.Background(), Request{TutorID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{TutorID: 42, DaysAhead: domain.MaxDaysAhead + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EmptyTemplateYieldsEmptySlots(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	uc := newTestUseCase(
		&fakeAvailabilityRepo{template: &domain.WeeklyTemplate{}},
		sessionRepo,
		&fakeProfileClient{profile: activeTutor("UTC")},
		monday,
	)

	resp, err := uc.Execute(context.Background(), Request{TutorID: 42, From: monday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Equal(t, "UTC", resp.Timezone)
	// При пустом шаблоне сессии не запрашиваются
	assert.Nil(t, sessionRepo.filter.StartDate)
}

func TestExecute_GeneratesSlotsInTutorTimezone(t *testing.T) {
	template := weekdayTemplate(t)
	sessionRepo := &fakeSessionRepo{}

	uc := newTestUseCase(
		&fakeAvailabilityRepo{template: template},
		sessionRepo,
		&fakeProfileClient{profile: activeTutor("Europe/Moscow")},
		monday,
	)

	resp, err := uc.Execute(context.Background(), Request{TutorID: 42, From: monday, DaysAhead: 7})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Equal(t, 7, resp.DaysAhead)
	// 5 рабочих дней по 2 диапазона
	assert.Len(t, resp.Slots, 10)

	// Окно запроса сессий шире окна генерации
	require.NotNil(t, sessionRepo.filter.StartDate)
	require.NotNil(t, sessionRepo.filter.EndDate)
	assert.True(t, sessionRepo.filter.StartDate.Before(resp.WindowStart))
	assert.True(t, sessionRepo.filter.EndDate.After(resp.WindowStart.AddDate(0, 0, 7)))
}

func TestExecute_FromDateInterpretedInTutorTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	uc := newTestUseCase(
		&fakeAvailabilityRepo{template: weekdayTemplate(t)},
		&fakeSessionRepo{},
		&fakeProfileClient{profile: activeTutor("America/New_York")},
		monday,
	)

	// from приходит из парсинга YYYY-MM-DD как полночь UTC; для таймзоны
	// западнее UTC окно не должно уезжать на предыдущий календарный день
	resp, err := uc.Execute(context.Background(), Request{TutorID: 42, From: monday, DaysAhead: 1})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, loc), resp.WindowStart)
	assert.Equal(t, "2026-09-07", resp.WindowStart.Format(domain.DateFormat))

	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		assert.Equal(t, "2026-09-07", slot.Day.Format(domain.DateFormat))
	}
}

func TestExecute_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{template: weekdayTemplate(t)},
		&fakeSessionRepo{},
		&fakeProfileClient{profile: activeTutor("Mars/Olympus")},
		monday,
	)

	resp, err := uc.Execute(context.Background(), Request{TutorID: 42, From: monday, DaysAhead: 1})
	require.NoError(t, err)
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestExecute_DefaultDaysAhead(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{template: weekdayTemplate(t)},
		&fakeSessionRepo{},
		&fakeProfileClient{profile: activeTutor("UTC")},
		monday,
	)

	resp, err := uc.Execute(context.Background(), Request{TutorID: 42, From: monday})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDaysAhead, resp.DaysAhead)
}
