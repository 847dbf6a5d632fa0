package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
)

type fakeSessionRepo struct {
	sessions []*domain.Session
	created  *domain.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	created := *s
	created.ID = 101
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeSessionRepo) GetByTutorWithFilter(_ context.Context, _ domain.TutorSessionsFilter) ([]*domain.Session, error) {
	return f.sessions, nil
}

type fakeAvailabilityRepo struct {
	template *domain.WeeklyTemplate
}

func (f *fakeAvailabilityRepo) GetTemplate(_ context.Context, _ int64) (*domain.WeeklyTemplate, error) {
	return f.template, nil
}

type fakeProfileClient struct {
	profile *profileservice.TutorProfile
	err     error
}

func (f *fakeProfileClient) GetTutor(_ context.Context, _ int64) (*profileservice.TutorProfile, error) {
	return f.profile, f.err
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Понедельник 2026-09-07
var bookingDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func mondayTemplate(t *testing.T) *domain.WeeklyTemplate {
	t.Helper()
	template := &domain.WeeklyTemplate{}
	template.SetRanges(domain.Monday, []domain.AvailabilityRange{
		{Start: ts(t, "09:00"), End: ts(t, "12:00")},
	})
	return template
}

func newTestUseCase(sessionRepo *fakeSessionRepo, template *domain.WeeklyTemplate, now time.Time) *UseCase {
	return NewUseCase(
		sessionRepo,
		&fakeAvailabilityRepo{template: template},
		&fakeProfileClient{profile: &profileservice.TutorProfile{
			ID:         42,
			HourlyRate: 1500,
			Timezone:   "UTC",
			Active:     true,
		}},
		fakeTxManager{},
		&fixedTimeProvider{now: now},
		nopLogger{},
		domain.DefaultMinBookingNoticeMinutes,
	)
}

func validRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		StudentID:       7,
		TutorID:         42,
		Date:            bookingDay,
		StartTime:       ts(t, "10:00"),
		DurationMinutes: 60,
		SubjectName:     "mathematics",
	}
}

func TestExecute_CreatesConfirmedSession(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	// Сейчас утро воскресенья накануне
	uc := newTestUseCase(sessionRepo, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	require.NotNil(t, sessionRepo.created)

	session := resp.Session
	assert.Equal(t, int64(101), session.ID)
	assert.Equal(t, domain.StatusConfirmed, session.Status)
	assert.Equal(t, bookingDay.Add(10*time.Hour), session.StartAt)
	assert.Equal(t, bookingDay.Add(11*time.Hour), session.EndAt)
	assert.Equal(t, 1500.0, session.HourlyRate)
	assert.Equal(t, 1500.0, session.PriceAmount)
	assert.Equal(t, "mathematics", session.SubjectName)
}

func TestExecute_HalfHourSessionPrice(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	uc := newTestUseCase(sessionRepo, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	req := validRequest(t)
	req.DurationMinutes = 30

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 750.0, resp.Session.PriceAmount)
}

func TestExecute_ConflictingSessionRejected(t *testing.T) {
	sessionRepo := &fakeSessionRepo{
		sessions: []*domain.Session{{
			ID:      1,
			TutorID: 42,
			StartAt: bookingDay.Add(9 * time.Hour),
			EndAt:   bookingDay.Add(11 * time.Hour),
			Status:  domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(sessionRepo, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, sessionRepo.created)
}

func TestExecute_CancelledSessionDoesNotConflict(t *testing.T) {
	sessionRepo := &fakeSessionRepo{
		sessions: []*domain.Session{{
			ID:      1,
			TutorID: 42,
			StartAt: bookingDay.Add(9 * time.Hour),
			EndAt:   bookingDay.Add(11 * time.Hour),
			Status:  domain.StatusCancelledByStudent,
		}},
	}
	uc := newTestUseCase(sessionRepo, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_NoMatchingSlot(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	req := validRequest(t)
	req.StartTime = ts(t, "15:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoMatchingSlot)
}

func TestExecute_BeyondSlotEnd(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, mondayTemplate(t), bookingDay.Add(-10*time.Hour))

	req := validRequest(t)
	req.StartTime = ts(t, "11:30")
	req.DurationMinutes = 60

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBeyondSlotEnd)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, mondayTemplate(t), bookingDay.AddDate(0, 0, 3))

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_TooLateToBook(t *testing.T) {
	// Сейчас 09:30 того же дня, занятие в 10:00 - меньше часа до начала
	uc := newTestUseCase(&fakeSessionRepo{}, mondayTemplate(t), bookingDay.Add(9*time.Hour+30*time.Minute))

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DSTDayKeepsWallClockTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	template := &domain.WeeklyTemplate{}
	template.SetRanges(domain.Sunday, []domain.AvailabilityRange{
		{Start: ts(t, "09:00"), End: ts(t, "10:00")},
	})

	sessionRepo := &fakeSessionRepo{}
	uc := NewUseCase(
		sessionRepo,
		&fakeAvailabilityRepo{template: template},
		&fakeProfileClient{profile: &profileservice.TutorProfile{
			ID:         42,
			HourlyRate: 1500,
			Timezone:   "America/New_York",
			Active:     true,
		}},
		fakeTxManager{},
		&fixedTimeProvider{now: time.Date(2026, 3, 7, 12, 0, 0, 0, loc)},
		nopLogger{},
		domain.DefaultMinBookingNoticeMinutes,
	)

	// Воскресенье весеннего перевода часов в США
	req := Request{
		StudentID:       7,
		TutorID:         42,
		Date:            time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		StartTime:       ts(t, "09:00"),
		DurationMinutes: 60,
		SubjectName:     "mathematics",
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Настенное время сохраняется, несмотря на пропавший час
	startLocal := resp.Session.StartAt.In(loc)
	assert.Equal(t, 9, startLocal.Hour())
	assert.Equal(t, 0, startLocal.Minute())

	endLocal := resp.Session.EndAt.In(loc)
	assert.Equal(t, 10, endLocal.Hour())
	assert.Equal(t, 0, endLocal.Minute())

	// Повторное бронирование того же слота конфликтует с созданной сессией
	sessionRepo.sessions = append(sessionRepo.sessions, resp.Session)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_TutorNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{template: mondayTemplate(t)},
		&fakeProfileClient{err: profileservice.ErrTutorNotFound},
		fakeTxManager{},
		&fixedTimeProvider{now: bookingDay.Add(-10 * time.Hour)},
		nopLogger{},
		domain.DefaultMinBookingNoticeMinutes,
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTutorNotFound)
}
