package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/internal/service/availability/models"
)

type fakeAvailabilityRepo struct {
	template *domain.WeeklyTemplate
	replaced *domain.WeeklyTemplate
}

func (f *fakeAvailabilityRepo) GetTemplate(_ context.Context, _ int64) (*domain.WeeklyTemplate, error) {
	return f.template, nil
}

func (f *fakeAvailabilityRepo) ReplaceTemplate(_ context.Context, _ int64, template *domain.WeeklyTemplate) error {
	f.replaced = template
	return nil
}

type fakeProfileCache struct {
	invalidated int64
}

func (f *fakeProfileCache) Invalidate(_ context.Context, tutorID int64) error {
	f.invalidated = tutorID
	return nil
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validTemplateDTO() models.WeeklyTemplateDTO {
	return models.WeeklyTemplateDTO{
		Monday: []models.RangeDTO{
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
		Saturday: []models.RangeDTO{
			{Start: "10:00", End: "13:00"},
		},
	}
}

func TestGetTemplate(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{template: &domain.WeeklyTemplate{}}, nil, passthroughTxManager{}, nopLogger{})

	t.Run("empty template is a valid response", func(t *testing.T) {
		resp, err := svc.GetTemplate(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.TutorID)
		assert.Empty(t, resp.Template.Monday)
	})

	t.Run("invalid tutor id", func(t *testing.T) {
		_, err := svc.GetTemplate(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateTemplate(t *testing.T) {
	t.Run("tutor replaces own template", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{}
		cache := &fakeProfileCache{}
		svc := NewService(repo, cache, passthroughTxManager{}, nopLogger{})

		resp, err := svc.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
			UserID:   42,
			TutorID:  42,
			Template: validTemplateDTO(),
		})
		require.NoError(t, err)

		require.NotNil(t, repo.replaced)
		assert.Len(t, repo.replaced.Monday, 2)
		assert.Len(t, repo.replaced.Saturday, 1)
		assert.Equal(t, int64(42), cache.invalidated)
		assert.Len(t, resp.Template.Monday, 2)
	})

	t.Run("other user is denied", func(t *testing.T) {
		svc := NewService(&fakeAvailabilityRepo{}, nil, passthroughTxManager{}, nopLogger{})

		_, err := svc.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
			UserID:   7,
			TutorID:  42,
			Template: validTemplateDTO(),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("malformed time rejected", func(t *testing.T) {
		svc := NewService(&fakeAvailabilityRepo{}, nil, passthroughTxManager{}, nopLogger{})

		dto := validTemplateDTO()
		dto.Monday[0].Start = "9am"

		_, err := svc.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
			UserID:   42,
			TutorID:  42,
			Template: dto,
		})
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("overlapping ranges rejected", func(t *testing.T) {
		svc := NewService(&fakeAvailabilityRepo{}, nil, passthroughTxManager{}, nopLogger{})

		dto := models.WeeklyTemplateDTO{
			Monday: []models.RangeDTO{
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "14:00"},
			},
		}

		_, err := svc.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
			UserID:   42,
			TutorID:  42,
			Template: dto,
		})
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("empty template clears availability", func(t *testing.T) {
		repo := &fakeAvailabilityRepo{}
		svc := NewService(repo, nil, passthroughTxManager{}, nopLogger{})

		_, err := svc.UpdateTemplate(context.Background(), &models.UpdateTemplateRequest{
			UserID:   42,
			TutorID:  42,
			Template: models.WeeklyTemplateDTO{},
		})
		require.NoError(t, err)
		require.NotNil(t, repo.replaced)
		assert.True(t, repo.replaced.IsEmpty())
	})
}
