package availability

import (
	"context"
	"fmt"

	"github.com/peertutor/TutorBookingService/internal/service/availability/models"
)

// Service сервис для работы с шаблонами недельной доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	profileCache     ProfileCache
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
// profileCache может быть nil, если кеширование профилей выключено
func NewService(
	availabilityRepo AvailabilityRepository,
	profileCache ProfileCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		profileCache:     profileCache,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetTemplate получает недельный шаблон репетитора
// Публичный метод: шаблон отдается как есть, пустой шаблон - валидный ответ
func (s *Service) GetTemplate(ctx context.Context, tutorID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching template for tutor=%d", tutorID)

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutor ID must be positive", ErrInvalidInput)
	}

	template, err := s.availabilityRepo.GetTemplate(ctx, tutorID)
	if err != nil {
		s.logger.Error("GetTemplate: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTemplate: successfully fetched template for tutor=%d", tutorID)
	return models.FromDomainTemplate(tutorID, template), nil
}

// UpdateTemplate атомарно заменяет недельный шаблон репетитора
// Доступно только самому репетитору. Уже созданные сессии не затрагиваются:
// они продолжают блокировать свои интервалы независимо от нового шаблона
func (s *Service) UpdateTemplate(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpdateTemplate: updating template for tutor=%d by user=%d", req.TutorID, req.UserID)

	if req.TutorID <= 0 {
		return nil, fmt.Errorf("%w: tutor ID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.TutorID {
		s.logger.Warn("UpdateTemplate: access denied for user=%d to tutor=%d template", req.UserID, req.TutorID)
		return nil, ErrAccessDenied
	}

	template, err := req.Template.ToDomainTemplate()
	if err != nil {
		s.logger.Warn("UpdateTemplate: malformed template for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	if err := template.Validate(); err != nil {
		s.logger.Warn("UpdateTemplate: invalid template for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	// Замена шаблона - delete + insert, поэтому в транзакции
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.ReplaceTemplate(txCtx, req.TutorID, template)
	})
	if txErr != nil {
		s.logger.Error("UpdateTemplate: repository error for tutor=%d: %v", req.TutorID, txErr)
		return nil, fmt.Errorf("%w: UpdateTemplate - repository error: %v", ErrInternal, txErr)
	}

	if s.profileCache != nil {
		if err := s.profileCache.Invalidate(ctx, req.TutorID); err != nil {
			s.logger.Warn("UpdateTemplate: failed to invalidate profile cache for tutor=%d: %v", req.TutorID, err)
		}
	}

	s.logger.Info("UpdateTemplate: successfully updated template for tutor=%d", req.TutorID)
	return models.FromDomainTemplate(req.TutorID, template), nil
}
