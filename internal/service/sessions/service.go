package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/peertutor/TutorBookingService/internal/domain"
	sessionRepo "github.com/peertutor/TutorBookingService/internal/infra/storage/session"
	"github.com/peertutor/TutorBookingService/internal/service/sessions/models"
)

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetByID получает сессию по ID
// Доступ имеют только участники сессии - студент и репетитор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isParticipant(session, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched session id=%d", id)
	return models.FromDomainSession(session), nil
}

// GetStudentSessions получает историю сессий студента
// Студент видит только свои сессии. Опционально фильтрует по статусу
func (s *Service) GetStudentSessions(ctx context.Context, req *models.GetStudentSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetStudentSessions: fetching sessions for student=%d, status=%v", req.StudentID, req.Status)

	if req.UserID != req.StudentID {
		s.logger.Warn("GetStudentSessions: access denied for user=%d to student=%d history", req.UserID, req.StudentID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.SessionStatus
	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentSessions: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	sessions, err := s.sessionRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentSessions: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentSessions: successfully fetched %d sessions for student=%d", len(sessions), req.StudentID)
	return models.FromDomainSessionList(sessions), nil
}

// GetTutorSessions получает сессии репетитора с гибкой фильтрацией
// Доступно только самому репетитору
//
// Примеры использования:
// - Все занимающие календарь сессии: GetTutorSessions(ctx, &GetTutorSessionsRequest{TutorID: 42, UserID: 42})
// - Сессии за период: указать StartDate и EndDate
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetTutorSessions(ctx context.Context, req *models.GetTutorSessionsRequest) (*models.SessionListResponse, error) {
	logMsg := fmt.Sprintf("GetTutorSessions: fetching sessions for tutor=%d, user=%d", req.TutorID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.UserID != req.TutorID {
		s.logger.Warn("GetTutorSessions: access denied for user=%d to tutor=%d sessions", req.UserID, req.TutorID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTutorSessions: invalid filter for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.GetByTutorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTutorSessions: repository error for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: GetTutorSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTutorSessions: successfully fetched %d sessions for tutor=%d", len(sessions), req.TutorID)
	return models.FromDomainSessionList(sessions), nil
}

// Cancel отменяет сессию
// Студент отменяет свою сессию (cancelled_by_student),
// репетитор - сессию из своего календаря (cancelled_by_tutor)
func (s *Service) Cancel(ctx context.Context, sessionID int64, req *models.CancelSessionRequest) error {
	s.logger.Info("Cancel: cancelling session id=%d by user=%d", sessionID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !session.CanBeCancelled() {
		s.logger.Warn("Cancel: session id=%d cannot be cancelled, status=%s", sessionID, session.Status)
		return ErrCannotCancel
	}

	// Статус отмены определяется ролью участника
	var cancelStatus domain.SessionStatus
	switch req.UserID {
	case session.StudentID:
		cancelStatus = domain.StatusCancelledByStudent
	case session.TutorID:
		cancelStatus = domain.StatusCancelledByTutor
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel session id=%d", req.UserID, sessionID)
		return ErrAccessDenied
	}

	if err := s.sessionRepo.Cancel(ctx, sessionID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%d not found during cancellation", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Cancel: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled session id=%d with status=%s", sessionID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус сессии
// Доступно только репетитору сессии (completed, no_show)
func (s *Service) UpdateStatus(ctx context.Context, sessionID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating session id=%d to status=%s by user=%d",
		sessionID, req.Status, req.UserID)

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if session.TutorID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to session id=%d", req.UserID, sessionID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainSessionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for session id=%d", req.Status, sessionID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, newStatus); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%d not found during update", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated session id=%d to status=%s", sessionID, newStatus)
	return nil
}

// isParticipant проверяет, что пользователь является участником сессии
func isParticipant(session *domain.Session, userID int64) bool {
	return session.StudentID == userID || session.TutorID == userID
}
