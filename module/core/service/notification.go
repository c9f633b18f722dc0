package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
)

const (
	officerLogLimit = 10
	globalLogLimit  = 20
)

type NotificationService struct {
	repo   database.NotificationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewNotificationService(repo database.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger, now: time.Now}
}

// Record appends a log entry. A nil userID makes the entry global.
func (s *NotificationService) Record(ctx context.Context, level domain.LogLevel, message string, userID *int64) error {
	entry := &domain.NotificationLog{
		Timestamp: s.now().UTC(),
		Level:     level,
		Message:   message,
		UserID:    userID,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("record notification", zap.String("level", string(level)), zap.String("message", message), zap.Error(err))
		return err
	}
	return nil
}

func (s *NotificationService) ForOfficer(ctx context.Context, officerID int64) ([]domain.NotificationLog, error) {
	return s.repo.ListForUser(ctx, officerID, officerLogLimit)
}

func (s *NotificationService) Global(ctx context.Context) ([]domain.NotificationLog, error) {
	return s.repo.ListGlobal(ctx, globalLogLimit)
}
